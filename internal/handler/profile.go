package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-site/internal/form"
)

type profilePage struct {
	Form *form.ProfileForm
}

// HandleProfile fetches the profile and shows it in the edit form.
func (h *AdminHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	v := h.adminView(w, r, "Profile", "profile")

	status := http.StatusOK
	p, err := h.content.Profile(r.Context())
	if err != nil {
		h.logger.Error("loading profile", slog.String("error", err.Error()))
		v.Dialog = failure("Failed to load profile", err)
		status = errorStatus(err)
	}

	v.Data = profilePage{Form: form.EditProfile(p)}
	h.pages.render(w, status, pageProfile, v)
}

// HandleUpdateProfile sends the profile as one multipart PUT. Success
// redirects to a fresh fetch; failure re-renders with the typed values.
func (h *AdminHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	f := &form.ProfileForm{}
	if err := f.Bind(r); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	_, token := identity(r)
	if err := h.content.SaveProfile(r.Context(), token, f); err != nil {
		v := h.adminView(w, r, "Profile", "profile")
		v.Dialog = failure("Update failed", err)
		v.Data = profilePage{Form: f}
		h.pages.render(w, errorStatus(err), pageProfile, v)
		return
	}

	redirectWithFlash(w, r, "/admin/profile", "Profile updated")
}
