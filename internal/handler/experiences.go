package handler

import (
	"net/http"

	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/screen"
)

func (h *AdminHandler) experiences() collection[model.Experience] {
	return collection[model.Experience]{
		name:  "experiences",
		title: "Experiences",
		noun:  "experience",
		page:  pageExperiences,
		fetch: h.content.Experiences,
	}
}

// HandleExperiences opens the screen: fetch, cache, render.
func (h *AdminHandler) HandleExperiences(w http.ResponseWriter, r *http.Request) {
	mount(h, w, r, h.experiences(), nil)
}

// HandleNewExperience opens the create modal over the list.
func (h *AdminHandler) HandleNewExperience(w http.ResponseWriter, r *http.Request) {
	current(h, w, r, h.experiences(), http.StatusOK, func(_ *View, _ *screen.Collection[model.Experience]) any {
		return form.NewExperienceForm()
	})
}

// HandleEditExperience opens the edit modal seeded from the listed record.
func (h *AdminHandler) HandleEditExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	current(h, w, r, h.experiences(), http.StatusOK, func(v *View, col *screen.Collection[model.Experience]) any {
		e, ok := col.Find(id)
		if !ok {
			v.Dialog = &Dialog{Icon: "error", Title: "Failed", Text: "Experience not found"}
			return nil
		}
		return form.EditExperience(e)
	})
}

// HandleCreateExperience handles both list actions and the final submit of
// the create modal.
func (h *AdminHandler) HandleCreateExperience(w http.ResponseWriter, r *http.Request) {
	h.submitExperience(w, r, form.NewExperienceForm())
}

// HandleUpdateExperience is HandleCreateExperience for the edit modal.
func (h *AdminHandler) HandleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	f := &form.ExperienceForm{Mode: form.ModeEdit, ID: id}
	clientID, _ := identity(r)
	if col, ok := screen.Get[model.Experience](h.screens, clientID, "experiences"); ok {
		if e, ok := col.Find(id); ok {
			f.CurrentLogo = e.Logo
		}
	}
	h.submitExperience(w, r, f)
}

func (h *AdminHandler) submitExperience(w http.ResponseWriter, r *http.Request, f *form.ExperienceForm) {
	if err := f.Bind(r); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	c := h.experiences()

	// "+ Add" and "Remove" buttons post the whole form with an action.
	if action := r.PostForm.Get("action"); action != "" && f.Apply(action) {
		current(h, w, r, c, http.StatusOK, func(_ *View, _ *screen.Collection[model.Experience]) any { return f })
		return
	}

	clientID, token := identity(r)
	if err := h.content.SaveExperience(r.Context(), token, f); err != nil {
		current(h, w, r, c, errorStatus(err), func(v *View, _ *screen.Collection[model.Experience]) any {
			v.Dialog = failure("Failed", err)
			return f
		})
		return
	}

	h.screens.Drop(clientID, c.name)
	redirectWithFlash(w, r, c.listURL(), "Saved successfully")
}

// HandleConfirmDeleteExperience asks before deleting.
func (h *AdminHandler) HandleConfirmDeleteExperience(w http.ResponseWriter, r *http.Request) {
	confirmDelete(h, w, r, h.experiences(), nil)
}

// HandleDeleteExperience deletes and renders the list without a refetch.
func (h *AdminHandler) HandleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	deleteItem(h, w, r, h.experiences(), h.content.DeleteExperience, "Deleted", nil)
}
