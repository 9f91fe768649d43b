package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-site/internal/auth"
	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/service"
)

// AuthHandler serves the login page and the logout action.
type AuthHandler struct {
	pages    *Pages
	auth     *service.AuthService
	sessions auth.SessionReader
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(pages *Pages, authService *service.AuthService, sessions auth.SessionReader, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{pages: pages, auth: authService, sessions: sessions, logger: logger}
}

type loginPage struct {
	Form *form.LoginForm
}

// HandleLoginPage renders the login form. A browser that is already signed
// in goes straight to the dashboard.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())
	if _, ok := h.sessions.Current(r.Context(), clientID); ok {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	v := h.pages.view(w, r, "Admin Login")
	v.Data = loginPage{Form: &form.LoginForm{}}
	h.pages.render(w, http.StatusOK, pageLogin, v)
}

// HandleLogin checks the credentials with the backend and, on success,
// records the session and opens the dashboard.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())

	f := &form.LoginForm{}
	if err := f.Bind(r); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	if _, err := h.auth.Login(r.Context(), clientID, f); err != nil {
		v := h.pages.view(w, r, "Admin Login")
		v.Dialog = failure("Login failed", err)
		f.Password = ""
		v.Data = loginPage{Form: f}
		h.pages.render(w, errorStatus(err), pageLogin, v)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// HandleLogout forgets the session and returns to the login page.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())

	if err := h.auth.Logout(r.Context(), clientID); err != nil {
		// The in-memory session is cleared regardless, so the browser is
		// signed out for this process either way.
		h.logger.Error("logout", slog.String("error", err.Error()))
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
