package handler

import (
	"net/http"
	"net/url"
)

// flashCookie carries a one-shot toast across the redirect that follows a
// successful write.
const flashCookie = "flash"

func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending toast, if any, and deletes the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

// redirectWithFlash queues message and sends the browser to target.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	setFlash(w, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
