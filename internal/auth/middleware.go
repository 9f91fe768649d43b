package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-site/internal/model"
)

// ClientCookie is the name of the cookie carrying the signed client id.
const ClientCookie = "client"

// contextKey is an unexported type so no other package can read or shadow
// the values stored here.
type contextKey string

const (
	clientIDKey contextKey = "clientID"
	sessionKey  contextKey = "session"
)

// CookieConfig controls the attributes of the client cookie.
type CookieConfig struct {
	Secure bool // set in production, where the site is served over HTTPS
}

// SessionReader answers whether a browser has a signed-in admin.
// *session.AuthContext satisfies it.
type SessionReader interface {
	Current(ctx context.Context, clientID string) (*model.AdminSession, bool)
}

// Identify makes sure every request has a client id.
//
// A valid "client" cookie is reused. A missing, expired or forged one is
// replaced: a new id is minted and a fresh cookie is set on the response.
// The id is stored in the context; read it with ClientIDFromContext.
func Identify(tokens *TokenService, cfg CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, err := extractClientID(r, tokens)
			if err != nil {
				clientID = NewClientID()
				signed, err := tokens.Generate(clientID)
				if err != nil {
					logger.Error("signing client cookie", slog.String("error", err.Error()))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(ClientIDLifetime.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), clientIDKey, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession is the route guard for the admin screens.
//
// It is evaluated on every request. Without a signed-in admin the browser is
// sent to /login (no return path is remembered); with one, the session is
// stored in the context and the protected screen renders.
//
// Identify must run first.
func RequireSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, ok := ClientIDFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			admin, ok := sessions.Current(r.Context(), clientID)
			if !ok || admin == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext returns the client id set by Identify.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok && id != ""
}

// SessionFromContext returns the admin session set by RequireSession.
func SessionFromContext(ctx context.Context) (*model.AdminSession, bool) {
	admin, ok := ctx.Value(sessionKey).(*model.AdminSession)
	return admin, ok && admin != nil
}

// WithClientID returns ctx carrying clientID. Handlers under test use it in
// place of Identify.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

func extractClientID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(ClientCookie)
	if err != nil {
		// http.ErrNoCookie: a first visit
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
