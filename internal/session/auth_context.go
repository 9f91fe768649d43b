package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/repository"
)

// AuthContext exposes login and logout over the Store and local storage.
type AuthContext struct {
	store   *Store
	storage repository.LocalStorage
	logger  *slog.Logger
}

// NewAuthContext wires an AuthContext. The same Store must not be shared
// with another AuthContext.
func NewAuthContext(store *Store, storage repository.LocalStorage, logger *slog.Logger) *AuthContext {
	return &AuthContext{
		store:   store,
		storage: storage,
		logger:  logger,
	}
}

// Login records admin as the signed-in administrator of clientID and
// mirrors it to local storage as "token" (raw) and "user" (JSON).
//
// The backend call that produced admin happens before this; Login itself
// never touches the network.
func (a *AuthContext) Login(ctx context.Context, clientID string, admin model.AdminSession) error {
	user, err := json.Marshal(admin)
	if err != nil {
		return fmt.Errorf("session: encoding user: %w", err)
	}

	if err := a.storage.SetItem(ctx, clientID, repository.KeyToken, admin.Token); err != nil {
		return fmt.Errorf("session: persisting token: %w", err)
	}
	if err := a.storage.SetItem(ctx, clientID, repository.KeyUser, string(user)); err != nil {
		return fmt.Errorf("session: persisting user: %w", err)
	}

	a.store.set(clientID, admin)

	a.logger.Info("admin signed in",
		slog.String("client", clientID),
		slog.String("username", admin.Username),
	)
	return nil
}

// Logout removes both local storage entries and the in-memory record.
// The in-memory record is cleared even when storage fails.
func (a *AuthContext) Logout(ctx context.Context, clientID string) error {
	defer a.store.clear(clientID)

	if err := a.storage.RemoveItem(ctx, clientID, repository.KeyToken); err != nil {
		return fmt.Errorf("session: removing token: %w", err)
	}
	if err := a.storage.RemoveItem(ctx, clientID, repository.KeyUser); err != nil {
		return fmt.Errorf("session: removing user: %w", err)
	}

	a.logger.Info("admin signed out", slog.String("client", clientID))
	return nil
}

// Current returns the signed-in administrator of clientID.
//
// The first call for a client reads local storage once: only when both
// "token" and "user" are present (and "user" decodes) does the Store start
// with a session. Later calls are served from memory.
func (a *AuthContext) Current(ctx context.Context, clientID string) (*model.AdminSession, bool) {
	if !a.store.Known(clientID) {
		if err := a.hydrate(ctx, clientID); err != nil {
			// Not remembered as hydrated, so the next request retries.
			a.logger.Error("session hydration failed",
				slog.String("client", clientID),
				slog.String("error", err.Error()),
			)
			return nil, false
		}
	}
	return a.store.Get(clientID)
}

func (a *AuthContext) hydrate(ctx context.Context, clientID string) error {
	token, hasToken, err := a.storage.GetItem(ctx, clientID, repository.KeyToken)
	if err != nil {
		return err
	}
	user, hasUser, err := a.storage.GetItem(ctx, clientID, repository.KeyUser)
	if err != nil {
		return err
	}

	if !hasToken || !hasUser || token == "" || user == "" {
		a.store.hydrate(clientID, nil)
		return nil
	}

	var admin model.AdminSession
	if err := json.Unmarshal([]byte(user), &admin); err != nil {
		a.logger.Warn("discarding unreadable stored user",
			slog.String("client", clientID),
			slog.String("error", err.Error()),
		)
		a.store.hydrate(clientID, nil)
		return nil
	}

	a.store.hydrate(clientID, &admin)
	return nil
}
