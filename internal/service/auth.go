package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
)

// SessionWriter records and forgets the signed-in admin of a browser.
// *session.AuthContext satisfies it.
type SessionWriter interface {
	Login(ctx context.Context, clientID string, admin model.AdminSession) error
	Logout(ctx context.Context, clientID string) error
}

// AuthService signs administrators in and out.
//
//	AuthHandler (HTTP) → AuthService → Backend (credential check)
//	                                 ↘ SessionWriter (memory + local storage)
//
// The backend owns the credentials; this process never sees a password hash.
type AuthService struct {
	backend  Backend
	sessions SessionWriter
	logger   *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(backend Backend, sessions SessionWriter, logger *slog.Logger) *AuthService {
	return &AuthService{backend: backend, sessions: sessions, logger: logger}
}

// Login checks f, asks the backend to authenticate, and on success records
// the returned session for clientID. f keeps its values on failure.
func (s *AuthService) Login(ctx context.Context, clientID string, f *form.LoginForm) (*model.AdminSession, error) {
	if err := f.Validate(); err != nil {
		f.Fail(err)
		return nil, err
	}

	var admin *model.AdminSession
	err := f.Submit(ctx, func(ctx context.Context) error {
		a, err := s.backend.Login(ctx, f.Username, f.Password)
		if err != nil {
			return err
		}
		if err := s.sessions.Login(ctx, clientID, *a); err != nil {
			return fmt.Errorf("service/auth: recording session: %w", err)
		}
		admin = a
		return nil
	})
	if err != nil {
		s.logger.Warn("login failed",
			slog.String("username", f.Username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return admin, nil
}

// Logout forgets the session of clientID. No backend call is made.
func (s *AuthService) Logout(ctx context.Context, clientID string) error {
	if err := s.sessions.Logout(ctx, clientID); err != nil {
		return fmt.Errorf("service/auth: logging out: %w", err)
	}
	return nil
}
