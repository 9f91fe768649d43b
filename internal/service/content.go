// Package service contains the business logic layer of the site.
//
// THE LAYERS:
//
//	Handler (HTTP layer)     → binds forms, renders pages, sets cookies
//	Service (business layer) → validates, drives the form state, calls the backend
//	Backend (apiclient)      → the external portfolio REST API
//
// Services take their collaborators as interfaces (Backend, SessionWriter),
// so tests pass in-memory fakes instead of a live backend.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
)

// Backend is the part of the portfolio REST API the services use.
// *apiclient.Client satisfies it.
type Backend interface {
	GetProfile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, token string, p *apiclient.Payload) error

	ListTechs(ctx context.Context) ([]model.Tech, error)
	CreateTech(ctx context.Context, token string, p *apiclient.Payload) error
	UpdateTech(ctx context.Context, token string, id int64, p *apiclient.Payload) error
	DeleteTech(ctx context.Context, token string, id int64) error

	ListExperiences(ctx context.Context) ([]model.Experience, error)
	CreateExperience(ctx context.Context, token string, p *apiclient.Payload) error
	UpdateExperience(ctx context.Context, token string, id int64, p *apiclient.Payload) error
	DeleteExperience(ctx context.Context, token string, id int64) error

	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, token string, p *apiclient.Payload) error
	UpdateProject(ctx context.Context, token string, id int64, p *apiclient.Payload) error
	DeleteProject(ctx context.Context, token string, id int64) error

	Login(ctx context.Context, username, password string) (*model.AdminSession, error)
}

var _ Backend = (*apiclient.Client)(nil)

// ContentService reads and writes the portfolio content for the admin
// screens. Every write carries the signed-in admin's token.
type ContentService struct {
	backend Backend
	logger  *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(backend Backend, logger *slog.Logger) *ContentService {
	return &ContentService{backend: backend, logger: logger}
}

// Profile

func (s *ContentService) Profile(ctx context.Context) (*model.Profile, error) {
	p, err := s.backend.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: loading profile: %w", err)
	}
	return p, nil
}

// SaveProfile sends the profile form as one multipart PUT.
func (s *ContentService) SaveProfile(ctx context.Context, token string, f *form.ProfileForm) error {
	return f.Submit(ctx, func(ctx context.Context) error {
		if err := s.backend.UpdateProfile(ctx, token, f.Payload()); err != nil {
			return err
		}
		s.logger.Info("profile updated")
		return nil
	})
}

// Techs

func (s *ContentService) Techs(ctx context.Context) ([]model.Tech, error) {
	techs, err := s.backend.ListTechs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: listing techs: %w", err)
	}
	return techs, nil
}

// SaveTech creates a tech, or updates f.EditingID when one is set. The
// required-field check runs first and fails the form without a network call.
func (s *ContentService) SaveTech(ctx context.Context, token string, f *form.TechForm) error {
	if err := f.Validate(); err != nil {
		f.Fail(err)
		return err
	}

	return f.Submit(ctx, func(ctx context.Context) error {
		if f.Mode() == form.ModeEdit {
			if err := s.backend.UpdateTech(ctx, token, f.EditingID, f.Payload()); err != nil {
				return err
			}
			s.logger.Info("tech updated", slog.Int64("id", f.EditingID))
			return nil
		}

		if err := s.backend.CreateTech(ctx, token, f.Payload()); err != nil {
			return err
		}
		s.logger.Info("tech created", slog.String("name", f.Name))
		return nil
	})
}

func (s *ContentService) DeleteTech(ctx context.Context, token string, id int64) error {
	if err := s.backend.DeleteTech(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info("tech deleted", slog.Int64("id", id))
	return nil
}

// Experiences

func (s *ContentService) Experiences(ctx context.Context) ([]model.Experience, error) {
	exps, err := s.backend.ListExperiences(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: listing experiences: %w", err)
	}
	return exps, nil
}

func (s *ContentService) SaveExperience(ctx context.Context, token string, f *form.ExperienceForm) error {
	return f.Submit(ctx, func(ctx context.Context) error {
		if f.Mode == form.ModeEdit {
			if err := s.backend.UpdateExperience(ctx, token, f.ID, f.Payload()); err != nil {
				return err
			}
			s.logger.Info("experience updated", slog.Int64("id", f.ID))
			return nil
		}

		if err := s.backend.CreateExperience(ctx, token, f.Payload()); err != nil {
			return err
		}
		s.logger.Info("experience created", slog.String("company", f.Company))
		return nil
	})
}

func (s *ContentService) DeleteExperience(ctx context.Context, token string, id int64) error {
	if err := s.backend.DeleteExperience(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info("experience deleted", slog.Int64("id", id))
	return nil
}

// Projects

func (s *ContentService) Projects(ctx context.Context) ([]model.Project, error) {
	projects, err := s.backend.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: listing projects: %w", err)
	}
	return projects, nil
}

func (s *ContentService) SaveProject(ctx context.Context, token string, f *form.ProjectForm) error {
	return f.Submit(ctx, func(ctx context.Context) error {
		if f.Mode == form.ModeEdit {
			if err := s.backend.UpdateProject(ctx, token, f.ID, f.Payload()); err != nil {
				return err
			}
			s.logger.Info("project updated", slog.Int64("id", f.ID))
			return nil
		}

		if err := s.backend.CreateProject(ctx, token, f.Payload()); err != nil {
			return err
		}
		s.logger.Info("project created", slog.String("name", f.Name))
		return nil
	})
}

func (s *ContentService) DeleteProject(ctx context.Context, token string, id int64) error {
	if err := s.backend.DeleteProject(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", slog.Int64("id", id))
	return nil
}
