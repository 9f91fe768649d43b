package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/portfolio-site/internal/model"
)

// HomeData is everything the public page shows.
type HomeData struct {
	Profile     *model.Profile
	Techs       []model.Tech
	Experiences []model.Experience
	Projects    []model.Project
}

// HomeService loads the public page.
type HomeService struct {
	backend Backend
	logger  *slog.Logger
}

// NewHomeService creates a HomeService.
func NewHomeService(backend Backend, logger *slog.Logger) *HomeService {
	return &HomeService{backend: backend, logger: logger}
}

// Load fetches the profile and the three lists concurrently.
//
// The join is fail-fast: the first error cancels the other requests and is
// returned, and none of the partial results are kept.
func (s *HomeService) Load(ctx context.Context) (*HomeData, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		profile     *model.Profile
		techs       []model.Tech
		experiences []model.Experience
		projects    []model.Project
	)

	g.Go(func() error {
		p, err := s.backend.GetProfile(ctx)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		t, err := s.backend.ListTechs(ctx)
		if err != nil {
			return fmt.Errorf("techs: %w", err)
		}
		techs = t
		return nil
	})
	g.Go(func() error {
		e, err := s.backend.ListExperiences(ctx)
		if err != nil {
			return fmt.Errorf("experiences: %w", err)
		}
		experiences = e
		return nil
	})
	g.Go(func() error {
		p, err := s.backend.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		projects = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service/home: loading public page: %w", err)
	}

	return &HomeData{
		Profile:     profile,
		Techs:       techs,
		Experiences: experiences,
		Projects:    projects,
	}, nil
}
