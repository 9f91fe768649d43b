// Package theme keeps the light/dark flag of each browser.
package theme

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/portfolio-site/internal/repository"
)

// Theme is the persisted flag value.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse returns the Theme for s, or false if s is not a known theme.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Controller reads and toggles the theme stored under the "theme" key.
// A browser with nothing stored gets the configured default; there is no
// system-preference detection.
type Controller struct {
	storage  repository.LocalStorage
	fallback Theme
	logger   *slog.Logger
}

// NewController creates a Controller. An unknown fallback becomes Light.
func NewController(storage repository.LocalStorage, fallback Theme, logger *slog.Logger) *Controller {
	if _, ok := Parse(string(fallback)); !ok {
		fallback = Light
	}
	return &Controller{storage: storage, fallback: fallback, logger: logger}
}

// Current returns the theme of clientID. Storage failures and unknown stored
// values degrade to the default so a page always renders.
func (c *Controller) Current(ctx context.Context, clientID string) Theme {
	value, ok, err := c.storage.GetItem(ctx, clientID, repository.KeyTheme)
	if err != nil {
		c.logger.Warn("reading theme failed",
			slog.String("client", clientID),
			slog.String("error", err.Error()),
		)
		return c.fallback
	}
	if !ok {
		return c.fallback
	}
	t, ok := Parse(value)
	if !ok {
		return c.fallback
	}
	return t
}

// Toggle flips and persists the theme of clientID and returns the new one.
func (c *Controller) Toggle(ctx context.Context, clientID string) (Theme, error) {
	next := c.Current(ctx, clientID).Opposite()
	if err := c.storage.SetItem(ctx, clientID, repository.KeyTheme, string(next)); err != nil {
		return "", fmt.Errorf("theme: persisting %s: %w", next, err)
	}
	return next, nil
}
