package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/auth"
	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/service"
	"github.com/sakif/portfolio-site/internal/theme"
)

// HomeHandler serves the public page, the theme toggle and the health check.
type HomeHandler struct {
	pages  *Pages
	home   *service.HomeService
	themes *theme.Controller
	db     Pinger
	logger *slog.Logger
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHomeHandler creates a HomeHandler. db may be nil, in which case the
// health check only reports that the process is up.
func NewHomeHandler(pages *Pages, home *service.HomeService, themes *theme.Controller, db Pinger, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{pages: pages, home: home, themes: themes, db: db, logger: logger}
}

// homePage is the data of home.html. Every field may be empty.
type homePage struct {
	Profile     *model.Profile
	Techs       []model.Tech
	Experiences []model.Experience
	Projects    []model.Project
	Year        int
}

// HandleHome renders the public page.
//
// The four reads are joined fail-fast. When any of them fails the error is
// logged and the page renders without data; the visitor never sees an
// error message.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	v := h.pages.view(w, r, "")
	page := homePage{Year: h.pages.now().Year()}

	data, err := h.home.Load(r.Context())
	if err != nil {
		h.logger.Error("loading public page",
			slog.String("error", err.Error()),
			slog.Bool("upstream", apiclient.IsUpstream(err)),
		)
	} else {
		page.Profile = data.Profile
		page.Techs = data.Techs
		page.Experiences = data.Experiences
		page.Projects = data.Projects
		if data.Profile != nil {
			v.Title = data.Profile.Name
		}
	}

	v.Data = page
	h.pages.render(w, http.StatusOK, pageHome, v)
}

// HandleToggleTheme flips the theme and sends the browser back where it came
// from. Only same-site paths are followed; anything else goes to /.
func (h *HomeHandler) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	clientID, _ := auth.ClientIDFromContext(r.Context())

	if _, err := h.themes.Toggle(r.Context(), clientID); err != nil {
		h.logger.Error("toggling theme", slog.String("error", err.Error()))
	}

	http.Redirect(w, r, localReferer(r), http.StatusSeeOther)
}

// localReferer returns the path of the Referer header when it points at
// this host, else "/".
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	target := ref.Path
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}

// HandleHealth answers {"status":"ok"}, or 503 when the database is gone.
func (h *HomeHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
				Error:   "unavailable",
				Message: "database unreachable",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
