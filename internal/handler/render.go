// Package handler contains the HTTP handlers of the site.
//
// Every page is rendered on the server from the embedded templates in
// package web. A handler's job is the glue:
//  1. read the request (path params, query, posted form)
//  2. call a service
//  3. render a page, or redirect after a successful write
//
// Handlers never talk to the backend or the database directly.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sakif/portfolio-site/internal/auth"
	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/theme"
)

// Page names. Admin pages are wrapped in the sidebar layout.
const (
	pageHome        = "home.html"
	pageLogin       = "login.html"
	pageNotFound    = "not_found.html"
	pageDashboard   = "dashboard.html"
	pageProfile     = "profile.html"
	pageTechs       = "techs.html"
	pageExperiences = "experiences.html"
	pageProjects    = "projects.html"
)

var publicPages = []string{pageHome, pageLogin, pageNotFound}

var adminPages = []string{pageDashboard, pageProfile, pageTechs, pageExperiences, pageProjects}

// View is what every template receives.
type View struct {
	Title  string
	Theme  theme.Theme
	Assets theme.Assets
	Admin  *model.AdminSession
	Active string // highlighted sidebar entry

	Flash   string   // success toast
	Dialog  *Dialog  // error dialog
	Confirm *Confirm // blocking delete confirmation

	Data any
}

// Dialog is a modal message with a single OK button.
type Dialog struct {
	Icon  string // "error" or "success"
	Title string
	Text  string
}

// Confirm asks before a delete. Action is the URL the delete is posted to.
type Confirm struct {
	Title  string
	Action string
}

// listField is the argument of the "list-field" partial.
type listField struct {
	Name   string
	Label  string
	Values form.StringList
}

var funcs = template.FuncMap{
	"months": model.Months,
	"waLink": func(phone string) string { return "https://wa.me/" + phone },
	"instagramLink": func(handle string) string {
		return "https://www.instagram.com/" + handle
	},
	"listField": func(name, label string, values form.StringList) listField {
		return listField{Name: name, Label: label, Values: values}
	},
	"join": strings.Join,
}

// Renderer holds one parsed template set per page, parsed once at startup.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page from fsys, which must contain the
// templates/ tree (layout/, partials/, pages/).
//
// TEMPLATE COMPOSITION:
// layout/base.html defines "base" and calls {{template "content" .}}.
// Public pages define "content" themselves. Admin pages define "main";
// layout/admin.html defines "content" as the sidebar around "main".
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	parse := func(name string, layouts ...string) error {
		patterns := append([]string{"templates/layout/base.html", "templates/partials/*.html"}, layouts...)
		patterns = append(patterns, "templates/pages/"+name)
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, patterns...)
		if err != nil {
			return fmt.Errorf("handler: parsing %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	}

	for _, name := range publicPages {
		if err := parse(name); err != nil {
			return nil, err
		}
	}
	for _, name := range adminPages {
		if err := parse(name, "templates/layout/admin.html"); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Render executes page into a buffer first, so a template error never
// leaves a half-written page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, v View) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("handler: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", v); err != nil {
		return fmt.Errorf("handler: rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Pages bundles what every page handler needs: the renderer, the theme
// controller and a logger.
type Pages struct {
	renderer *Renderer
	themes   *theme.Controller
	logger   *slog.Logger
	now      func() time.Time
}

// NewPages creates a Pages.
func NewPages(renderer *Renderer, themes *theme.Controller, logger *slog.Logger) *Pages {
	return &Pages{renderer: renderer, themes: themes, logger: logger, now: time.Now}
}

// view starts a View for r: theme, pending toast and signed-in admin.
func (p *Pages) view(w http.ResponseWriter, r *http.Request, title string) View {
	clientID, _ := auth.ClientIDFromContext(r.Context())
	t := p.themes.Current(r.Context(), clientID)

	v := View{
		Title:  title,
		Theme:  t,
		Assets: theme.AssetsFor(t),
		Flash:  popFlash(w, r),
	}
	if admin, ok := auth.SessionFromContext(r.Context()); ok {
		v.Admin = admin
	}
	return v
}

// render writes page, or a plain 500 when the template itself fails.
func (p *Pages) render(w http.ResponseWriter, status int, page string, v View) {
	if err := p.renderer.Render(w, status, page, v); err != nil {
		p.logger.Error("render failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusNotFound, pageNotFound, p.view(w, r, "Not Found"))
}
