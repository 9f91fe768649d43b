package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio-site/internal/apperror"
	"github.com/sakif/portfolio-site/internal/auth"
	"github.com/sakif/portfolio-site/internal/screen"
	"github.com/sakif/portfolio-site/internal/service"
)

// AdminHandler serves the management screens behind the route guard.
//
// LIST STATE:
// Opening a screen (GET of its list URL) always fetches the list and stores
// it in the screen cache. Modals, confirmations and failed submits render
// from that cached list. A successful delete removes the item from the
// cached list and renders it straight away; a successful create or update
// redirects to the list URL, which fetches again.
type AdminHandler struct {
	pages   *Pages
	content *service.ContentService
	screens *screen.Cache
	logger  *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(pages *Pages, content *service.ContentService, screens *screen.Cache, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{pages: pages, content: content, screens: screens, logger: logger}
}

// listPage is the data of the list screens. Form is nil while no form or
// modal is open (techs always has one).
type listPage struct {
	Items any
	Form  any
}

// identity returns the client id and the admin token of r. The route guard
// guarantees both are present.
func identity(r *http.Request) (clientID, token string) {
	clientID, _ = auth.ClientIDFromContext(r.Context())
	if admin, ok := auth.SessionFromContext(r.Context()); ok {
		token = admin.Token
	}
	return clientID, token
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("item", raw)
	}
	return id, nil
}

func (h *AdminHandler) adminView(w http.ResponseWriter, r *http.Request, title, active string) View {
	v := h.pages.view(w, r, title)
	v.Active = active
	return v
}

// collection describes one management screen's list.
type collection[T screen.Identified] struct {
	name  string // cache key and URL segment, e.g. "experiences"
	title string // page title, e.g. "Experiences"
	noun  string // singular, e.g. "experience"
	page  string
	fetch func(ctx context.Context) ([]T, error)
}

func (c collection[T]) listURL() string { return "/admin/" + c.name }

// load returns the cached list, fetching it when refresh is set or nothing
// is cached. A failed fetch leaves the cache untouched.
func load[T screen.Identified](ctx context.Context, h *AdminHandler, c collection[T], clientID string, refresh bool) (*screen.Collection[T], error) {
	if !refresh {
		if col, ok := screen.Get[T](h.screens, clientID, c.name); ok {
			return col, nil
		}
	}

	items, err := c.fetch(ctx)
	if err != nil {
		return screen.NewCollection[T](nil), err
	}

	col := screen.NewCollection(items)
	screen.Put(h.screens, clientID, c.name, col)
	return col, nil
}

// renderList renders c's page with items and an optional form.
func renderList[T screen.Identified](h *AdminHandler, w http.ResponseWriter, status int, c collection[T], v View, col *screen.Collection[T], f any) {
	v.Data = listPage{Items: col.Items, Form: f}
	h.pages.render(w, status, c.page, v)
}

// mount fetches the list and renders it; f is the form to show, if any.
func mount[T screen.Identified](h *AdminHandler, w http.ResponseWriter, r *http.Request, c collection[T], f any) {
	clientID, _ := identity(r)
	v := h.adminView(w, r, c.title, c.name)

	status := http.StatusOK
	col, err := load(r.Context(), h, c, clientID, true)
	if err != nil {
		h.logger.Error("loading list",
			slog.String("collection", c.name),
			slog.String("error", err.Error()),
		)
		v.Dialog = failure("Failed to load "+c.name, err)
		status = errorStatus(err)
	}

	renderList(h, w, status, c, v, col, f)
}

// current renders the cached list (fetching only on a cache miss) with
// extra view state applied by decorate.
func current[T screen.Identified](h *AdminHandler, w http.ResponseWriter, r *http.Request, c collection[T], status int, decorate func(v *View, col *screen.Collection[T]) any) {
	clientID, _ := identity(r)
	v := h.adminView(w, r, c.title, c.name)

	col, err := load(r.Context(), h, c, clientID, false)
	if err != nil {
		v.Dialog = failure("Failed to load "+c.name, err)
		renderList(h, w, errorStatus(err), c, v, col, nil)
		return
	}

	f := decorate(&v, col)
	renderList(h, w, status, c, v, col, f)
}

// confirmDelete renders the blocking delete confirmation over the list.
func confirmDelete[T screen.Identified](h *AdminHandler, w http.ResponseWriter, r *http.Request, c collection[T], keep func(col *screen.Collection[T]) any) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	current(h, w, r, c, http.StatusOK, func(v *View, col *screen.Collection[T]) any {
		v.Confirm = &Confirm{
			Title:  fmt.Sprintf("Delete %s?", c.noun),
			Action: fmt.Sprintf("%s/%d/delete", c.listURL(), id),
		}
		if keep != nil {
			return keep(col)
		}
		return nil
	})
}

// deleteItem runs remove and then renders the list. On success the item is
// dropped from the cached list without a refetch and a toast is shown; on
// failure the list is left as it was and the error dialog is shown.
func deleteItem[T screen.Identified](
	h *AdminHandler,
	w http.ResponseWriter,
	r *http.Request,
	c collection[T],
	remove func(ctx context.Context, token string, id int64) error,
	toast string,
	keep func(col *screen.Collection[T]) any,
) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	clientID, token := identity(r)
	if err := remove(r.Context(), token, id); err != nil {
		h.logger.Error("delete failed",
			slog.String("collection", c.name),
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		current(h, w, r, c, errorStatus(err), func(v *View, col *screen.Collection[T]) any {
			v.Dialog = failure("Failed", err)
			if keep != nil {
				return keep(col)
			}
			return nil
		})
		return
	}

	current(h, w, r, c, http.StatusOK, func(v *View, col *screen.Collection[T]) any {
		col.Remove(id)
		screen.Put(h.screens, clientID, c.name, col)
		v.Flash = toast
		if keep != nil {
			return keep(col)
		}
		return nil
	})
}

// dashboardCard is one menu card on the dashboard.
type dashboardCard struct {
	Title string
	Text  string
	Href  string
}

type dashboardPage struct {
	Cards []dashboardCard
}

// HandleDashboard renders the four menu cards.
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	v := h.adminView(w, r, "Dashboard", "dashboard")
	v.Data = dashboardPage{Cards: []dashboardCard{
		{Title: "Profile", Text: "Manage your profile", Href: "/admin/profile"},
		{Title: "Techs", Text: "Manage your tech stack", Href: "/admin/techs"},
		{Title: "Experiences", Text: "Manage your experiences", Href: "/admin/experiences"},
		{Title: "Projects", Text: "Manage your projects", Href: "/admin/projects"},
	}}
	h.pages.render(w, http.StatusOK, pageDashboard, v)
}
