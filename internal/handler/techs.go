package handler

import (
	"net/http"
	"strconv"

	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/screen"
)

func (h *AdminHandler) techs() collection[model.Tech] {
	return collection[model.Tech]{
		name:  "techs",
		title: "Techs",
		noun:  "tech",
		page:  pageTechs,
		fetch: h.content.Techs,
	}
}

// blankTechForm keeps the inline form on screen while another action runs.
func blankTechForm(_ *screen.Collection[model.Tech]) any {
	return form.NewTechForm()
}

// HandleTechs opens the screen. With ?edit={id} the inline form is bound to
// that tech and the cached list is reused; without it the list is fetched
// and the form is blank.
func (h *AdminHandler) HandleTechs(w http.ResponseWriter, r *http.Request) {
	c := h.techs()

	raw := r.URL.Query().Get("edit")
	if raw == "" {
		mount(h, w, r, c, form.NewTechForm())
		return
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	current(h, w, r, c, http.StatusOK, func(v *View, col *screen.Collection[model.Tech]) any {
		if err != nil {
			return form.NewTechForm()
		}
		t, ok := col.Find(id)
		if !ok {
			v.Dialog = &Dialog{Icon: "error", Title: "Error", Text: "Tech not found"}
			return form.NewTechForm()
		}
		return form.EditTech(t)
	})
}

// HandleSaveTech creates a tech, or updates the one being edited. The
// required-field check shows its dialog before any network call.
func (h *AdminHandler) HandleSaveTech(w http.ResponseWriter, r *http.Request) {
	f := form.NewTechForm()
	if err := f.Bind(r); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	c := h.techs()
	editing := f.Mode() == form.ModeEdit

	clientID, token := identity(r)
	if err := h.content.SaveTech(r.Context(), token, f); err != nil {
		current(h, w, r, c, errorStatus(err), func(v *View, _ *screen.Collection[model.Tech]) any {
			v.Dialog = failure("Error", err)
			return f
		})
		return
	}

	toast := "Tech Created"
	if editing {
		toast = "Tech updated"
	}
	h.screens.Drop(clientID, c.name)
	redirectWithFlash(w, r, c.listURL(), toast)
}

func (h *AdminHandler) HandleConfirmDeleteTech(w http.ResponseWriter, r *http.Request) {
	confirmDelete(h, w, r, h.techs(), blankTechForm)
}

func (h *AdminHandler) HandleDeleteTech(w http.ResponseWriter, r *http.Request) {
	deleteItem(h, w, r, h.techs(), h.content.DeleteTech, "Tech removed", blankTechForm)
}
