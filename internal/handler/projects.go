package handler

import (
	"net/http"

	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
	"github.com/sakif/portfolio-site/internal/screen"
)

func (h *AdminHandler) projects() collection[model.Project] {
	return collection[model.Project]{
		name:  "projects",
		title: "Projects",
		noun:  "project",
		page:  pageProjects,
		fetch: h.content.Projects,
	}
}

func (h *AdminHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	mount(h, w, r, h.projects(), nil)
}

func (h *AdminHandler) HandleNewProject(w http.ResponseWriter, r *http.Request) {
	current(h, w, r, h.projects(), http.StatusOK, func(_ *View, _ *screen.Collection[model.Project]) any {
		return form.NewProjectForm()
	})
}

func (h *AdminHandler) HandleEditProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	current(h, w, r, h.projects(), http.StatusOK, func(v *View, col *screen.Collection[model.Project]) any {
		p, ok := col.Find(id)
		if !ok {
			v.Dialog = &Dialog{Icon: "error", Title: "Failed", Text: "Project not found"}
			return nil
		}
		return form.EditProject(p)
	})
}

func (h *AdminHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	h.submitProject(w, r, form.NewProjectForm())
}

func (h *AdminHandler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.pages.NotFound(w, r)
		return
	}

	f := &form.ProjectForm{Mode: form.ModeEdit, ID: id}
	clientID, _ := identity(r)
	if col, ok := screen.Get[model.Project](h.screens, clientID, "projects"); ok {
		if p, ok := col.Find(id); ok {
			f.CurrentImage = p.Image
		}
	}
	h.submitProject(w, r, f)
}

func (h *AdminHandler) submitProject(w http.ResponseWriter, r *http.Request, f *form.ProjectForm) {
	if err := f.Bind(r); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	c := h.projects()

	if action := r.PostForm.Get("action"); action != "" && f.Apply(action) {
		current(h, w, r, c, http.StatusOK, func(_ *View, _ *screen.Collection[model.Project]) any { return f })
		return
	}

	clientID, token := identity(r)
	if err := h.content.SaveProject(r.Context(), token, f); err != nil {
		current(h, w, r, c, errorStatus(err), func(v *View, _ *screen.Collection[model.Project]) any {
			v.Dialog = failure("Failed", err)
			return f
		})
		return
	}

	h.screens.Drop(clientID, c.name)
	redirectWithFlash(w, r, c.listURL(), "Saved Successfully")
}

func (h *AdminHandler) HandleConfirmDeleteProject(w http.ResponseWriter, r *http.Request) {
	confirmDelete(h, w, r, h.projects(), nil)
}

func (h *AdminHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	deleteItem(h, w, r, h.projects(), h.content.DeleteProject, "Deleted", nil)
}
