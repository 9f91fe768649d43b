package form

import (
	"net/http"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/model"
)

// ProjectForm backs the create and edit project modals.
type ProjectForm struct {
	Submission

	Mode        Mode
	ID          int64
	Name        string
	Description string
	Tech        StringList
	GitHub      string
	Demo        string
	Image       *apiclient.Upload

	CurrentImage string
}

// NewProjectForm returns a blank create form with one blank tech entry.
func NewProjectForm() *ProjectForm {
	return &ProjectForm{
		Mode: ModeCreate,
		Tech: StringList{""},
	}
}

// EditProject seeds an edit form from p.
func EditProject(p model.Project) *ProjectForm {
	return &ProjectForm{
		Mode:         ModeEdit,
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Tech:         orBlank(p.Tech),
		GitHub:       p.GitHub,
		Demo:         p.Demo,
		CurrentImage: p.Image,
	}
}

func (f *ProjectForm) Bind(r *http.Request) error {
	if err := parse(r); err != nil {
		return err
	}

	f.Name = r.PostForm.Get("name")
	f.Description = r.PostForm.Get("description")
	f.Tech = postedList(r, "tech")
	f.GitHub = r.PostForm.Get("github")
	f.Demo = r.PostForm.Get("demo")

	image, err := readUpload(r, "image")
	if err != nil {
		return err
	}
	f.Image = image
	return nil
}

func (f *ProjectForm) Apply(raw string) bool {
	return applyAction(raw, map[string]*StringList{"tech": &f.Tech})
}

func (f *ProjectForm) Payload() *apiclient.Payload {
	return apiclient.NewPayload().
		OptionalField("name", f.Name).
		OptionalField("description", f.Description).
		List("tech", f.Tech.Values()).
		OptionalField("github", f.GitHub).
		OptionalField("demo", f.Demo).
		File("image", f.Image)
}
