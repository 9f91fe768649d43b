package form

import (
	"net/http"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/model"
)

// ProfileForm edits the singleton profile. Unlike the other forms it
// always sends every scalar field, empty ones included.
type ProfileForm struct {
	Submission

	Name      string
	Title     string
	About     string
	Email     string
	Phone     string
	Address   string
	LinkedIn  string
	Instagram string
	GitHub    string
	Resume    string
	Photo     *apiclient.Upload

	CurrentPhoto string
}

// EditProfile seeds the form from p. A nil p gives a blank form.
func EditProfile(p *model.Profile) *ProfileForm {
	if p == nil {
		return &ProfileForm{}
	}
	return &ProfileForm{
		Name:         p.Name,
		Title:        p.Title,
		About:        p.About,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		LinkedIn:     p.LinkedIn,
		Instagram:    p.Instagram,
		GitHub:       p.GitHub,
		Resume:       p.Resume,
		CurrentPhoto: p.Photo,
	}
}

func (f *ProfileForm) Bind(r *http.Request) error {
	if err := parse(r); err != nil {
		return err
	}

	f.Name = r.PostForm.Get("name")
	f.Title = r.PostForm.Get("title")
	f.About = r.PostForm.Get("about")
	f.Email = r.PostForm.Get("email")
	f.Phone = r.PostForm.Get("phone")
	f.Address = r.PostForm.Get("address")
	f.LinkedIn = r.PostForm.Get("linkedin")
	f.Instagram = r.PostForm.Get("instagram")
	f.GitHub = r.PostForm.Get("github")
	f.Resume = r.PostForm.Get("resume")
	f.CurrentPhoto = r.PostForm.Get("current_photo")

	photo, err := readUpload(r, "photo")
	if err != nil {
		return err
	}
	f.Photo = photo
	return nil
}

func (f *ProfileForm) Payload() *apiclient.Payload {
	return apiclient.NewPayload().
		Field("name", f.Name).
		Field("title", f.Title).
		Field("about", f.About).
		Field("email", f.Email).
		Field("phone", f.Phone).
		Field("address", f.Address).
		Field("linkedin", f.LinkedIn).
		Field("instagram", f.Instagram).
		Field("github", f.GitHub).
		Field("resume", f.Resume).
		File("photo", f.Photo)
}
