package form

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/model"
)

// TechRequiredMessage is shown when the inline tech form is submitted
// without a name, or without an icon while creating.
const TechRequiredMessage = "Name & icon are required"

// TechForm is the inline form on the techs screen. A non-zero EditingID
// means the next submit updates that tech; zero means it creates one.
type TechForm struct {
	Submission

	EditingID int64
	Name      string
	Icon      *apiclient.Upload
}

// techInput is the part of TechForm the required-field check looks at.
type techInput struct {
	EditingID int64
	Name      string `validate:"required"`
	HasIcon   bool   `validate:"required_without=EditingID"`
}

// NewTechForm returns the blank form shown when no tech is being edited.
func NewTechForm() *TechForm {
	return &TechForm{}
}

// EditTech seeds the form from t. The icon is not re-sent unless a new
// file is chosen.
func EditTech(t model.Tech) *TechForm {
	return &TechForm{EditingID: t.ID, Name: t.Name}
}

// Mode reports create or edit.
func (f *TechForm) Mode() Mode {
	if f.EditingID != 0 {
		return ModeEdit
	}
	return ModeCreate
}

// Bind reads name, icon and the editing id from r. A missing or malformed
// editing_id means create.
func (f *TechForm) Bind(r *http.Request) error {
	if err := parse(r); err != nil {
		return err
	}
	f.Name = r.PostForm.Get("name")
	f.EditingID = 0
	if raw := r.PostForm.Get("editing_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.EditingID = id
		}
	}

	icon, err := readUpload(r, "icon")
	if err != nil {
		return err
	}
	f.Icon = icon
	return nil
}

// Validate runs the required-field check before any network call.
func (f *TechForm) Validate() error {
	in := techInput{
		EditingID: f.EditingID,
		Name:      strings.TrimSpace(f.Name),
		HasIcon:   f.Icon != nil,
	}
	return check(in, TechRequiredMessage)
}

// Payload builds the multipart body: name always, icon only when chosen.
func (f *TechForm) Payload() *apiclient.Payload {
	return apiclient.NewPayload().
		Field("name", f.Name).
		File("icon", f.Icon)
}
