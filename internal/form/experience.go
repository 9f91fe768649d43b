package form

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/model"
)

// ExperienceForm backs the create and edit experience modals.
// Years are kept as typed so a bad value is shown back unchanged.
type ExperienceForm struct {
	Submission

	Mode       Mode
	ID         int64
	Position   string
	Company    string
	StartMonth string
	StartYear  string
	EndMonth   string
	EndYear    string
	Jobdesk    StringList
	Tech       StringList
	Logo       *apiclient.Upload

	// CurrentLogo is the stored logo URL, shown while editing.
	CurrentLogo string
}

// NewExperienceForm returns a blank create form: one blank jobdesk entry,
// one blank tech entry, start month January.
func NewExperienceForm() *ExperienceForm {
	return &ExperienceForm{
		Mode:       ModeCreate,
		StartMonth: string(model.January),
		Jobdesk:    StringList{""},
		Tech:       StringList{""},
	}
}

// EditExperience seeds an edit form from e.
func EditExperience(e model.Experience) *ExperienceForm {
	f := &ExperienceForm{
		Mode:        ModeEdit,
		ID:          e.ID,
		Position:    e.Position,
		Company:     e.Company,
		StartMonth:  normalizeMonth(string(e.StartMonth)),
		EndMonth:    normalizeMonth(string(e.EndMonth)),
		Jobdesk:     orBlank(e.Jobdesk),
		Tech:        orBlank(e.Tech),
		CurrentLogo: e.Logo,
	}
	if f.StartMonth == "" {
		f.StartMonth = string(model.January)
	}
	if e.StartYear != 0 {
		f.StartYear = strconv.Itoa(e.StartYear)
	}
	if e.EndYear != 0 {
		f.EndYear = strconv.Itoa(e.EndYear)
	}
	return f
}

// Bind reads every field from r. List fields arrive as repeated keys.
func (f *ExperienceForm) Bind(r *http.Request) error {
	if err := parse(r); err != nil {
		return err
	}

	f.Position = r.PostForm.Get("position")
	f.Company = r.PostForm.Get("company")
	f.StartMonth = normalizeMonth(r.PostForm.Get("start_month"))
	f.StartYear = r.PostForm.Get("start_year")
	f.EndMonth = normalizeMonth(r.PostForm.Get("end_month"))
	f.EndYear = r.PostForm.Get("end_year")
	f.Jobdesk = postedList(r, "jobdesk")
	f.Tech = postedList(r, "tech")

	logo, err := readUpload(r, "logo")
	if err != nil {
		return err
	}
	f.Logo = logo
	return nil
}

// normalizeMonth upper-cases a month name so it matches the select options
// and the backend's format. "present" stays lower-case; anything else is
// kept as typed for the backend to reject.
func normalizeMonth(s string) string {
	if m, ok := model.ParseMonth(s); ok {
		return string(m)
	}
	if strings.EqualFold(strings.TrimSpace(s), model.Present) {
		return model.Present
	}
	return s
}

// Apply runs a list action ("add:jobdesk", "remove:tech:1") and reports
// whether raw was one.
func (f *ExperienceForm) Apply(raw string) bool {
	return applyAction(raw, map[string]*StringList{
		"jobdesk": &f.Jobdesk,
		"tech":    &f.Tech,
	})
}

// EndsPresent reports whether "present" is selected as the end month.
func (f *ExperienceForm) EndsPresent() bool {
	return f.EndMonth == model.Present
}

// Payload builds the multipart body. Empty scalars are left out, list
// entries are sent in order (blank ones too) and the logo only when chosen.
func (f *ExperienceForm) Payload() *apiclient.Payload {
	return apiclient.NewPayload().
		OptionalField("position", f.Position).
		OptionalField("company", f.Company).
		OptionalField("start_month", f.StartMonth).
		OptionalField("start_year", f.StartYear).
		OptionalField("end_month", f.EndMonth).
		OptionalField("end_year", f.EndYear).
		List("jobdesk", f.Jobdesk.Values()).
		List("tech", f.Tech.Values()).
		File("logo", f.Logo)
}
