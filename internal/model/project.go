package model

// PrivateRepository is the github value the backend uses for a project
// whose source is not public.
const PrivateRepository = "unavailable"

// Project is one portfolio project. Demo is optional.
type Project struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	GitHub      string   `json:"github"`
	Demo        string   `json:"demo,omitempty"`
	Image       string   `json:"image"`
}

// GetID lets Project live in a screen.Collection.
func (p Project) GetID() int64 { return p.ID }

// IsPrivate reports whether the repository link must be hidden.
func (p Project) IsPrivate() bool { return p.GitHub == PrivateRepository }

// HasDemo reports whether a live demo URL exists.
func (p Project) HasDemo() bool { return p.Demo != "" }
