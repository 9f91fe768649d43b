package model

// Profile is the singleton record shown in the hero, contact and footer
// sections of the public page. Photo is a URL and may be empty.
type Profile struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	About     string `json:"about"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	GitHub    string `json:"github"`
	Resume    string `json:"resume"`
	Photo     string `json:"photo,omitempty"`
}
