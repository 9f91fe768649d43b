package model

// Tech is one entry of the tech-stack list. Icon is a URL.
type Tech struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// GetID lets Tech live in a screen.Collection.
func (t Tech) GetID() int64 { return t.ID }
