package models

// Fandom is a named fan community tied to one artist. Static reference
// data, no lifecycle.
type Fandom struct {
	Name    string `json:"name"`
	Fanbase string `json:"fanbase"`
	Artist  string `json:"artist"`
}
