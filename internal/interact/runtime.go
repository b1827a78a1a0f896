package interact

import "encoding/json"

// RuntimeVar is the global the browser scripts read their settings from
const RuntimeVar = "__pagesmithInteract"

// DefaultRevealThreshold is the visible fraction at which a section is
// reported as intersecting
const DefaultRevealThreshold = 0.15

// RuntimeKeys maps viewer actions to keyboard key names
type RuntimeKeys struct {
	Close string `json:"close"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// Runtime carries the parameters of ScrollSpy, Visibility and Lightbox to
// the scripts that implement them in the browser
type Runtime struct {
	SpyOffset       float64     `json:"spyOffset"`
	RevealThreshold float64     `json:"revealThreshold"`
	Keys            RuntimeKeys `json:"keys"`
}

// DefaultRuntime returns the settings the state machines use by default
func DefaultRuntime() Runtime {
	return Runtime{
		SpyOffset:       NewScrollSpy(0).offset,
		RevealThreshold: DefaultRevealThreshold,
		Keys: RuntimeKeys{
			Close: KeyEscape,
			Next:  KeyArrowRight,
			Prev:  KeyArrowLeft,
		},
	}
}

// Prelude returns the statement that defines RuntimeVar; it must run before
// either script
func (r Runtime) Prelude() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return "var " + RuntimeVar + " = " + string(data) + ";\n", nil
}
