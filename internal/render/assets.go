package render

import (
	_ "embed"
)

//go:embed assets/page.css
var stylesheet string

//go:embed assets/live.js
var liveScript string

// Stylesheet is shared by the live preview and the export document
func Stylesheet() string {
	return stylesheet
}

// LiveScript drives the interactive preview: section reveal, scroll spy,
// lightbox, and websocket reload
func LiveScript() string {
	return liveScript
}
