package export

import (
	"regexp"
	"strings"
)

// FileExtension is appended to every exported file name
const FileExtension = ".html"

// fallbackBaseName is used when nothing of the title survives
const fallbackBaseName = "page"

var (
	unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9\p{Han}_-]+`)
	dashRuns   = regexp.MustCompile(`-+`)
)

// BaseName normalizes title into a filesystem-safe token: letters, digits,
// CJK ideographs, hyphen and underscore survive, everything else becomes a
// single hyphen. Edge hyphens are kept, so "Hello!" becomes "Hello-".
func BaseName(title string) string {
	clean := unsafeRuns.ReplaceAllString(strings.TrimSpace(title), "-")
	clean = dashRuns.ReplaceAllString(clean, "-")
	if clean == "" {
		return fallbackBaseName
	}
	return clean
}

// FileName returns the download name for a page titled title
func FileName(title string) string {
	return BaseName(title) + FileExtension
}
