// Package sanitize guards every user-supplied string that ends up in an
// href, src, or style attribute. Rejection is never an error: callers get a
// harmless default back.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

const (
	// RejectedHref replaces unsafe link targets
	RejectedHref = "#"
	// RejectedSrc replaces unsafe image sources
	RejectedSrc = ""
)

var (
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\d+.-]*:`)

	linkSchemes  = []string{"http", "https", "mailto", "tel"}
	imageSchemes = []string{"http", "https", "blob", "data"}

	relativePrefixes = []string{"/", "./", "../", "#"}
)

// LinkHref returns raw when it is a relative reference or an http, https,
// mailto or tel URL, and "#" otherwise
func LinkHref(raw string) string {
	if s, ok := clean(raw, linkSchemes); ok {
		return s
	}
	return RejectedHref
}

// ImageSrc returns raw when it is a relative reference or an http, https,
// blob or data URL, and "" otherwise
func ImageSrc(raw string) string {
	if s, ok := clean(raw, imageSchemes); ok {
		return s
	}
	return RejectedSrc
}

func clean(raw string, allowed []string) (string, bool) {
	s := strings.TrimFunc(raw, isTrimmed)
	if s == "" || hasUnsafeRune(s) {
		return "", false
	}

	for _, prefix := range relativePrefixes {
		if strings.HasPrefix(s, prefix) {
			return s, true
		}
	}

	if !schemePattern.MatchString(s) {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if (scheme == "http" || scheme == "https") && authority(s) == "" {
		return "", false
	}
	for _, a := range allowed {
		if scheme == a {
			return s, true
		}
	}
	return "", false
}

// authority returns the host of an http(s) URL the way browsers find it:
// any run of slashes after the scheme is skipped, then userinfo and port are
// dropped. "http:", "https://" and "http://:80" have none.
func authority(s string) string {
	rest := strings.TrimLeft(s[strings.IndexByte(s, ':')+1:], `/\`)
	if i := strings.IndexAny(rest, `/?#\`); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, ':'); i >= 0 && !strings.Contains(rest[i:], "]") {
		rest = rest[:i]
	}
	return rest
}

func isTrimmed(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r)
}

func hasUnsafeRune(s string) bool {
	for _, r := range s {
		if r <= 31 || r == 127 || r == '\ufeff' || unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(\s*[0-9.%]+(?:\s*[,/ ]\s*[0-9.%]+){2,3}\s*\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,30}$`)
)

// CSSColor returns raw when it looks like a single color token (hex, rgb(),
// hsl() or a keyword) and "" otherwise. The accent color is written into an
// inline style, so anything that could close the declaration is dropped.
func CSSColor(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return ""
	case hexColor.MatchString(s), funcColor.MatchString(s), namedColor.MatchString(s):
		return s
	default:
		return ""
	}
}
