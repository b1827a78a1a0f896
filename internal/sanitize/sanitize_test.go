package sanitize

import "testing"

func TestLinkHref(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"javascript:alert(1)", "#"},
		{"JavaScript:alert(1)", "#"},
		{"https://example.com", "https://example.com"},
		{"  http://example.com/a?b=c  ", "http://example.com/a?b=c"},
		{"mailto:hello@example.com", "mailto:hello@example.com"},
		{"tel:+8613800000000", "tel:+8613800000000"},
		{"/docs/x", "/docs/x"},
		{"./local", "./local"},
		{"../up", "../up"},
		{"#narrative", "#narrative"},
		{"", "#"},
		{"   ", "#"},
		{"https://exa mple.com", "#"},
		{"https://example.com/\x00", "#"},
		{"https://example.com/\x7f", "#"},
		{"data:text/html,<b>x</b>", "#"},
		{"ftp://example.com", "#"},
		{"example.com/path", "#"},
		{"vbscript:msgbox", "#"},
		{"https://exa%zzmple.com", "#"},
		{"http://", "#"},
		{"https://", "#"},
		{"http:", "#"},
		{"http://:80", "#"},
		{"https://user@", "#"},
		{"http:example.com", "http:example.com"},
		{"https:///example.com/a", "https:///example.com/a"},
		{"https://[::1]:8080/", "https://[::1]:8080/"},
		{"https://\ufeffa.com", "#"},
		{"\ufeffhttps://example.com\ufeff", "https://example.com"},
		{"https://localhost:8080/x", "https://localhost:8080/x"},
	}

	for _, tt := range tests {
		if got := LinkHref(tt.in); got != tt.expected {
			t.Errorf("LinkHref(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestImageSrc(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"javascript:alert(1)", ""},
		{"data:image/png;base64,AAA", "data:image/png;base64,AAA"},
		{"blob:https://example.com/0f1e", "blob:https://example.com/0f1e"},
		{"https://picsum.photos/seed/a/900/640", "https://picsum.photos/seed/a/900/640"},
		{"/img/a.png", "/img/a.png"},
		{"mailto:a@b.c", ""},
		{"tel:123", ""},
		{"img.png", ""},
		{"\thttps://example.com/a.png\n", "https://example.com/a.png"},
		{"https://example.com/a b.png", ""},
		{"https://", ""},
		{"http://", ""},
		{"http:", ""},
		{"https://a.com/\ufeff.png", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ImageSrc(tt.in); got != tt.expected {
			t.Errorf("ImageSrc(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestCSSColor(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"#1f6feb", "#1f6feb"},
		{"#fff", "#fff"},
		{"#11223344", "#11223344"},
		{"rgb(31, 111, 235)", "rgb(31, 111, 235)"},
		{"hsl(210 80% 52%)", "hsl(210 80% 52%)"},
		{"rebeccapurple", "rebeccapurple"},
		{"", ""},
		{"#12", ""},
		{"red; background: url(x)", ""},
		{"url(javascript:alert(1))", ""},
		{"expression(alert(1))", ""},
	}

	for _, tt := range tests {
		if got := CSSColor(tt.in); got != tt.expected {
			t.Errorf("CSSColor(%q): expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}
