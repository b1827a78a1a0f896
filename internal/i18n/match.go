package i18n

import (
	"golang.org/x/text/language"
)

var (
	supportedTags = []language.Tag{
		language.MustParse(ZhCN),
		language.English,
	}
	matcher = language.NewMatcher(supportedTags)
)

// Match picks the best supported locale for the given preferences. Each
// preference may be a single tag ("en-US") or an Accept-Language header
// value ("en;q=0.8, zh;q=0.6"). No usable preference yields DefaultLocale.
func Match(preferences ...string) string {
	var tags []language.Tag
	for _, pref := range preferences {
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return DefaultLocale
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return Supported()[index]
}
