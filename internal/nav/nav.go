// Package nav derives the navigation bar from the ordered section list.
package nav

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/user/pagesmith/internal/i18n"
	"github.com/user/pagesmith/internal/schema"
)

var (
	// ordinalPrefix matches a leading "01 ", "2.", "3、" or "4 -" style ordinal
	ordinalPrefix = regexp.MustCompile(`^[\s\p{Z}]*\d+[\s\p{Z}]*[.、-]?[\s\p{Z}]*`)

	// labelPrefix matches exactly what FormatLabel prepends
	labelPrefix = regexp.MustCompile(`^\d{2,} `)
)

// StripOrdinal removes a leading ordinal and separator from text
func StripOrdinal(text string) string {
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(text, ""))
}

// Deriver computes nav items. The catalog supplies the placeholder label for
// sections whose title is nothing but an ordinal.
type Deriver struct {
	catalog *i18n.Catalog
}

// NewDeriver creates a deriver for locale
func NewDeriver(locale string) *Deriver {
	return &Deriver{catalog: i18n.For(locale)}
}

// FormatLabel builds "NN text" for the 1-based order, preferring navLabel
// over title when it is not blank
func (d *Deriver) FormatLabel(title, navLabel string, order int) string {
	source := title
	if strings.TrimSpace(navLabel) != "" {
		source = navLabel
	}
	// a base that opens with a separator would lose it when the label is
	// derived again, so it never does
	base := strings.TrimLeftFunc(StripOrdinal(source), isSeparator)
	if base == "" {
		base = d.catalog.Message("nav.placeholder", map[string]any{"Index": order})
	}
	return fmt.Sprintf("%02d %s", order, base)
}

func isSeparator(r rune) bool {
	return r == '.' || r == '、' || r == '-' || unicode.IsSpace(r)
}

// Derive returns one item per section shown in the nav, numbered after
// filtering. Blank ids fall back to section-N by position in sections.
func (d *Deriver) Derive(sections []schema.Section) []schema.NavItem {
	items := []schema.NavItem{}
	for i, section := range sections {
		if !section.InNav() {
			continue
		}
		items = append(items, schema.NavItem{
			ID:    SectionID(section.ID, i),
			Label: d.FormatLabel(section.Title, section.NavLabel, len(items)+1),
		})
	}
	return items
}

// Relabel renumbers existing items. Only the "NN " prefix written by
// FormatLabel is removed before renumbering, so applied to the output of
// Derive it returns the same labels.
func (d *Deriver) Relabel(items []schema.NavItem) []schema.NavItem {
	out := make([]schema.NavItem, len(items))
	for i, item := range items {
		base := strings.TrimSpace(labelPrefix.ReplaceAllString(item.Label, ""))
		if base == "" {
			base = d.catalog.Message("nav.placeholder", map[string]any{"Index": i + 1})
		}
		out[i] = schema.NavItem{ID: item.ID, Label: fmt.Sprintf("%02d %s", i+1, base)}
	}
	return out
}

// Sync returns a copy of cfg with blank section ids defaulted and nav items
// recomputed
func (d *Deriver) Sync(cfg schema.PageConfig) schema.PageConfig {
	next := cfg.Clone()
	for i := range next.Sections {
		next.Sections[i].ID = SectionID(next.Sections[i].ID, i)
	}
	next.Nav.Items = d.Derive(next.Sections)
	return next
}

// SectionID trims id and substitutes section-N (1-based) when it is blank
func SectionID(id string, index int) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("section-%d", index+1)
}

// Derive uses the default locale
func Derive(sections []schema.Section) []schema.NavItem {
	return NewDeriver(i18n.DefaultLocale).Derive(sections)
}

// Sync derives nav items for cfg using its own page language
func Sync(cfg schema.PageConfig) schema.PageConfig {
	return NewDeriver(string(cfg.Meta.Language)).Sync(cfg)
}
