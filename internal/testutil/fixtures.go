// Package testutil holds fixtures and DOM helpers shared by tests.
package testutil

import "github.com/user/pagesmith/internal/schema"

// ValidPage returns the starter page, which is valid by construction
func ValidPage() schema.PageConfig {
	return schema.Default()
}

// MinimalPage returns the smallest page that passes validation
func MinimalPage() schema.PageConfig {
	return schema.PageConfig{
		Meta:  schema.Meta{Title: "Minimal", Language: schema.LanguageEn},
		Theme: schema.Theme{Background: schema.BackgroundDark},
		Nav:   schema.Nav{Brand: "MIN", Items: []schema.NavItem{{ID: "only", Label: "01 Only"}}},
		Hero: schema.Hero{
			Title: "Hello",
			Lead:  "Lead text",
			Gallery: []schema.HeroGalleryItem{
				{Role: schema.RoleSecondary, Image: schema.ImageAsset{Src: "/img/hero.png"}},
			},
		},
		Footer: schema.Footer{Slogan: "Bye", Links: []schema.FooterLink{}},
		Sections: []schema.Section{
			{
				ID:    "only",
				Title: "Only",
				Content: schema.NarrativeContent{Cards: []schema.NarrativeCard{
					{Title: "Card", Text: "Body"},
				}},
			},
		},
	}
}

// HostilePage returns a valid page whose URLs and text try to escape their
// attributes: javascript links, unsafe image schemes, markup in titles
func HostilePage() schema.PageConfig {
	return schema.Default().With(func(cfg *schema.PageConfig) {
		cfg.Meta.Title = `<script>alert("t")</script> & "quotes"`
		cfg.Meta.Description = `"><img src=x onerror=alert(1)>`
		cfg.Theme.AccentColor = "red; background: url(javascript:alert(1))"
		cfg.Footer.Links = append(cfg.Footer.Links,
			schema.FooterLink{Label: "evil", Href: "javascript:alert(1)"},
			schema.FooterLink{Label: "evil upper", Href: "JAVASCRIPT:alert(2)"},
		)
		cfg.Hero.Gallery[1].Image.Src = "javascript:alert(3)"
		cfg.Sections[1].Content = schema.StripGalleryContent{Items: []schema.GalleryItem{
			{Image: schema.ImageAsset{Src: "vbscript:msgbox", Title: "<b>bold</b>"}},
			{Image: schema.ImageAsset{Src: "data:image/png;base64,AAA", Title: "inline"}},
		}}
	})
}
