package schema

// Language is the declared page language
type Language string

const (
	LanguageZhCN Language = "zh-CN"
	LanguageEn   Language = "en"

	DefaultLanguage = LanguageZhCN
)

// Languages lists the supported page languages in schema order
var Languages = []Language{LanguageZhCN, LanguageEn}

// Background is the theme background mode
type Background string

const (
	BackgroundLight Background = "light"
	BackgroundDark  Background = "dark"
)

// Backgrounds lists the supported background modes
var Backgrounds = []Background{BackgroundLight, BackgroundDark}

// Radius is the corner-radius size of panels
type Radius string

const (
	RadiusSmall  Radius = "sm"
	RadiusMedium Radius = "md"
	RadiusLarge  Radius = "lg"
)

// Radii lists the supported radius sizes
var Radii = []Radius{RadiusSmall, RadiusMedium, RadiusLarge}

// GalleryRole marks a hero gallery item as the main image or a secondary one
type GalleryRole string

const (
	RoleMain      GalleryRole = "main"
	RoleSecondary GalleryRole = "secondary"
)

// GalleryRoles lists the supported hero gallery roles
var GalleryRoles = []GalleryRole{RoleMain, RoleSecondary}

// PageConfig is the single page definition driving preview and export
type PageConfig struct {
	Meta     Meta      `json:"meta"`
	Theme    Theme     `json:"theme"`
	Nav      Nav       `json:"nav"`
	Hero     Hero      `json:"hero"`
	Footer   Footer    `json:"footer"`
	Sections []Section `json:"sections" jsonschema:"minItems=1"`
}

type Meta struct {
	Title       string   `json:"title" jsonschema:"minLength=1"`
	Description string   `json:"description,omitempty"`
	Language    Language `json:"language,omitempty" jsonschema:"enum=zh-CN,enum=en,default=zh-CN"`
}

type Theme struct {
	Background  Background `json:"background" jsonschema:"enum=light,enum=dark"`
	AccentColor string     `json:"accentColor,omitempty"`
	Radius      Radius     `json:"radius,omitempty" jsonschema:"enum=sm,enum=md,enum=lg"`
}

// Nav holds the brand and the derived navigation items
type Nav struct {
	Brand string    `json:"brand" jsonschema:"minLength=1"`
	Items []NavItem `json:"items"`
}

type NavItem struct {
	ID    string `json:"id" jsonschema:"minLength=1"`
	Label string `json:"label" jsonschema:"minLength=1"`
}

type Hero struct {
	Eyebrow string            `json:"eyebrow,omitempty"`
	Title   string            `json:"title" jsonschema:"minLength=1"`
	Lead    string            `json:"lead" jsonschema:"minLength=1"`
	Stats   []HeroStat        `json:"stats,omitempty"`
	Gallery []HeroGalleryItem `json:"gallery" jsonschema:"minItems=1"`
}

type HeroStat struct {
	Value string `json:"value" jsonschema:"minLength=1"`
	Label string `json:"label" jsonschema:"minLength=1"`
}

type HeroGalleryItem struct {
	Role  GalleryRole `json:"role" jsonschema:"enum=main,enum=secondary"`
	Image ImageAsset  `json:"image"`
}

// ImageAsset is an image reference. Src is untrusted and sanitized at render time.
type ImageAsset struct {
	Src   string `json:"src" jsonschema:"minLength=1"`
	Title string `json:"title,omitempty"`
	Note  string `json:"note,omitempty"`
}

type Footer struct {
	Slogan    string       `json:"slogan" jsonschema:"minLength=1"`
	Links     []FooterLink `json:"links"`
	Copyright string       `json:"copyright,omitempty"`
}

type FooterLink struct {
	Label string `json:"label" jsonschema:"minLength=1"`
	Href  string `json:"href" jsonschema:"minLength=1"`
}
