package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	textTemplate "text/template"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

const (
	ZhCN = "zh-CN"
	En   = "en"

	DefaultLocale = ZhCN
)

// Supported lists the bundled locales, default first
func Supported() []string {
	return []string{ZhCN, En}
}

// catalogFile is the YAML layout of one locale
type catalogFile struct {
	Labels   map[string]string `yaml:"labels"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the field labels and message templates of one locale
type Catalog struct {
	locale   string
	labels   map[string]string
	messages map[string]*textTemplate.Template
	sources  map[string]string // Track which file provided each message
}

var funcs = textTemplate.FuncMap{
	"join": strings.Join,
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Catalog{}
)

// For returns the bundled catalog for locale, falling back to the default
// locale when locale is not supported. Catalogs are parsed once.
func For(locale string) *Catalog {
	locale = normalize(locale)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if c, ok := cache[locale]; ok {
		return c
	}
	c, err := Load(locale)
	if err != nil {
		// Bundled catalogs are compiled in; a parse failure is a build defect
		panic(err)
	}
	cache[locale] = c
	return c
}

// Load parses the bundled catalog for locale
func Load(locale string) (*Catalog, error) {
	if !isSupported(locale) {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	c := &Catalog{
		locale:   locale,
		labels:   make(map[string]string),
		messages: make(map[string]*textTemplate.Template),
		sources:  make(map[string]string),
	}

	name := locale + ".yaml"
	data, err := localeFS.ReadFile("locales/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled catalog %s: %w", name, err)
	}
	if err := c.merge(data, "bundled:"+name); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadWithOverrides loads the bundled catalog and merges <dir>/<locale>.yaml
// on top when that file exists
func LoadWithOverrides(locale, dir string) (*Catalog, error) {
	c, err := Load(locale)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, locale+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := c.merge(data, "project:"+filepath.Base(path)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) merge(data []byte, source string) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", source, err)
	}

	for key, label := range file.Labels {
		c.labels[key] = label
	}
	for key, text := range file.Messages {
		tmpl, err := textTemplate.New(key).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("failed to parse message %s in %s: %w", key, source, err)
		}
		c.messages[key] = tmpl
		c.sources[key] = source
	}
	return nil
}

// Locale returns the catalog's locale tag
func (c *Catalog) Locale() string {
	return c.locale
}

// Label returns the display label of a field key, or the key itself
func (c *Catalog) Label(key string) string {
	if label, ok := c.labels[key]; ok {
		return label
	}
	return key
}

// Message renders the message template key with data. Unknown keys render as the key.
func (c *Catalog) Message(key string, data any) string {
	tmpl, ok := c.messages[key]
	if !ok {
		return key
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return key
	}
	return buf.String()
}

// Text renders a message that takes no data
func (c *Catalog) Text(key string) string {
	return c.Message(key, nil)
}

// Source returns where a message was loaded from, for debugging overrides
func (c *Catalog) Source(key string) string {
	return c.sources[key]
}

func isSupported(locale string) bool {
	for _, l := range Supported() {
		if l == locale {
			return true
		}
	}
	return false
}

func normalize(locale string) string {
	if isSupported(locale) {
		return locale
	}
	return Match(locale)
}
