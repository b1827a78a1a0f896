package validation

import (
	"encoding/json"
	"fmt"

	"github.com/user/pagesmith/internal/i18n"
	"github.com/user/pagesmith/internal/schema"
)

// Validator checks untrusted input against the page schema and reports
// localized issues
type Validator struct {
	catalog *i18n.Catalog
}

// Option configures a Validator
type Option func(*Validator)

// WithLocale selects the message locale; unsupported locales fall back to the default
func WithLocale(locale string) Option {
	return func(v *Validator) {
		v.catalog = i18n.For(locale)
	}
}

// WithCatalog uses a custom catalog, e.g. one with project overrides
func WithCatalog(c *i18n.Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c
		}
	}
}

// NewValidator creates a validator using the default locale unless configured otherwise
func NewValidator(opts ...Option) *Validator {
	v := &Validator{catalog: i18n.For(i18n.DefaultLocale)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Locale returns the message locale
func (v *Validator) Locale() string {
	return v.catalog.Locale()
}

// Validate checks input and returns the complete typed configuration. It
// never panics: any shape mismatch, however malformed the input, comes back
// as a *errors.ValidationError and no partial configuration is returned.
func (v *Validator) Validate(input any) (cfg schema.PageConfig, err error) {
	defer func() {
		if r := recover(); r != nil {
			cfg = schema.PageConfig{}
			err = v.failure([]Issue{{Code: CodeUnparsable, Detail: fmt.Sprint(r)}})
		}
	}()

	generic, err := toGeneric(input)
	if err != nil {
		return schema.PageConfig{}, v.failure([]Issue{{Code: CodeUnparsable, Detail: err.Error()}})
	}

	w := &walker{}
	cfg = w.page(generic)
	if len(w.issues) > 0 {
		return schema.PageConfig{}, v.failure(w.issues)
	}
	return cfg, nil
}

// ValidateJSON parses data as JSON and validates the result
func (v *Validator) ValidateJSON(data []byte) (schema.PageConfig, error) {
	generic, err := Decode(data, FormatJSON)
	if err != nil {
		return schema.PageConfig{}, v.failure([]Issue{{Code: CodeUnparsable, Detail: err.Error()}})
	}
	return v.Validate(generic)
}

// ValidateYAML parses data as YAML and validates the result
func (v *Validator) ValidateYAML(data []byte) (schema.PageConfig, error) {
	generic, err := Decode(data, FormatYAML)
	if err != nil {
		return schema.PageConfig{}, v.failure([]Issue{{Code: CodeUnparsable, Detail: err.Error()}})
	}
	return v.Validate(generic)
}

// ValidateFile reads a JSON or YAML page file and validates it. Read and
// decode failures are returned as *errors.PageSourceError.
func (v *Validator) ValidateFile(path string) (schema.PageConfig, error) {
	generic, err := DecodeFile(path)
	if err != nil {
		return schema.PageConfig{}, err
	}
	return v.Validate(generic)
}

// toGeneric brings input into the map/slice/scalar shape the walker reads
func toGeneric(input any) (any, error) {
	switch in := input.(type) {
	case nil, map[string]any, map[any]any, []any, string, bool, float64, int, int64, json.Number:
		return in, nil
	case schema.PageConfig:
		return in.ToInput()
	case *schema.PageConfig:
		if in == nil {
			return nil, nil
		}
		return in.ToInput()
	case []byte:
		return Decode(in, FormatJSON)
	case json.RawMessage:
		return Decode(in, FormatJSON)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var defaultValidator = NewValidator()

// Validate checks input with the default-locale validator
func Validate(input any) (schema.PageConfig, error) {
	return defaultValidator.Validate(input)
}

// Revalidate round-trips a typed configuration through validation, applying
// defaults and catching hand-built values that break the schema
func Revalidate(cfg schema.PageConfig) (schema.PageConfig, error) {
	return defaultValidator.Validate(cfg)
}
