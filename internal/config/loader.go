package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/user/pagesmith/internal/errors"
)

const (
	// EnvPrefix prefixes every settings environment variable
	EnvPrefix = "PAGESMITH"
	// ProjectDirName is the per-project settings directory
	ProjectDirName = ".pagesmith"
	// GlobalFileName is the user-wide settings file in the home directory
	GlobalFileName = ".pagesmith.yaml"
)

var defaults = map[string]interface{}{
	"locale":                    "zh-CN",
	"page":                      "page.json",
	"render.narrative_markdown": false,
	"preview.addr":              "127.0.0.1:4321",
	"preview.allowed_origins":   []string{},
	"preview.watch":             true,
	"preview.cache_size":        64,
	"preview.read_timeout":      0,
	"preview.write_timeout":     0,
	"export.output_dir":         "dist",
	"export.max_workers":        0,
	"logging.log_dir":           "",
	"logging.file_level":        "info",
	"logging.console_level":     "info",
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// Loader handles loading settings from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new settings loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Loader{v: v}
}

// Load merges every source and returns validated settings.
// Precedence: CLI > .pagesmith/config.yaml > ~/.pagesmith.yaml > Environment > Defaults
func (l *Loader) Load(projectDir string, cliOverrides map[string]interface{}) (*Settings, error) {
	// 1. Defaults are registered in NewLoader

	// 2. PAGESMITH_* environment
	if err := l.v.MergeConfigMap(envLayer()); err != nil {
		return nil, fmt.Errorf("failed to merge environment: %w", err)
	}

	// 3. ~/.pagesmith.yaml
	if err := l.mergeFile(GlobalSettingsPath()); err != nil {
		return nil, err
	}

	// 4. .pagesmith/config.yaml
	if err := l.mergeFile(ProjectSettingsPath(projectDir)); err != nil {
		return nil, err
	}

	// 5. CLI flags
	for key, value := range cliOverrides {
		if value != nil {
			l.v.Set(key, value)
		}
	}

	settings, err := decode(l.v.AllSettings())
	if err != nil {
		return nil, err
	}
	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// mergeFile merges a YAML settings file; a missing file is skipped
func (l *Loader) mergeFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	l.v.SetConfigFile(path)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(path, err)
	}
	return nil
}

// envLayer collects PAGESMITH_* variables for every known key as a nested map
func envLayer() map[string]interface{} {
	layer := make(map[string]interface{})
	for key := range defaults {
		if value, ok := os.LookupEnv(EnvKey(key)); ok {
			setNested(layer, key, value)
		}
	}
	return layer
}

// EnvKey returns the environment variable for a dotted settings key
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

func decode(input map[string]interface{}) (*Settings, error) {
	settings := &Settings{}
	decoderConfig := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           settings,
		TagName:          "mapstructure",
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, errors.WrapError(err, "Failed to decode settings", errors.ExitConfigError)
	}
	return settings, nil
}

var settingsValidator = newSettingsValidator()

func newSettingsValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their settings key rather than the Go field name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// Validate checks settings against their struct rules and reports every
// failing key in one *errors.InvalidSettingError
func Validate(settings *Settings) error {
	err := settingsValidator.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.WrapError(err, "Failed to validate settings", errors.ExitConfigError)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[key] = rule
	}
	return errors.NewInvalidSettingError(fields)
}

// GlobalSettingsPath returns ~/.pagesmith.yaml, or "" without a home directory
func GlobalSettingsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, GlobalFileName)
}

// ProjectSettingsPath returns <projectDir>/.pagesmith/config.yaml
func ProjectSettingsPath(projectDir string) string {
	if projectDir == "" {
		projectDir = "."
	}
	return filepath.Join(projectDir, ProjectDirName, "config.yaml")
}

// LoadSettings is a convenience wrapper around NewLoader().Load
func LoadSettings(projectDir string, cliOverrides map[string]interface{}) (*Settings, error) {
	return NewLoader().Load(projectDir, cliOverrides)
}

func setNested(m map[string]interface{}, dottedKey string, value interface{}) {
	parts := strings.Split(dottedKey, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
