package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Saver writes settings files
type Saver struct{}

// NewSaver creates a new settings saver
func NewSaver() *Saver {
	return &Saver{}
}

// SaveGlobalSettings writes settings to ~/.pagesmith.yaml
func (s *Saver) SaveGlobalSettings(settings *Settings) (string, error) {
	path := GlobalSettingsPath()
	if path == "" {
		return "", fmt.Errorf("failed to locate home directory")
	}
	return path, s.save(path, settings)
}

// SaveProjectSettings writes settings to <projectDir>/.pagesmith/config.yaml
func (s *Saver) SaveProjectSettings(projectDir string, settings *Settings) (string, error) {
	path := ProjectSettingsPath(projectDir)
	return path, s.save(path, settings)
}

func (s *Saver) save(path string, settings *Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}

	data, err := Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Marshal renders settings as YAML
func Marshal(settings *Settings) ([]byte, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

// SettingsExist reports whether a settings file exists at path
func SettingsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
