package handlers

import (
	"os"
	"path/filepath"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/validation"
)

// writePage encodes cfg as JSON, or YAML for .yaml and .yml paths
func writePage(path string, cfg schema.PageConfig) error {
	input, err := cfg.ToInput()
	if err != nil {
		return errors.NewExportError(path, err)
	}
	data, err := validation.Encode(input, validation.FormatFromPath(path))
	if err != nil {
		return errors.NewExportError(path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewExportError(path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}
