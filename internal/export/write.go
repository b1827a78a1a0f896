package export

import (
	"os"
	"path/filepath"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
)

// WriteFile renders cfg and writes the export document into dir as
// FileName(title). It returns the written path.
func (e *Exporter) WriteFile(cfg schema.PageConfig, dir string) (string, error) {
	doc, err := e.Document(cfg)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(cfg.Meta.Title))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.NewExportError(path, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", errors.NewExportError(path, err)
	}
	return path, nil
}
