package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/pagesmith/internal/schema"
	"gopkg.in/yaml.v3"
)

// ParseHTML parses markup into a goquery document
func ParseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

// Counts returns the number of matches for each selector
func Counts(doc *goquery.Document, selectors ...string) map[string]int {
	counts := make(map[string]int, len(selectors))
	for _, sel := range selectors {
		counts[sel] = doc.Find(sel).Length()
	}
	return counts
}

// WriteFile writes content under dir, creating parent directories
func WriteFile(t *testing.T, dir, relPath, content string) string {
	t.Helper()

	fullPath := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// WritePage writes cfg as JSON, or YAML when name ends in .yaml or .yml
func WritePage(t *testing.T, dir, name string, cfg schema.PageConfig) string {
	t.Helper()

	input, err := cfg.ToInput()
	if err != nil {
		t.Fatalf("Failed to encode page: %v", err)
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(input)
	default:
		data, err = json.MarshalIndent(input, "", "  ")
	}
	if err != nil {
		t.Fatalf("Failed to marshal page: %v", err)
	}
	return WriteFile(t, dir, name, string(data))
}
