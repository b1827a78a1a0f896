package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/pagesmith/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a page file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data into generic maps, slices and scalars
func Decode(data []byte, format Format) (any, error) {
	var out any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if dec.More() {
			return nil, fmt.Errorf("invalid JSON: trailing data after the top-level value")
		}
	}
	return out, nil
}

// DecodeFile reads and parses a page file
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NewMissingFileError(path)
	}
	if err != nil {
		return nil, errors.NewPageSourceError(path, err)
	}

	out, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.NewPageSourceError(path, err)
	}
	return out, nil
}

// Encode serializes cfg-shaped generic data in the given format
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
