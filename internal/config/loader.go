package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError reports a failure to parse a document file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads a document description from a TOML or YAML file, chosen by
// extension, and normalizes its settings.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes document data. The path selects the format and labels
// errors.
func Parse(path string, data []byte) (*Document, error) {
	var d Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, &d)
		if err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	case ".toml", "":
		err := toml.Unmarshal(data, &d)
		if err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", filepath.Ext(path))
	}

	d.Settings.Normalize()
	return &d, nil
}
