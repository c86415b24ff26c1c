package defaults

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a defaults file.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf returns the format of a defaults file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown defaults file format: %q", path)
	}
}

// LoadFile decodes a TOML or YAML defaults file into a partial instance.
func LoadFile(path string) (map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening defaults file: %w", err)
	}
	defer file.Close()

	return Load(file, format)
}

// Load decodes a TOML or YAML document into a partial instance.
func Load(r io.Reader, format Format) (map[string]any, error) {
	doc := make(map[string]any)

	switch format {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding TOML defaults: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding YAML defaults: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown defaults format: %q", format)
	}

	return doc, nil
}
