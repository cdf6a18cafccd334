package io

import (
	"path/filepath"
	"strings"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat maps a format name to a Format. "yml" is accepted as YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported scenario format %q (use json, toml or yaml)", name)
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "%s has no extension (use .json, .toml or .yaml)", path)
	}
	return ParseFormat(ext)
}
