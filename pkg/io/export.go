package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

// Write encodes s in the given format and writes it to w.
// The output can be read back with [Read].
func Write(w io.Writer, s *scenario.Scenario, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "encode json")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "encode yaml")
		}
		return enc.Close()
	default:
		_, err := ParseFormat(string(format))
		return err
	}
	return nil
}

// Export writes s to a file at path in the format given by its extension.
func Export(s *scenario.Scenario, path string) error {
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(f, s, format)
}
