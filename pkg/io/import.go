package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

// Read decodes a scenario in the given format from r and validates it.
//
// Read returns an INVALID_SCENARIO error if:
//   - The input is malformed for the format
//   - The input contains fields a scenario does not have
//   - A relation string is not of the form "a>b" or "a=b"
//   - Validation fails (see [scenario.Scenario.Validate])
//
// Read does not close r.
func Read(r io.Reader, format Format) (*scenario.Scenario, error) {
	var s scenario.Scenario
	if err := decode(r, format, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(r io.Reader, format Format, s *scenario.Scenario) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(s)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return perrors.New(perrors.ErrCodeInvalidScenario, "decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidScenario, err, "decode yaml")
		}
	default:
		_, err := ParseFormat(string(format))
		return err
	}
	return nil
}

// Import reads the scenario file at path, choosing the format from its
// extension.
func Import(path string) (*scenario.Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, perrors.Wrap(perrors.GetCode(err), err, "%s", path)
	}
	return s, nil
}
