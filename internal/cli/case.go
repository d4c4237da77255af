// Package cli holds the case-file loading and report rendering shared by
// the atmodeller commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
)

// LoadCase reads a solve case from a YAML or JSON file. The schema matches
// the HTTP API POST /v1/solve body.
func LoadCase(path string) (*httpapi.SolveRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}
	return ParseCase(data, strings.ToLower(filepath.Ext(path)))
}

// ParseCase decodes case bytes. ext selects the format (".json" is JSON,
// anything else is YAML).
func ParseCase(data []byte, ext string) (*httpapi.SolveRequest, error) {
	var raw map[string]any
	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON case: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML case: %w", err)
		}
	}

	var req httpapi.SolveRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid case structure: %w", err)
	}
	if len(req.Species) == 0 {
		return nil, fmt.Errorf("case declares no species")
	}
	return &req, nil
}
