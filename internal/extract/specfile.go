package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSpecFile reads a list of field specs from a YAML or JSON file and
// prepares them for assembly. The format is picked by file extension, with
// YAML as the default.
func LoadSpecFile(path string) ([]FieldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	specs, err := ParseSpecs(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return specs, nil
}

// ParseSpecs decodes field specs from raw file data. ext selects the codec
// (".json" for JSON, anything else for YAML).
func ParseSpecs(data []byte, ext string) ([]FieldSpec, error) {
	var specs []FieldSpec
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("failed to decode JSON specs: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("failed to decode YAML specs: %w", err)
		}
	}
	return PrepareSpecs(specs)
}
