// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// NameFile is the on-disk form of a candidate name list. `trialscout resolve
// --save` writes one and `trialscout trials --file` replays it without
// re-querying the name sources.
type NameFile struct {
	Query   string    `yaml:"query,omitempty"`
	Names   []string  `yaml:"names"`
	SavedAt time.Time `yaml:"saved_at,omitempty"`
}

// WriteNameFile saves names to a YAML file.
func WriteNameFile(path, query string, names []string) error {
	nf := NameFile{
		Query:   query,
		Names:   names,
		SavedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&nf)
	if err != nil {
		return fmt.Errorf("marshaling name file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadNameFile loads a previously saved name file from disk.
func ReadNameFile(path string) (*NameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name file: %w", err)
	}
	var nf NameFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return nil, fmt.Errorf("parsing name file: %w", err)
	}
	return &nf, nil
}
