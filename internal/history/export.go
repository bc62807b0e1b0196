// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every recorded run to path as YAML, newest first.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	runs, err := s.List(ctx, ListOptions{Limit: -1})
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every recorded run to path as indented JSON, newest
// first.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	runs, err := s.List(ctx, ListOptions{Limit: -1})
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
