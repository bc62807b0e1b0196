// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/trialscout/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(types.HistoryConfig{Enabled: true, Path: filepath.Join(dir, "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	r, err := s.Record(ctx, types.RunRecord{Kind: types.RunDrug, Query: "aspirin", NamesSearched: 12, TrialsFound: 40})
	require.NoError(t, err)
	assert.Len(t, r.ID, 36)
	assert.False(t, r.CreatedAt.IsZero())

	runs, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.ID, runs[0].ID)
	assert.Equal(t, types.RunDrug, runs[0].Kind)
	assert.Equal(t, "aspirin", runs[0].Query)
	assert.Equal(t, 12, runs[0].NamesSearched)
	assert.Equal(t, 40, runs[0].TrialsFound)
	assert.WithinDuration(t, r.CreatedAt, runs[0].CreatedAt, time.Millisecond)
}

func TestRecordDuplicateIDFails(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, types.RunRecord{ID: "run-1", Kind: types.RunTrials, Query: "a"})
	require.NoError(t, err)
	_, err = s.Record(ctx, types.RunRecord{ID: "run-1", Kind: types.RunTrials, Query: "b"})
	assert.ErrorContains(t, err, "inserting run run-1")
}

func TestListNewestFirstWithFilters(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	for _, r := range []types.RunRecord{
		{Kind: types.RunDrug, Query: "aspirin"},
		{Kind: types.RunTrials, Query: "asa, aspirin", WasTruncated: true, ErrorCount: 2},
		{Kind: types.RunDrug, Query: "metformin"},
	} {
		_, err := s.Record(ctx, r)
		require.NoError(t, err)
	}

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "metformin", all[0].Query)
	assert.Equal(t, "aspirin", all[2].Query)

	drugs, err := s.List(ctx, ListOptions{Kind: types.RunDrug})
	require.NoError(t, err)
	assert.Len(t, drugs, 2)

	trials, err := s.List(ctx, ListOptions{Kind: types.RunTrials})
	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.True(t, trials[0].WasTruncated)
	assert.Equal(t, 2, trials[0].ErrorCount)

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestListEmpty(t *testing.T) {
	s, _ := testStore(t)
	runs, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{Path: filepath.Join(dir, "history.db")}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), types.RunRecord{Kind: types.RunDrug, Query: "aspirin"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(cfg)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestExportYAMLAndJSON(t *testing.T) {
	s, dir := testStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, types.RunRecord{Kind: types.RunDrug, Query: "aspirin", TrialsFound: 3})
	require.NoError(t, err)
	_, err = s.Record(ctx, types.RunRecord{Kind: types.RunTrials, Query: "asa", TrialsFound: 1})
	require.NoError(t, err)

	yamlPath := filepath.Join(dir, "history.yaml")
	require.NoError(t, s.ExportYAML(ctx, yamlPath))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.RunRecord
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "asa", fromYAML[0].Query)

	jsonPath := filepath.Join(dir, "history.json")
	require.NoError(t, s.ExportJSON(ctx, jsonPath))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []types.RunRecord
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	require.Len(t, fromJSON, 2)
	assert.Equal(t, 3, fromJSON[1].TrialsFound)
}
