// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// --- mock source ---

type mockSource struct {
	name   string
	result types.SourceResult
	err    error
	panics bool
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Lookup(_ context.Context, _ string) (types.SourceResult, error) {
	if m.panics {
		panic("boom")
	}
	return m.result, m.err
}

func recs(typ string, names ...string) types.SourceResult {
	var r types.SourceResult
	for _, n := range names {
		r.Names = append(r.Names, types.NameRecord{Name: n, Type: typ})
	}
	return r
}

func hasRecordType(sr types.SourceResult, typ string) bool {
	for _, n := range sr.Names {
		if n.Type == typ {
			return true
		}
	}
	return false
}

func fiveSources() []Source {
	return []Source{
		&mockSource{name: "rxnorm", result: recs("Ingredient", "aspirin", "Bayer")},
		&mockSource{name: "openfda", result: recs("Brand Name", "BAYER", "Ecotrin")},
		&mockSource{name: "pubchem", result: recs("Synonym", "Acetylsalicylic acid", "ASA", "2-Acetoxybenzoic acid")},
		&mockSource{name: "chembl", result: recs("Preferred Name", "ASPIRIN")},
		&mockSource{name: "clinicaltrials", result: recs("Intervention Name", "Aspirin 81 mg")},
	}
}

// --- Resolve ---

func TestResolveAllSources(t *testing.T) {
	r := NewResolver(fiveSources(), nil)
	res, err := r.Resolve(context.Background(), "  aspirin ")
	require.NoError(t, err)

	assert.Equal(t, "aspirin", res.Query)
	assert.Len(t, res.Sources, 5)
	assert.Equal(t, []string{"rxnorm", "openfda", "pubchem", "chembl", "clinicaltrials"}, res.Order)
	assert.Equal(t, []string{
		"aspirin", "bayer", "ecotrin", "acetylsalicylic acid", "asa", "2-acetoxybenzoic acid", "aspirin 81 mg",
	}, res.CandidateNames)
}

func TestResolveOneSourceFails(t *testing.T) {
	sources := fiveSources()
	sources[2] = &mockSource{name: "pubchem", err: fmt.Errorf("dial tcp: connection refused")}

	res, err := NewResolver(sources, nil).Resolve(context.Background(), "aspirin")
	require.NoError(t, err)

	failed := res.Sources["pubchem"]
	require.Len(t, failed.Names, 1)
	assert.Equal(t, types.TypeError, failed.Names[0].Type)
	assert.Contains(t, failed.Names[0].Name, "connection refused")

	for _, name := range []string{"rxnorm", "openfda", "chembl", "clinicaltrials"} {
		sr := res.Sources[name]
		assert.NotEmpty(t, sr.Names, name)
		assert.False(t, hasRecordType(sr, types.TypeError), name)
	}
}

func TestResolveSuccessfulSourceHasEmptyLinks(t *testing.T) {
	res, err := NewResolver(fiveSources(), nil).Resolve(context.Background(), "aspirin")
	require.NoError(t, err)

	rx := res.Sources["rxnorm"]
	require.NotEmpty(t, rx.Names)
	assert.NotNil(t, rx.Links)
	assert.Empty(t, rx.Links)

	b, err := json.Marshal(rx)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"links":[]`)
}

func TestResolveNotFoundBecomesInfo(t *testing.T) {
	sources := []Source{
		&mockSource{name: "rxnorm", err: fmt.Errorf("RxNorm exact lookup: %w", httputil.ErrNotFound)},
		&mockSource{name: "chembl"},
	}
	res, err := NewResolver(sources, nil).Resolve(context.Background(), "notadrug")
	require.NoError(t, err)

	for _, name := range []string{"rxnorm", "chembl"} {
		sr := res.Sources[name]
		require.Len(t, sr.Names, 1, name)
		assert.Equal(t, types.TypeInfo, sr.Names[0].Type)
		assert.Equal(t, "No results found in "+name, sr.Names[0].Name)
	}
	assert.Empty(t, res.CandidateNames)
}

func TestResolvePartialResultKeepsNames(t *testing.T) {
	partial := recs("Compound Title", "Aspirin")
	sources := []Source{&mockSource{name: "pubchem", result: partial, err: errors.New("PubChem synonyms: timeout")}}

	res, err := NewResolver(sources, nil).Resolve(context.Background(), "aspirin")
	require.NoError(t, err)

	names := res.Sources["pubchem"].Names
	require.Len(t, names, 2)
	assert.Equal(t, "Aspirin", names[0].Name)
	assert.Equal(t, types.TypeError, names[1].Type)
	assert.Equal(t, []string{"aspirin"}, res.CandidateNames)
}

func TestResolvePanickingSource(t *testing.T) {
	sources := fiveSources()
	sources[0] = &mockSource{name: "rxnorm", panics: true}

	res, err := NewResolver(sources, nil).Resolve(context.Background(), "aspirin")
	require.NoError(t, err)

	sr := res.Sources["rxnorm"]
	require.Len(t, sr.Names, 1)
	assert.Equal(t, types.TypeError, sr.Names[0].Type)
	assert.Len(t, res.Sources, 5)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	_, err := NewResolver(fiveSources(), nil).Resolve(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestResolveNoSources(t *testing.T) {
	_, err := NewResolver(nil, nil).Resolve(context.Background(), "aspirin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name sources")
}

// --- CandidateNames ---

func TestCandidateNamesFiltering(t *testing.T) {
	results := []types.SourceResult{
		{Names: []types.NameRecord{
			{Name: "Aspirin", Type: "Ingredient"},
			{Name: "connection refused", Type: types.TypeError},
			{Name: "No results found in openfda", Type: types.TypeInfo},
			{Name: " AS ", Type: "Synonym"},
			{Name: "   ", Type: "Synonym"},
			{Name: "ASA", Type: "Synonym"},
		}},
		{Names: []types.NameRecord{
			{Name: "ASPIRIN", Type: "Preferred Name"},
			{Name: "acetylsalicylic   acid", Type: "Synonym"},
			{Name: "Acetylsalicylic Acid", Type: "Synonym"},
		}},
	}

	got := CandidateNames(results)
	assert.Equal(t, []string{"aspirin", "asa", "acetylsalicylic acid"}, got)
}

func TestCandidateNamesProperties(t *testing.T) {
	var results []types.SourceResult
	variants := []string{"Ibuprofen", "IBUPROFEN", "ibuprofen", "Advil", "ADVIL", "Motrin", "x", "ok", "Nurofen"}
	for i := 0; i < 5; i++ {
		r := recs("Synonym", variants...)
		r.Names = append(r.Names, types.NameRecord{Name: "upstream error", Type: types.TypeError})
		r.Names = append(r.Names, types.NameRecord{Name: "No results", Type: types.TypeInfo})
		results = append(results, r)
	}

	got := CandidateNames(results)
	seen := make(map[string]bool)
	for _, n := range got {
		key := strings.ToLower(n)
		assert.False(t, seen[key], "duplicate candidate %q", n)
		seen[key] = true
		assert.GreaterOrEqual(t, len(n), minNameLength)
		assert.NotEqual(t, "upstream error", n)
		assert.NotEqual(t, "no results", n)
	}
	assert.Equal(t, []string{"ibuprofen", "advil", "motrin", "nurofen"}, got)
}

// --- Collect ---

func TestCollect(t *testing.T) {
	res, err := NewResolver(fiveSources(), nil).Resolve(context.Background(), "aspirin")
	require.NoError(t, err)

	c := Collect(res)
	assert.Equal(t, "aspirin", c.OriginalQuery)
	assert.Equal(t, len(res.CandidateNames), c.UniqueNameCount)
	assert.Equal(t, []string{"aspirin", "bayer"}, c.NamesBySource["rxnorm"])
	assert.Equal(t, 3, c.CountsBySource["pubchem"])
	assert.Equal(t, 1, c.CountsBySource["chembl"])
}

func TestCollectEmptySourcesHaveEmptyLists(t *testing.T) {
	res, err := NewResolver([]Source{&mockSource{name: "rxnorm"}}, nil).Resolve(context.Background(), "zz-unknown")
	require.NoError(t, err)

	c := Collect(res)
	assert.Equal(t, 0, c.UniqueNameCount)
	assert.NotNil(t, c.UniqueNames)
	assert.Equal(t, []string{}, c.NamesBySource["rxnorm"])
}
