// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/pkg/types"
)

func TestAggregateDrug_SearchesQueryThenCandidates(t *testing.T) {
	reg := &mockRegistry{results: map[string][]types.Trial{
		"Aspirin":              {trial("NCT001")},
		"aspirin":              {trial("NCT001"), trial("NCT002")},
		"acetylsalicylic acid": {trial("NCT003")},
	}}
	p := NewPipeline(reg, types.TrialsConfig{BatchSize: 1}, nil)

	res := names.Resolution{
		Query:          "Aspirin",
		Sources:        map[string]types.SourceResult{"rxnorm": {}},
		CandidateNames: []string{"aspirin", "acetylsalicylic acid"},
	}
	got, err := p.AggregateDrug(context.Background(), res)
	require.NoError(t, err)

	assert.Equal(t, []string{"Aspirin", "aspirin", "acetylsalicylic acid"}, reg.calls)
	require.Len(t, got.Trials, 3)
	assert.Equal(t, []string{"Aspirin", "aspirin"}, got.Trials[0].MatchedNames)
	assert.Equal(t, 3, got.Summary.NamesSearched)
	assert.Equal(t, 3, got.Summary.TrialsFound)
	assert.False(t, got.Summary.WasTruncated)
	assert.Equal(t, "Aspirin", got.Query)
	assert.Contains(t, got.Sources, "rxnorm")
}

func TestNamesOnly(t *testing.T) {
	got := NamesOnly(names.Resolution{Query: "zzz"})
	assert.Equal(t, "zzz", got.Query)
	assert.NotNil(t, got.CandidateNames)
	assert.NotNil(t, got.Trials)
	assert.NotNil(t, got.Errors)
	assert.Zero(t, got.Summary)
}
