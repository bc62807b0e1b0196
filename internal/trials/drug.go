// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"context"

	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/pkg/types"
)

// SearchNames returns the names searched for a resolution: the original
// query first, then every candidate name.
func SearchNames(res names.Resolution) []string {
	out := make([]string, 0, len(res.CandidateNames)+1)
	out = append(out, res.Query)
	return append(out, res.CandidateNames...)
}

// AggregateDrug runs the pipeline over the query and candidate names of res
// and assembles the full drug report.
func (p *Pipeline) AggregateDrug(ctx context.Context, res names.Resolution) (types.AggregateResult, error) {
	out, err := p.Aggregate(ctx, SearchNames(res))
	if err != nil {
		return types.AggregateResult{}, err
	}
	result := NamesOnly(res)
	result.Trials = out.Trials
	result.Errors = out.Errors
	result.Summary = types.AggregateSummary{
		NamesSearched: out.Stats.TotalSearched,
		TrialsFound:   out.Stats.TotalUniqueTrials,
		WasTruncated:  out.Stats.WasTruncated,
	}
	return result, nil
}

// NamesOnly builds a drug report without searching for trials.
func NamesOnly(res names.Resolution) types.AggregateResult {
	candidates := res.CandidateNames
	if candidates == nil {
		candidates = []string{}
	}
	return types.AggregateResult{
		Query:          res.Query,
		Sources:        res.Sources,
		CandidateNames: candidates,
		Trials:         []types.Trial{},
		Errors:         []types.TrialSearchError{},
	}
}
