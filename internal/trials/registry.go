// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"context"
	"errors"

	"github.com/pdiddy/trialscout/internal/ctgov"
	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// Registry searches a clinical-trials registry for one drug name.
type Registry interface {
	SearchTrials(ctx context.Context, drugName string) ([]types.Trial, error)
}

const defaultPageSize = 100

// ClinicalTrialsRegistry searches ClinicalTrials.gov by intervention name.
type ClinicalTrialsRegistry struct {
	Client   *ctgov.Client
	PageSize int
}

// SearchTrials returns the studies whose interventions match drugName.
// A 404 from the registry ends the search without error and keeps the
// studies from earlier pages.
func (r *ClinicalTrialsRegistry) SearchTrials(ctx context.Context, drugName string) ([]types.Trial, error) {
	pageSize := r.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	studies, err := r.Client.SearchByIntervention(ctx, drugName, pageSize)
	if err != nil && !errors.Is(err, httputil.ErrNotFound) {
		return nil, err
	}
	out := make([]types.Trial, 0, len(studies))
	for _, s := range studies {
		out = append(out, s.Trial())
	}
	return out, nil
}
