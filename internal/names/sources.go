// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"github.com/pdiddy/trialscout/internal/ctgov"
	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// NewSources builds the five registry adapters in their canonical order:
// naming registry, label database, compound database, bioactivity database
// and trials registry. Every adapter gets its own paced HTTP client.
func NewSources(httpCfg types.HTTPConfig, cfg types.SourcesConfig) []Source {
	client := func() *httputil.Client {
		return httputil.NewClient(httpCfg, cfg.RequestsPerSecond)
	}
	return []Source{
		&RxNormSource{Client: client()},
		&OpenFDASource{Client: client(), APIKey: cfg.OpenFDAAPIKey},
		&PubChemSource{Client: client(), MaxCIDs: cfg.PubChemMaxCIDs, MaxSynonyms: cfg.PubChemMaxSynonyms},
		&ChEMBLSource{Client: client(), MaxMolecules: cfg.ChEMBLMaxMolecules},
		&ClinicalTrialsSource{Client: &ctgov.Client{HTTP: client()}, PageSize: cfg.ClinicalTrialsPageSize},
	}
}
