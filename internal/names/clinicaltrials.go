// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"strings"

	"github.com/pdiddy/trialscout/internal/ctgov"
	"github.com/pdiddy/trialscout/pkg/types"
)

const (
	defaultTrialNamePageSize = 50
	maxTrialLinks            = 10
)

// drugInterventionTypes are the intervention types whose names can name a
// drug. Procedures, devices and behavioral arms are skipped.
var drugInterventionTypes = map[string]bool{
	"DRUG":                true,
	"BIOLOGICAL":          true,
	"DIETARY_SUPPLEMENT":  true,
	"COMBINATION_PRODUCT": true,
	"GENETIC":             true,
	"":                    true,
}

// ClinicalTrialsSource mines ClinicalTrials.gov intervention names for
// aliases of a drug: code names, brand names and spellings that trial
// sponsors used when registering studies.
type ClinicalTrialsSource struct {
	Client   *ctgov.Client
	PageSize int
}

// Name returns the source identifier.
func (s *ClinicalTrialsSource) Name() string { return "clinicaltrials" }

// Lookup reads the interventions of studies matching drugName and keeps the
// drug interventions that mention it, with their other names.
func (s *ClinicalTrialsSource) Lookup(ctx context.Context, drugName string) (types.SourceResult, error) {
	var res types.SourceResult

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = defaultTrialNamePageSize
	}
	studies, err := s.Client.SearchByIntervention(ctx, drugName, pageSize)
	if err != nil {
		return res, err
	}

	needle := strings.ToLower(drugName)
	var set recordSet
	for _, st := range studies {
		matched := false
		for _, iv := range st.Interventions() {
			if !drugInterventionTypes[iv.Type] || !mentions(iv, needle) {
				continue
			}
			matched = true
			set.add(iv.Name, "Intervention Name", st.ID())
			for _, other := range iv.OtherNames {
				set.add(other, "Intervention Synonym", st.ID())
			}
		}
		if matched && len(res.Links) < maxTrialLinks {
			res.Links = append(res.Links, types.LinkRecord{
				Title: st.ID() + ": " + st.ProtocolSection.IdentificationModule.BriefTitle,
				URL:   st.URL(),
			})
		}
	}
	res.Names = set.records
	return res, nil
}

// mentions reports whether the intervention's name or any other name
// contains needle, case-insensitively.
func mentions(iv ctgov.Intervention, needle string) bool {
	if strings.Contains(strings.ToLower(iv.Name), needle) {
		return true
	}
	for _, other := range iv.OtherNames {
		if strings.Contains(strings.ToLower(other), needle) {
			return true
		}
	}
	return false
}
