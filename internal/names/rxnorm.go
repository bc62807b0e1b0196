// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// rxnormAPIBase is the RxNav REST root. Declared as a var so tests can
// substitute an httptest server.
var rxnormAPIBase = "https://rxnav.nlm.nih.gov/REST"

// rxnormTermTypes maps the RxNorm term types we keep to record types.
// Clinical and branded drug strings (SCD, SBD, ...) are dose forms, not names.
var rxnormTermTypes = map[string]string{
	"IN":  "Ingredient",
	"PIN": "Precise Ingredient",
	"MIN": "Multiple Ingredients",
	"BN":  "Brand Name",
}

// RxNormSource resolves names through the NLM RxNorm naming registry.
type RxNormSource struct {
	Client *httputil.Client
}

// Name returns the source identifier.
func (s *RxNormSource) Name() string { return "rxnorm" }

// Lookup finds the RxCUI for drugName (exact, then approximate match) and
// returns the concept's name plus its related ingredient and brand names.
func (s *RxNormSource) Lookup(ctx context.Context, drugName string) (types.SourceResult, error) {
	var res types.SourceResult

	rxcuis, matchedBy, err := firstNonEmpty(ctx, drugName, []strategy[string]{
		{name: "exact", run: s.exactRxCUI},
		{name: "approximate", run: s.approximateRxCUI},
	})
	if err != nil {
		return res, err
	}
	rxcui := rxcuis[0]

	var props rxnormPropertiesResponse
	if err := s.Client.GetJSON(ctx, fmt.Sprintf("%s/rxcui/%s/properties.json", rxnormAPIBase, url.PathEscape(rxcui)), &props); err != nil {
		return res, fmt.Errorf("RxNorm properties for %s: %w", rxcui, err)
	}
	if props.Properties.Name != "" {
		typ := "RxNorm Name"
		if matchedBy == "approximate" {
			typ = "RxNorm Approximate Match"
		}
		res.Names = append(res.Names, types.NameRecord{Name: props.Properties.Name, Type: typ, SourceID: rxcui})
	}
	if props.Properties.Synonym != "" {
		res.Names = append(res.Names, types.NameRecord{Name: props.Properties.Synonym, Type: "Synonym", SourceID: rxcui})
	}
	res.Links = append(res.Links, types.LinkRecord{
		Title: "RxNav concept " + rxcui,
		URL:   "https://mor.nlm.nih.gov/RxNav/search?searchBy=RXCUI&searchTerm=" + url.QueryEscape(rxcui),
	})

	var related rxnormAllRelatedResponse
	if err := s.Client.GetJSON(ctx, fmt.Sprintf("%s/rxcui/%s/allrelated.json", rxnormAPIBase, url.PathEscape(rxcui)), &related); err != nil {
		return res, fmt.Errorf("RxNorm related concepts for %s: %w", rxcui, err)
	}
	for _, group := range related.AllRelatedGroup.ConceptGroup {
		typ, ok := rxnormTermTypes[group.TTY]
		if !ok {
			continue
		}
		for _, c := range group.ConceptProperties {
			if c.Name == "" {
				continue
			}
			res.Names = append(res.Names, types.NameRecord{Name: c.Name, Type: typ, SourceID: c.RxCUI})
			if c.Synonym != "" {
				res.Names = append(res.Names, types.NameRecord{Name: c.Synonym, Type: "Synonym", SourceID: c.RxCUI})
			}
		}
	}
	return res, nil
}

func (s *RxNormSource) exactRxCUI(ctx context.Context, drugName string) ([]string, error) {
	var r rxnormIDResponse
	err := s.Client.GetJSON(ctx, rxnormAPIBase+"/rxcui.json?"+url.Values{"name": {drugName}}.Encode(), &r)
	if err != nil {
		return nil, fmt.Errorf("RxNorm exact lookup: %w", err)
	}
	return r.IDGroup.RxNormID, nil
}

func (s *RxNormSource) approximateRxCUI(ctx context.Context, drugName string) ([]string, error) {
	var r rxnormApproximateResponse
	params := url.Values{"term": {drugName}, "maxEntries": {"1"}}
	if err := s.Client.GetJSON(ctx, rxnormAPIBase+"/approximateTerm.json?"+params.Encode(), &r); err != nil {
		return nil, fmt.Errorf("RxNorm approximate lookup: %w", err)
	}
	var ids []string
	for _, c := range r.ApproximateGroup.Candidate {
		if c.RxCUI != "" {
			ids = append(ids, c.RxCUI)
		}
	}
	return ids, nil
}

// RxNav JSON structures.
type rxnormIDResponse struct {
	IDGroup struct {
		Name     string   `json:"name"`
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

type rxnormApproximateResponse struct {
	ApproximateGroup struct {
		Candidate []struct {
			RxCUI string `json:"rxcui"`
			Score string `json:"score"`
			Rank  string `json:"rank"`
		} `json:"candidate"`
	} `json:"approximateGroup"`
}

type rxnormConcept struct {
	RxCUI   string `json:"rxcui"`
	Name    string `json:"name"`
	Synonym string `json:"synonym"`
	TTY     string `json:"tty"`
}

type rxnormPropertiesResponse struct {
	Properties rxnormConcept `json:"properties"`
}

type rxnormAllRelatedResponse struct {
	AllRelatedGroup struct {
		RxCUI        string `json:"rxcui"`
		ConceptGroup []struct {
			TTY               string          `json:"tty"`
			ConceptProperties []rxnormConcept `json:"conceptProperties"`
		} `json:"conceptGroup"`
	} `json:"allRelatedGroup"`
}
