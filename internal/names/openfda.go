// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// openFDALabelBase is the openFDA drug label endpoint. Declared as a var so
// tests can substitute an httptest server.
var openFDALabelBase = "https://api.fda.gov/drug/label.json"

const openFDALabelLimit = 10

// OpenFDASource reads brand, generic and substance names from FDA drug
// labels. Label links point at the DailyMed copy of each label.
type OpenFDASource struct {
	Client *httputil.Client
	APIKey string
}

// Name returns the source identifier.
func (s *OpenFDASource) Name() string { return "openfda" }

// Lookup searches labels whose brand, generic or substance name matches
// drugName.
func (s *OpenFDASource) Lookup(ctx context.Context, drugName string) (types.SourceResult, error) {
	var res types.SourceResult

	params := url.Values{
		"search": {buildLabelSearch(drugName)},
		"limit":  {strconv.Itoa(openFDALabelLimit)},
	}
	if s.APIKey != "" {
		params.Set("api_key", s.APIKey)
	}

	var lr openFDALabelResponse
	if err := s.Client.GetJSON(ctx, openFDALabelBase+"?"+params.Encode(), &lr); err != nil {
		return res, fmt.Errorf("openFDA label search: %w", err)
	}

	var set recordSet
	for _, label := range lr.Results {
		id := label.SetID
		for _, n := range label.OpenFDA.BrandName {
			set.add(n, "Brand Name", id)
		}
		for _, n := range label.OpenFDA.GenericName {
			set.add(n, "Generic Name", id)
		}
		for _, n := range label.OpenFDA.SubstanceName {
			set.add(n, "Substance Name", id)
		}
		if id != "" {
			title := id
			if len(label.OpenFDA.BrandName) > 0 {
				title = label.OpenFDA.BrandName[0]
			}
			if len(label.OpenFDA.ManufacturerName) > 0 {
				title += " (" + label.OpenFDA.ManufacturerName[0] + ")"
			}
			res.Links = append(res.Links, types.LinkRecord{
				Title: title,
				URL:   "https://dailymed.nlm.nih.gov/dailymed/drugInfo.cfm?setid=" + url.QueryEscape(id),
			})
		}
	}
	res.Names = set.records
	return res, nil
}

// buildLabelSearch builds an openFDA query matching any of the name fields.
// Terms separated by spaces are ORed by openFDA.
func buildLabelSearch(drugName string) string {
	q := strings.ReplaceAll(drugName, `"`, "")
	fields := []string{"openfda.brand_name", "openfda.generic_name", "openfda.substance_name"}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s:%q", f, q)
	}
	return strings.Join(parts, " ")
}

// openFDA label JSON structures, trimmed to the fields we read.
type openFDALabelResponse struct {
	Meta struct {
		Results struct {
			Skip  int `json:"skip"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"results"`
	} `json:"meta"`
	Results []openFDALabel `json:"results"`
}

type openFDALabel struct {
	SetID         string `json:"set_id"`
	ID            string `json:"id"`
	EffectiveTime string `json:"effective_time"`
	OpenFDA       struct {
		BrandName        []string `json:"brand_name"`
		GenericName      []string `json:"generic_name"`
		SubstanceName    []string `json:"substance_name"`
		ManufacturerName []string `json:"manufacturer_name"`
		RxCUI            []string `json:"rxcui"`
	} `json:"openfda"`
}
