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

// chemblAPIBase is the ChEMBL web services root. Declared as a var so tests
// can substitute an httptest server.
var chemblAPIBase = "https://www.ebi.ac.uk/chembl/api/data"

const defaultChEMBLMaxMolecules = 5

// chemblSynonymTypes maps ChEMBL synonym types to record types. Anything
// else is reported as a plain synonym.
var chemblSynonymTypes = map[string]string{
	"TRADE_NAME":      "Trade Name",
	"INN":             "INN",
	"USAN":            "USAN",
	"BAN":             "BAN",
	"RESEARCH_CODE":   "Research Code",
	"SYSTEMATIC":      "Systematic Name",
	"OTHER":           "Synonym",
	"FDA":             "FDA Name",
	"MERCK_INDEX":     "Synonym",
	"ATC":             "Synonym",
	"USP":             "USP Name",
	"JAN":             "JAN",
	"DCF":             "DCF",
	"BNF":             "BNF Name",
	"NATIONAL_FORMUL": "Synonym",
}

// ChEMBLSource resolves names through the ChEMBL bioactivity database.
type ChEMBLSource struct {
	Client       *httputil.Client
	MaxMolecules int
}

// Name returns the source identifier.
func (s *ChEMBLSource) Name() string { return "chembl" }

// Lookup finds molecules whose preferred name equals drugName, then whose
// synonyms equal it, then whose preferred name contains it, and finally by
// free-text search, and returns their preferred names and synonyms.
func (s *ChEMBLSource) Lookup(ctx context.Context, drugName string) (types.SourceResult, error) {
	var res types.SourceResult

	molecules, matchedBy, err := firstNonEmpty(ctx, drugName, []strategy[chemblMolecule]{
		{name: "exact", run: s.filter("pref_name__iexact")},
		{name: "synonym", run: s.filter("molecule_synonyms__molecule_synonym__iexact")},
		{name: "contains", run: s.filter("pref_name__icontains")},
		{name: "free-text", run: s.search},
	})
	if err != nil {
		return res, err
	}
	if limit := s.maxMolecules(); len(molecules) > limit {
		molecules = molecules[:limit]
	}

	var set recordSet
	for _, m := range molecules {
		set.add(m.PrefName, "Preferred Name", m.ChEMBLID)
		for _, syn := range m.Synonyms {
			typ, ok := chemblSynonymTypes[syn.Type]
			if !ok {
				typ = "Synonym"
			}
			set.add(syn.Synonym, typ, m.ChEMBLID)
		}
		title := m.ChEMBLID
		if m.PrefName != "" {
			title = m.PrefName + " (" + m.ChEMBLID + ")"
		}
		res.Links = append(res.Links, types.LinkRecord{
			Title: title + ", " + matchedBy + " match",
			URL:   "https://www.ebi.ac.uk/chembl/compound_report_card/" + url.PathEscape(m.ChEMBLID) + "/",
		})
	}
	res.Names = set.records
	return res, nil
}

func (s *ChEMBLSource) maxMolecules() int {
	if s.MaxMolecules <= 0 {
		return defaultChEMBLMaxMolecules
	}
	return s.MaxMolecules
}

// filter returns a strategy querying the molecule endpoint with one Django
// style field filter.
func (s *ChEMBLSource) filter(field string) func(context.Context, string) ([]chemblMolecule, error) {
	return func(ctx context.Context, drugName string) ([]chemblMolecule, error) {
		params := url.Values{
			field:   {drugName},
			"limit": {strconv.Itoa(s.maxMolecules())},
		}
		var r chemblMoleculeResponse
		if err := s.Client.GetJSON(ctx, chemblAPIBase+"/molecule.json?"+params.Encode(), &r); err != nil {
			return nil, fmt.Errorf("ChEMBL %s lookup: %w", strings.TrimPrefix(field, "molecule_synonyms__"), err)
		}
		return r.Molecules, nil
	}
}

func (s *ChEMBLSource) search(ctx context.Context, drugName string) ([]chemblMolecule, error) {
	params := url.Values{
		"q":     {drugName},
		"limit": {strconv.Itoa(s.maxMolecules())},
	}
	var r chemblMoleculeResponse
	if err := s.Client.GetJSON(ctx, chemblAPIBase+"/molecule/search.json?"+params.Encode(), &r); err != nil {
		return nil, fmt.Errorf("ChEMBL search: %w", err)
	}
	return r.Molecules, nil
}

// ChEMBL JSON structures.
type chemblMoleculeResponse struct {
	Molecules []chemblMolecule `json:"molecules"`
	PageMeta  struct {
		TotalCount int `json:"total_count"`
	} `json:"page_meta"`
}

type chemblMolecule struct {
	ChEMBLID string          `json:"molecule_chembl_id"`
	PrefName string          `json:"pref_name"`
	Synonyms []chemblSynonym `json:"molecule_synonyms"`
}

type chemblSynonym struct {
	Synonym string `json:"molecule_synonym"`
	Type    string `json:"syn_type"`
}
