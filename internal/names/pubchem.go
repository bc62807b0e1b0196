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

// PubChem endpoints. Declared as vars so tests can substitute an httptest
// server.
var (
	pubchemAPIBase          = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	pubchemAutocompleteBase = "https://pubchem.ncbi.nlm.nih.gov/rest/autocomplete"
)

const (
	defaultPubChemMaxCIDs     = 3
	defaultPubChemMaxSynonyms = 25
	pubchemAutocompleteLimit  = 5
)

// PubChemSource resolves names through the PubChem compound database.
type PubChemSource struct {
	Client      *httputil.Client
	MaxCIDs     int
	MaxSynonyms int
}

// Name returns the source identifier.
func (s *PubChemSource) Name() string { return "pubchem" }

// Lookup finds compound IDs for drugName, trying an exact name match, then
// depositor synonyms, then a word match and finally autocomplete, and
// returns the title and synonyms of the first few compounds.
func (s *PubChemSource) Lookup(ctx context.Context, drugName string) (types.SourceResult, error) {
	var res types.SourceResult

	cids, matchedBy, err := firstNonEmpty(ctx, drugName, []strategy[int]{
		{name: "exact", run: s.exactCIDs},
		{name: "synonym", run: s.synonymCIDs},
		{name: "contains", run: s.wordCIDs},
		{name: "free-text", run: s.autocompleteCIDs},
	})
	if err != nil {
		return res, err
	}

	maxCIDs := s.MaxCIDs
	if maxCIDs <= 0 {
		maxCIDs = defaultPubChemMaxCIDs
	}
	if len(cids) > maxCIDs {
		cids = cids[:maxCIDs]
	}
	idList := joinInts(cids)

	var set recordSet
	var props pubchemPropertyResponse
	if err := s.Client.GetJSON(ctx, fmt.Sprintf("%s/compound/cid/%s/property/Title/JSON", pubchemAPIBase, idList), &props); err != nil {
		return res, fmt.Errorf("PubChem titles: %w", err)
	}
	for _, p := range props.PropertyTable.Properties {
		id := strconv.Itoa(p.CID)
		set.add(p.Title, "Compound Title", id)
		res.Links = append(res.Links, types.LinkRecord{
			Title: p.Title + " (CID " + id + ", " + matchedBy + " match)",
			URL:   "https://pubchem.ncbi.nlm.nih.gov/compound/" + id,
		})
	}

	maxSyn := s.MaxSynonyms
	if maxSyn <= 0 {
		maxSyn = defaultPubChemMaxSynonyms
	}
	var syn pubchemInformationResponse
	if err := s.Client.GetJSON(ctx, fmt.Sprintf("%s/compound/cid/%s/synonyms/JSON", pubchemAPIBase, idList), &syn); err != nil {
		res.Names = set.records
		return res, fmt.Errorf("PubChem synonyms: %w", err)
	}
	for _, info := range syn.InformationList.Information {
		id := strconv.Itoa(info.CID)
		for i, name := range info.Synonym {
			if i >= maxSyn {
				break
			}
			set.add(name, "Synonym", id)
		}
	}
	res.Names = set.records
	return res, nil
}

func (s *PubChemSource) exactCIDs(ctx context.Context, drugName string) ([]int, error) {
	return s.compoundCIDs(ctx, drugName, "complete")
}

func (s *PubChemSource) wordCIDs(ctx context.Context, drugName string) ([]int, error) {
	return s.compoundCIDs(ctx, drugName, "word")
}

func (s *PubChemSource) compoundCIDs(ctx context.Context, drugName, nameType string) ([]int, error) {
	var r pubchemIdentifierResponse
	u := fmt.Sprintf("%s/compound/name/%s/cids/JSON?name_type=%s", pubchemAPIBase, url.PathEscape(drugName), nameType)
	if err := s.Client.GetJSON(ctx, u, &r); err != nil {
		return nil, fmt.Errorf("PubChem %s name lookup: %w", nameType, err)
	}
	return nonZero(r.IdentifierList.CID), nil
}

// synonymCIDs maps depositor substance names onto standardized compounds.
func (s *PubChemSource) synonymCIDs(ctx context.Context, drugName string) ([]int, error) {
	var r pubchemSubstanceResponse
	u := fmt.Sprintf("%s/substance/name/%s/cids/JSON", pubchemAPIBase, url.PathEscape(drugName))
	if err := s.Client.GetJSON(ctx, u, &r); err != nil {
		return nil, fmt.Errorf("PubChem substance lookup: %w", err)
	}
	seen := make(map[int]bool)
	var cids []int
	for _, info := range r.InformationList.Information {
		for _, cid := range info.CID {
			if cid > 0 && !seen[cid] {
				seen[cid] = true
				cids = append(cids, cid)
			}
		}
	}
	return cids, nil
}

// autocompleteCIDs asks PubChem's autocomplete for the closest compound
// name and resolves that name exactly.
func (s *PubChemSource) autocompleteCIDs(ctx context.Context, drugName string) ([]int, error) {
	var r pubchemAutocompleteResponse
	u := fmt.Sprintf("%s/compound/%s/json?limit=%d", pubchemAutocompleteBase, url.PathEscape(drugName), pubchemAutocompleteLimit)
	if err := s.Client.GetJSON(ctx, u, &r); err != nil {
		return nil, fmt.Errorf("PubChem autocomplete: %w", err)
	}
	for _, term := range r.DictionaryTerms.Compound {
		if strings.EqualFold(term, drugName) {
			continue
		}
		cids, err := s.exactCIDs(ctx, term)
		if err == nil && len(cids) > 0 {
			return cids, nil
		}
	}
	return nil, nil
}

func nonZero(ids []int) []int {
	var out []int
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// PubChem PUG REST JSON structures.
type pubchemIdentifierResponse struct {
	IdentifierList struct {
		CID []int `json:"CID"`
	} `json:"IdentifierList"`
}

type pubchemInformationResponse struct {
	InformationList struct {
		Information []struct {
			CID     int      `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// Substance lookups list the standardized compound IDs per substance.
type pubchemSubstanceResponse struct {
	InformationList struct {
		Information []struct {
			SID int   `json:"SID"`
			CID []int `json:"CID"`
		} `json:"Information"`
	} `json:"InformationList"`
}

type pubchemPropertyResponse struct {
	PropertyTable struct {
		Properties []struct {
			CID   int    `json:"CID"`
			Title string `json:"Title"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemAutocompleteResponse struct {
	Total           int `json:"total"`
	DictionaryTerms struct {
		Compound []string `json:"compound"`
	} `json:"dictionary_terms"`
}
