// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literature looks up published papers about a drug on Semantic
// Scholar, complementing the trial list with the research literature.
package literature

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const (
	semanticFields    = "title,abstract,authors,externalIds,year,venue,url"
	semanticPaperPage = "https://www.semanticscholar.org/paper/"

	defaultMaxResults = 20
	// maxLimit is the largest page the search endpoint serves.
	maxLimit = 100
)

// SemanticScholar queries the Semantic Scholar graph API.
type SemanticScholar struct {
	Client     *httputil.Client
	MaxResults int
}

// New returns a SemanticScholar client. A non-empty apiKey is sent as the
// x-api-key header for higher rate limits.
func New(httpCfg types.HTTPConfig, cfg types.LiteratureConfig, rps float64) *SemanticScholar {
	c := httputil.NewClient(httpCfg, rps)
	if cfg.SemanticScholarAPIKey != "" {
		c.Header = http.Header{"X-Api-Key": {cfg.SemanticScholarAPIKey}}
	}
	return &SemanticScholar{Client: c, MaxResults: cfg.MaxResults}
}

// Search returns up to limit papers matching drug. A non-positive limit
// uses MaxResults. No matches yield an empty slice.
func (s *SemanticScholar) Search(ctx context.Context, drug string, limit int) ([]types.Paper, error) {
	drug = strings.TrimSpace(drug)
	if drug == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if limit <= 0 {
		limit = s.MaxResults
	}
	if limit <= 0 {
		limit = defaultMaxResults
	}
	limit = min(limit, maxLimit)

	params := url.Values{
		"query":  {drug},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}

	var sr semanticResponse
	if err := s.Client.GetJSON(ctx, semanticAPIBase+"?"+params.Encode(), &sr); err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return []types.Paper{}, nil
		}
		return nil, fmt.Errorf("Semantic Scholar search: %w", err)
	}

	papers := make([]types.Paper, 0, len(sr.Data))
	for _, p := range sr.Data {
		papers = append(papers, p.paper())
	}
	return papers, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	Year        int                 `json:"year"`
	Venue       string              `json:"venue"`
	URL         string              `json:"url"`
	Authors     []semanticAuthor    `json:"authors"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	PubMed   string `json:"PubMed"`
	CorpusID int    `json:"CorpusId"`
}

func (p semanticPaper) paper() types.Paper {
	out := types.Paper{
		PaperID:  p.PaperID,
		Title:    p.Title,
		Abstract: p.Abstract,
		Year:     p.Year,
		Venue:    p.Venue,
		DOI:      p.ExternalIDs.DOI,
		URL:      p.URL,
		Authors:  make([]string, 0, len(p.Authors)),
	}
	for _, a := range p.Authors {
		out.Authors = append(out.Authors, a.Name)
	}
	if out.URL == "" && p.PaperID != "" {
		out.URL = semanticPaperPage + p.PaperID
	}
	return out
}
