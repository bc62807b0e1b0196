// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdiddy/trialscout/pkg/types"
)

// minNameLength is the shortest trimmed name kept as a candidate.
const minNameLength = 3

// Resolution is what the name sources said about one query.
type Resolution struct {
	Query string

	// Sources holds one result per source, keyed by Source.Name().
	Sources map[string]types.SourceResult

	// Order lists the source names in the order they were configured.
	Order []string

	// CandidateNames is the deduplicated, lower-cased candidate set.
	CandidateNames []string
}

// Resolver fans a drug name out to every configured Source.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// NewResolver returns a Resolver over the given sources. A nil logger uses
// slog.Default().
func NewResolver(sources []Source, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// Sources returns the names of the configured sources in order.
func (r *Resolver) Sources() []string {
	out := make([]string, len(r.sources))
	for i, s := range r.sources {
		out[i] = s.Name()
	}
	return out
}

// Resolve queries all sources concurrently and waits for every one of them.
// A failing source never fails the resolution; its result carries a
// sentinel record instead.
func (r *Resolver) Resolve(ctx context.Context, drugName string) (Resolution, error) {
	drugName = strings.TrimSpace(drugName)
	if drugName == "" {
		return Resolution{}, fmt.Errorf("drug name is empty")
	}
	if len(r.sources) == 0 {
		return Resolution{}, fmt.Errorf("no name sources configured")
	}

	type sourceResult struct {
		name   string
		result types.SourceResult
	}

	ch := make(chan sourceResult, len(r.sources))
	var wg sync.WaitGroup
	for _, src := range r.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			ch <- sourceResult{name: src.Name(), result: search(ctx, src, drugName, r.logger)}
		}(src)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	res := Resolution{
		Query:   drugName,
		Sources: make(map[string]types.SourceResult, len(r.sources)),
		Order:   r.Sources(),
	}
	for sr := range ch {
		res.Sources[sr.name] = sr.result
	}

	ordered := make([]types.SourceResult, 0, len(res.Order))
	for _, name := range res.Order {
		ordered = append(ordered, res.Sources[name])
	}
	res.CandidateNames = CandidateNames(ordered)

	r.logger.Debug("names resolved", "query", drugName, "candidates", len(res.CandidateNames))
	return res, nil
}

// CandidateNames flattens source results into unique lower-cased names in
// first-seen order. Sentinel records and names shorter than three
// characters are dropped.
func CandidateNames(results []types.SourceResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, res := range results {
		for _, rec := range res.Names {
			key, ok := candidateKey(rec)
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// candidateKey normalizes a record into its candidate form.
func candidateKey(rec types.NameRecord) (string, bool) {
	if rec.IsSentinel() {
		return "", false
	}
	key := strings.ToLower(strings.Join(strings.Fields(rec.Name), " "))
	if len([]rune(key)) < minNameLength {
		return "", false
	}
	return key, true
}

// Collected is the per-source name report returned by the collect-names
// operation.
type Collected struct {
	OriginalQuery   string              `json:"originalQuery"`
	UniqueNameCount int                 `json:"uniqueNameCount"`
	UniqueNames     []string            `json:"uniqueNames"`
	NamesBySource   map[string][]string `json:"namesBySource"`
	CountsBySource  map[string]int      `json:"countsBySource"`
}

// Collect reports the candidate set along with the candidate names each
// source contributed.
func Collect(res Resolution) Collected {
	out := Collected{
		OriginalQuery:   res.Query,
		UniqueNameCount: len(res.CandidateNames),
		UniqueNames:     res.CandidateNames,
		NamesBySource:   make(map[string][]string, len(res.Sources)),
		CountsBySource:  make(map[string]int, len(res.Sources)),
	}
	if out.UniqueNames == nil {
		out.UniqueNames = []string{}
	}
	for name, sr := range res.Sources {
		names := CandidateNames([]types.SourceResult{sr})
		if names == nil {
			names = []string{}
		}
		out.NamesBySource[name] = names
		out.CountsBySource[name] = len(names)
	}
	return out
}
