// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trials searches a clinical-trials registry once per drug name and
// merges the hits into one de-duplicated trial list. Searches run in
// fixed-size batches so the registry never sees more than one batch of
// concurrent requests.
package trials

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/trialscout/pkg/types"
)

const (
	defaultBatchSize = 5
	defaultMaxNames  = 50
)

// ErrNoNames is returned when the input holds no usable drug name.
var ErrNoNames = errors.New("drugNames must contain at least one non-empty name")

// Output is the result of one pipeline run.
type Output struct {
	Trials []types.Trial            `json:"trials" yaml:"trials"`
	Errors []types.TrialSearchError `json:"errors" yaml:"errors"`
	Stats  types.TrialStats         `json:"stats" yaml:"stats"`
}

// Pipeline runs registry searches in batches and merges the results.
type Pipeline struct {
	registry  Registry
	batchSize int
	maxNames  int
	logger    *slog.Logger
}

// NewPipeline returns a Pipeline over registry. Zero config values use the
// defaults: batches of 5 and at most 50 names. A nil logger uses
// slog.Default().
func NewPipeline(registry Registry, cfg types.TrialsConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		registry:  registry,
		batchSize: cfg.BatchSize,
		maxNames:  cfg.MaxNames,
		logger:    logger,
	}
	if p.batchSize <= 0 {
		p.batchSize = defaultBatchSize
	}
	if p.maxNames <= 0 {
		p.maxNames = defaultMaxNames
	}
	return p
}

// MaxNames returns the cap on names searched per run.
func (p *Pipeline) MaxNames() int { return p.maxNames }

// PrepareNames trims names, drops blanks and exact duplicates (keeping the
// first occurrence) and truncates the list to max entries. The comparison
// is case-sensitive: "Aspirin" and "aspirin" are both searched.
func PrepareNames(names []string, max int) (prepared []string, truncated bool) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		prepared = append(prepared, n)
	}
	if max > 0 && len(prepared) > max {
		return prepared[:max], true
	}
	return prepared, false
}

// Batches splits names into consecutive groups of at most size names.
func Batches(names []string, size int) [][]string {
	if size <= 0 {
		size = defaultBatchSize
	}
	var out [][]string
	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		out = append(out, names[start:end])
	}
	return out
}

// Aggregate searches the registry for every prepared name and merges the
// trials by identifier. A failed search is recorded in Output.Errors and
// never stops the run. When ctx is done between batches, every name not yet
// searched is recorded as an error carrying ctx.Err() and the trials merged
// so far are returned. The only error returned is ErrNoNames.
func (p *Pipeline) Aggregate(ctx context.Context, names []string) (Output, error) {
	prepared, truncated := PrepareNames(names, p.maxNames)
	if len(prepared) == 0 {
		return Output{}, ErrNoNames
	}

	m := newMerger()
	errs := []types.TrialSearchError{}
	batches := Batches(prepared, p.batchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			skipped := 0
			for _, rest := range batches[i:] {
				for _, name := range rest {
					errs = append(errs, types.TrialSearchError{DrugName: name, Error: err.Error()})
					skipped++
				}
			}
			p.logger.Warn("trial aggregation stopped early", "batch", i+1, "skipped", skipped, "error", err)
			break
		}
		p.logger.Debug("searching trial batch", "batch", i+1, "names", len(batch))

		for j, r := range p.runBatch(ctx, batch) {
			if r.err != nil {
				p.logger.Warn("trial search failed", "drug", batch[j], "error", r.err)
				errs = append(errs, types.TrialSearchError{DrugName: batch[j], Error: r.err.Error()})
				continue
			}
			m.add(batch[j], r.trials)
		}
	}

	out := Output{
		Trials: m.result(),
		Errors: errs,
		Stats: types.TrialStats{
			TotalProvided:     len(names),
			TotalSearched:     len(prepared),
			WasTruncated:      truncated,
			TotalUniqueTrials: len(m.trials),
		},
	}
	p.logger.Info("trial aggregation complete",
		"searched", out.Stats.TotalSearched, "trials", out.Stats.TotalUniqueTrials,
		"errors", len(errs), "truncated", truncated)
	return out, nil
}

type batchResult struct {
	trials []types.Trial
	err    error
}

// runBatch searches every name of one batch concurrently and returns when
// all of them finished, successfully or not. Results are indexed like batch.
func (p *Pipeline) runBatch(ctx context.Context, batch []string) []batchResult {
	results := make([]batchResult, len(batch))

	var g errgroup.Group
	g.SetLimit(p.batchSize)
	for i, name := range batch {
		i, name := i, name
		g.Go(func() error {
			trials, err := p.registry.SearchTrials(ctx, name)
			results[i] = batchResult{trials: trials, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
