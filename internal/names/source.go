// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names resolves a drug name into every name the public drug
// registries know it by. Each registry is a Source; the Resolver fans a
// query out to all of them and merges their answers into one candidate set.
package names

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// Source looks a drug name up in one registry. Each adapter (RxNorm,
// openFDA, PubChem, ChEMBL, ClinicalTrials.gov) implements this interface.
//
// Lookup may return a partial result together with an error; the Resolver
// keeps whatever names were found and records the error as a sentinel.
type Source interface {
	Name() string
	Lookup(ctx context.Context, drugName string) (types.SourceResult, error)
}

// search runs one source and never fails: errors and panics are folded into
// exactly one sentinel record appended to the source's names.
func search(ctx context.Context, src Source, drugName string, logger *slog.Logger) (res types.SourceResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("name source panicked", "source", src.Name(), "panic", r)
			res = withSentinel(res, src.Name(), fmt.Errorf("internal error in %s adapter", src.Name()))
		}
	}()

	res, err := src.Lookup(ctx, drugName)
	if err != nil {
		logger.Warn("name source failed", "source", src.Name(), "query", drugName, "error", err)
		return withSentinel(res, src.Name(), err)
	}
	if len(res.Names) == 0 {
		return withSentinel(res, src.Name(), httputil.ErrNotFound)
	}
	if res.Links == nil {
		res.Links = []types.LinkRecord{}
	}
	return res
}

// withSentinel appends the record describing err. Not-found answers become
// Info records; everything else becomes an Error record.
func withSentinel(res types.SourceResult, source string, err error) types.SourceResult {
	rec := types.NameRecord{Type: types.TypeError, Name: err.Error()}
	if errors.Is(err, httputil.ErrNotFound) {
		rec = types.NameRecord{Type: types.TypeInfo, Name: "No results found in " + source}
	}
	res.Names = append(res.Names, rec)
	if res.Links == nil {
		res.Links = []types.LinkRecord{}
	}
	return res
}

// recordSet collects name records for one source, dropping blank names and
// repeats of the same name under the same type.
type recordSet struct {
	seen    map[string]bool
	records []types.NameRecord
}

func (s *recordSet) add(name, typ, sourceID string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	key := typ + "\x00" + strings.ToLower(name)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.records = append(s.records, types.NameRecord{Name: name, Type: typ, SourceID: sourceID})
}
