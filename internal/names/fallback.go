// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"errors"

	"github.com/pdiddy/trialscout/internal/httputil"
)

// strategy is one way of matching a drug name in a registry. Strategies are
// ranked from most to least precise.
type strategy[T any] struct {
	name string
	run  func(ctx context.Context, drugName string) ([]T, error)
}

// firstNonEmpty tries each strategy in order and returns the first non-empty
// result together with the name of the strategy that produced it.
//
// ErrNotFound counts as an empty result. Other errors do not stop the chain;
// if every strategy comes back empty, the last such error is returned, or
// ErrNotFound when there was none.
func firstNonEmpty[T any](ctx context.Context, drugName string, strategies []strategy[T]) ([]T, string, error) {
	var lastErr error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		items, err := s.run(ctx, drugName)
		if err != nil && !errors.Is(err, httputil.ErrNotFound) {
			lastErr = err
			continue
		}
		if len(items) > 0 {
			return items, s.name, nil
		}
	}
	if lastErr != nil {
		return nil, "", lastErr
	}
	return nil, "", httputil.ErrNotFound
}
