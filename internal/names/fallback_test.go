// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trialscout/internal/httputil"
)

func TestFirstNonEmpty(t *testing.T) {
	var calls []string
	step := func(name string, items []int, err error) strategy[int] {
		return strategy[int]{name: name, run: func(context.Context, string) ([]int, error) {
			calls = append(calls, name)
			return items, err
		}}
	}
	hardErr := errors.New("HTTP 500")

	tests := []struct {
		name       string
		strategies []strategy[int]
		wantItems  []int
		wantBy     string
		wantErr    error
		wantCalls  []string
	}{
		{
			name:       "exact match short-circuits",
			strategies: []strategy[int]{step("exact", []int{1}, nil), step("synonym", []int{2}, nil)},
			wantItems:  []int{1},
			wantBy:     "exact",
			wantCalls:  []string{"exact"},
		},
		{
			name: "not found falls through to contains",
			strategies: []strategy[int]{
				step("exact", nil, httputil.ErrNotFound),
				step("synonym", nil, nil),
				step("contains", []int{3, 4}, nil),
				step("free-text", []int{5}, nil),
			},
			wantItems: []int{3, 4},
			wantBy:    "contains",
			wantCalls: []string{"exact", "synonym", "contains"},
		},
		{
			name:       "hard error does not stop the chain",
			strategies: []strategy[int]{step("exact", nil, hardErr), step("free-text", []int{9}, nil)},
			wantItems:  []int{9},
			wantBy:     "free-text",
			wantCalls:  []string{"exact", "free-text"},
		},
		{
			name:       "all empty is not found",
			strategies: []strategy[int]{step("exact", nil, nil), step("synonym", nil, httputil.ErrNotFound)},
			wantErr:    httputil.ErrNotFound,
			wantCalls:  []string{"exact", "synonym"},
		},
		{
			name:       "all empty with a hard error reports it",
			strategies: []strategy[int]{step("exact", nil, hardErr), step("synonym", nil, nil)},
			wantErr:    hardErr,
			wantCalls:  []string{"exact", "synonym"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = nil
			items, by, err := firstNonEmpty(context.Background(), "aspirin", tt.strategies)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantItems, items)
			assert.Equal(t, tt.wantBy, by)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestFirstNonEmptyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, _, err := firstNonEmpty(ctx, "aspirin", []strategy[int]{{name: "exact", run: func(context.Context, string) ([]int, error) {
		called = true
		return []int{1}, nil
	}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
