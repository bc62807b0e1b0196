// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunKind identifies which operation produced a RunRecord.
type RunKind string

const (
	RunDrug   RunKind = "drug"
	RunTrials RunKind = "trials"
)

// RunRecord is one logged aggregation run.
type RunRecord struct {
	ID            string    `json:"id" yaml:"id"`
	Kind          RunKind   `json:"kind" yaml:"kind"`
	Query         string    `json:"query" yaml:"query"`
	NamesSearched int       `json:"namesSearched" yaml:"names_searched"`
	TrialsFound   int       `json:"trialsFound" yaml:"trials_found"`
	ErrorCount    int       `json:"errorCount" yaml:"error_count"`
	WasTruncated  bool      `json:"wasTruncated" yaml:"was_truncated"`
	CreatedAt     time.Time `json:"createdAt" yaml:"created_at"`
}
