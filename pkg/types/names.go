// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the trialscout pipeline:
// name records returned by the drug registries, trials returned by the
// trials registry, and the aggregate response that ties them together.
package types

// Name record types. TypeError and TypeInfo are sentinel markers carried in a
// source's name list to report a failure or an empty lookup; they never name
// a drug.
const (
	TypeError = "Error"
	TypeInfo  = "Info"
)

// NameRecord is one name or synonym reported by a name source.
type NameRecord struct {
	// Name is the name as returned by the upstream registry.
	Name string `json:"name" yaml:"name"`

	// Type describes the kind of name (e.g. "Brand Name", "Synonym") or is
	// one of the sentinel types TypeError and TypeInfo.
	Type string `json:"type" yaml:"type"`

	// SourceID is the upstream identifier the name belongs to (RxCUI, CID,
	// ChEMBL ID, NCT ID, label set id).
	SourceID string `json:"sourceId,omitempty" yaml:"source_id,omitempty"`
}

// IsSentinel reports whether the record is an Error or Info marker rather
// than a real name.
func (n NameRecord) IsSentinel() bool {
	return n.Type == TypeError || n.Type == TypeInfo
}

// LinkRecord points at a human-facing page for a record in an upstream registry.
type LinkRecord struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// SourceResult holds everything one name source returned for one request.
type SourceResult struct {
	Names []NameRecord `json:"names" yaml:"names"`
	Links []LinkRecord `json:"links" yaml:"links"`
}
