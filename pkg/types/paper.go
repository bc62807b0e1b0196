// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is a publication returned by the literature lookup.
type Paper struct {
	// PaperID is the Semantic Scholar paper identifier.
	PaperID string `json:"paperId" yaml:"paper_id"`

	Title    string   `json:"title" yaml:"title"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Venue    string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	Authors  []string `json:"authors" yaml:"authors"`

	// DOI is set when the upstream knows one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL links to the paper page on Semantic Scholar.
	URL string `json:"url" yaml:"url"`
}
