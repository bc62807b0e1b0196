// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package literature

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/trialscout/pkg/types"
)

// FormatTable writes papers as a fixed-width table.
func FormatTable(papers []types.Paper, w io.Writer) {
	fmt.Fprintf(w, "%-4s  %-60s  %-30s  %s\n", "YEAR", "TITLE", "AUTHORS", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, p := range papers {
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4s  %-60s  %-30s  %s\n",
			year, truncate(p.Title, 60), truncate(strings.Join(p.Authors, ", "), 30), p.DOI)
	}
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
}

// FormatJSON writes the papers as indented JSON.
func FormatJSON(query string, papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Query  string        `json:"query"`
		Papers []types.Paper `json:"papers"`
	}{query, papers})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
