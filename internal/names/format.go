// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/trialscout/pkg/types"
)

// FormatTable writes each source's names followed by the candidate set.
func FormatTable(res Resolution, w io.Writer) {
	for _, src := range res.Order {
		sr := res.Sources[src]
		fmt.Fprintf(w, "%s (%d records)\n", src, len(sr.Names))
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, n := range sr.Names {
			fmt.Fprintf(w, "  %-24s  %-40s  %s\n", truncate(n.Type, 24), truncate(n.Name, 40), n.SourceID)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d candidate names for %q\n", len(res.CandidateNames), res.Query)
	for _, n := range res.CandidateNames {
		fmt.Fprintf(w, "  %s\n", n)
	}
}

// FormatJSON writes the resolution as indented JSON.
func FormatJSON(res Resolution, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Query          string                        `json:"query"`
		Sources        map[string]types.SourceResult `json:"sources"`
		CandidateNames []string                      `json:"candidateNames"`
	}{res.Query, res.Sources, res.CandidateNames})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
