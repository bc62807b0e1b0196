// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes merged trials as a fixed-width table followed by any
// per-name errors.
func FormatTable(out Output, w io.Writer) {
	fmt.Fprintf(w, "%-12s  %-22s  %-10s  %-50s  %s\n", "ID", "STATUS", "PHASE", "TITLE", "MATCHED")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, t := range out.Trials {
		fmt.Fprintf(w, "%-12s  %-22s  %-10s  %-50s  %s\n",
			t.ID, truncate(t.Status, 22), truncate(t.Phase, 10), truncate(t.Title, 50),
			strings.Join(t.MatchedNames, ", "))
	}

	s := out.Stats
	fmt.Fprintf(w, "\n%d unique trials from %d of %d names", s.TotalUniqueTrials, s.TotalSearched, s.TotalProvided)
	if s.WasTruncated {
		fmt.Fprint(w, " (truncated)")
	}
	fmt.Fprintln(w)

	if len(out.Errors) > 0 {
		fmt.Fprintf(w, "\n%d searches failed:\n", len(out.Errors))
		for _, e := range out.Errors {
			fmt.Fprintf(w, "  %s: %s\n", e.DrugName, e.Error)
		}
	}
}

// FormatJSON writes the output as indented JSON.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
