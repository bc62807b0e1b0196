// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trialscout/internal/history"
	"github.com/pdiddy/trialscout/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded aggregation runs",
	Long: `History reads the SQLite run log written by "serve --history" and by the
trials command when history.enabled is set.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistoryForRead()
	if err != nil {
		return err
	}
	defer store.Close()

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), history.ListOptions{Kind: types.RunKind(kind), Limit: limit})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-40s  %6s  %6s  %6s\n",
		"When", "Kind", "Query", "Names", "Trials", "Errors")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, r := range runs {
		query := r.Query
		if q := []rune(query); len(q) > 40 {
			query = string(q[:37]) + "..."
		}
		names := fmt.Sprintf("%d", r.NamesSearched)
		if r.WasTruncated {
			names += "+"
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-40s  %6s  %6d  %6d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Kind, query, names, r.TrialsFound, r.ErrorCount)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every run to YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openHistoryForRead()
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = "history." + format
	}

	switch format {
	case "yaml":
		err = store.ExportYAML(cmd.Context(), out)
	case "json":
		err = store.ExportJSON(cmd.Context(), out)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported history to %s\n", out)
	return nil
}

// openHistoryForRead opens the history database regardless of
// history.enabled, which only controls recording.
func openHistoryForRead() (*history.Store, error) {
	var cfg types.HistoryConfig
	if err := viper.UnmarshalKey("history", &cfg); err != nil {
		return nil, fmt.Errorf("decoding history config: %w", err)
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("no history database at %s: %w", cfg.Path, err)
	}
	return history.NewStore(cfg)
}

func init() {
	historyListCmd.Flags().String("kind", "", "only list runs of this kind: drug or trials")
	historyListCmd.Flags().Int("limit", 20, "maximum number of runs")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output file (default history.<format>)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
