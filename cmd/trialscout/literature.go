// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trialscout/internal/literature"
)

var literatureCmd = &cobra.Command{
	Use:   "literature <drug name>",
	Short: "Search Semantic Scholar for papers about a drug",
	Long: `Literature queries the Semantic Scholar graph API for papers matching the
drug name. Put an API key in .secrets/semantic-scholar-api-key for higher
rate limits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLiterature,
}

func runLiterature(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")
	papers, err := svc.literature.Search(cmd.Context(), query, limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return literature.FormatJSON(query, papers, os.Stdout)
	}
	literature.FormatTable(papers, os.Stdout)
	return nil
}

func init() {
	literatureCmd.Flags().Int("limit", 0, "maximum number of papers (default from literature.max_results)")
	literatureCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(literatureCmd)
}
