// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/internal/trials"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <drug name>",
	Short: "List every name the drug registries know a drug by",
	Long: `Resolve queries RxNorm, openFDA, PubChem, ChEMBL and ClinicalTrials.gov in
parallel and prints the names each source returned, followed by the merged
candidate set. A failing source is reported in its section and never stops
the others.

Use --save to write the query and candidate names to a YAML file that
"trialscout trials --file" can replay later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	res, err := svc.resolver.Resolve(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := trials.WriteNameFile(path, res.Query, trials.SearchNames(res)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d names to %s\n", len(res.CandidateNames)+1, path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return names.FormatJSON(res, os.Stdout)
	}
	names.FormatTable(res, os.Stdout)
	return nil
}

func init() {
	resolveCmd.Flags().Bool("json", false, "output results as JSON")
	resolveCmd.Flags().String("save", "", "write the candidate names to a YAML name file")

	rootCmd.AddCommand(resolveCmd)
}
