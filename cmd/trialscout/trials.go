// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trialscout/internal/trials"
	"github.com/pdiddy/trialscout/pkg/types"
)

var trialsCmd = &cobra.Command{
	Use:   "trials [drug names...]",
	Short: "Search ClinicalTrials.gov for each name and merge the results",
	Long: `Trials searches ClinicalTrials.gov once per drug name, in batches, and
merges the studies by NCT ID. Each trial lists the names that matched it.

Names come from the arguments, from a name file written by
"trialscout resolve --save", or both. With --drug the names are resolved
first, exactly like GET /api/drug/{name}.`,
	RunE: runTrials,
}

func runTrials(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	drug, _ := cmd.Flags().GetString("drug")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if drug != "" {
		return runDrugTrials(ctx, svc, drug, jsonOutput)
	}

	names := args
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		nf, err := trials.ReadNameFile(path)
		if err != nil {
			return err
		}
		names = append(names, nf.Names...)
	}

	out, err := svc.pipeline.Aggregate(ctx, names)
	if errors.Is(err, trials.ErrNoNames) {
		return fmt.Errorf("provide drug names as arguments, --file or --drug")
	}
	if err != nil {
		return err
	}

	prepared, _ := trials.PrepareNames(names, svc.pipeline.MaxNames())
	recordRun(ctx, svc.cfg.History, types.RunRecord{
		Kind:          types.RunTrials,
		Query:         strings.Join(prepared, ", "),
		NamesSearched: out.Stats.TotalSearched,
		TrialsFound:   out.Stats.TotalUniqueTrials,
		ErrorCount:    len(out.Errors),
		WasTruncated:  out.Stats.WasTruncated,
	})

	if jsonOutput {
		return trials.FormatJSON(out, os.Stdout)
	}
	trials.FormatTable(out, os.Stdout)
	return nil
}

func runDrugTrials(ctx context.Context, svc *services, drug string, jsonOutput bool) error {
	res, err := svc.resolver.Resolve(ctx, drug)
	if err != nil {
		return err
	}
	result, err := svc.pipeline.AggregateDrug(ctx, res)
	if err != nil {
		return err
	}

	recordRun(ctx, svc.cfg.History, types.RunRecord{
		Kind:          types.RunDrug,
		Query:         res.Query,
		NamesSearched: result.Summary.NamesSearched,
		TrialsFound:   result.Summary.TrialsFound,
		ErrorCount:    len(result.Errors),
		WasTruncated:  result.Summary.WasTruncated,
	})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := trials.Output{
		Trials: result.Trials,
		Errors: result.Errors,
		Stats: types.TrialStats{
			TotalProvided:     len(trials.SearchNames(res)),
			TotalSearched:     result.Summary.NamesSearched,
			WasTruncated:      result.Summary.WasTruncated,
			TotalUniqueTrials: result.Summary.TrialsFound,
		},
	}
	trials.FormatTable(out, os.Stdout)
	return nil
}

// recordRun stores run in history when enabled. Failures are logged only.
func recordRun(ctx context.Context, cfg types.HistoryConfig, run types.RunRecord) {
	store, err := openHistory(cfg)
	if err != nil {
		slog.Warn("opening history failed", "error", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.Record(context.WithoutCancel(ctx), run); err != nil {
		slog.Warn("recording run failed", "error", err)
	}
}

func init() {
	trialsCmd.Flags().String("file", "", "YAML name file written by resolve --save")
	trialsCmd.Flags().String("drug", "", "resolve this drug name first and search every candidate")
	trialsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(trialsCmd)
}
