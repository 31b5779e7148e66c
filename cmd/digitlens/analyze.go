package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verafin/digitlens/internal/benford"
	"github.com/verafin/digitlens/internal/cli"
	"github.com/verafin/digitlens/internal/common"
	"github.com/verafin/digitlens/internal/ingest"
	"github.com/verafin/digitlens/internal/model"
	"github.com/verafin/digitlens/internal/report"
	"github.com/verafin/digitlens/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run leading-digit analysis",
		Long: `Analyze transaction amounts against the expected leading-digit
distribution and report deviation statistics, suspicious vendors and
individually flagged transactions.

With a file argument the file is parsed and analyzed directly. Without one,
all previously imported transactions are analyzed.

Examples:
  # Analyze a file without importing it
  digitlens analyze ~/exports/ap_ledger.csv

  # Analyze everything imported so far and save the run
  digitlens analyze --save

  # Machine-readable output
  digitlens analyze ~/exports/ap_ledger.csv --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("output", "o", "terminal", "output format (terminal, json, csv)")
	cmd.Flags().Bool("save", false, "Save the run for later review with 'digitlens runs'")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	ctx := cmd.Context()

	switch output {
	case "terminal", "json", "csv":
	default:
		return common.NewUserError(
			"Output must be one of: terminal, json, csv",
			fmt.Errorf("unknown output format: %s", output))
	}

	var store *storage.Store
	if len(args) == 0 || save {
		var err error
		store, err = initStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	var txns []model.Transaction
	dropped := 0

	if len(args) == 1 {
		parsed, err := ingest.ParseFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}
		txns = parsed.Transactions
		dropped = parsed.Dropped
	} else {
		var err error
		txns, err = store.GetTransactions(ctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
	}

	if len(txns) == 0 {
		return common.NewUserError(
			"No transactions to analyze. Import some with 'digitlens import' or pass a file.",
			common.ErrNoTransactions)
	}

	result, err := benford.NewAnalyzer().Analyze(ctx, txns, benford.Options{
		DroppedUpstream: dropped,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if save {
		runID, err := store.SaveRun(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		// Stdout may carry json/csv output; keep the confirmation off it.
		fmt.Fprintln(os.Stderr, cli.FormatSuccess("Saved analysis run "+runID))
	}

	switch output {
	case "json":
		return report.WriteJSON(os.Stdout, result)
	case "csv":
		return report.WriteCSV(os.Stdout, result)
	default:
		fmt.Println(report.NewCLIFormatter().FormatSummary(result))
		return nil
	}
}
