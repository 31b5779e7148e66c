package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/verafin/digitlens/internal/cli"
	"github.com/verafin/digitlens/internal/ingest"
	"github.com/verafin/digitlens/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from CSV, OFX or QFX files",
		Long: `Import financial transactions from files exported from your bank or
accounting system. Supported formats: CSV, OFX, QFX.

Examples:
  # Import a single file
  digitlens import ~/Downloads/ledger_2025.csv

  # Import several exports at once
  digitlens import ~/Downloads/chase_*.qfx ~/exports/ap_ledger.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Parse and report without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	files, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing transaction files", "file_count", len(files), "dry_run", dryRun)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing files..."),
	)

	var all []model.Transaction
	dropped := 0
	for _, path := range files {
		result, err := ingest.ParseFile(ctx, path)
		_ = bar.Add(1)
		if err != nil {
			slog.Error("Failed to parse file", "file", filepath.Base(path), "error", err)
			continue
		}

		all = append(all, result.Transactions...)
		dropped += result.Dropped
		slog.Info("Parsed file",
			"file", filepath.Base(path),
			"transactions", len(result.Transactions),
			"dropped", result.Dropped)
	}
	_ = bar.Finish()

	if len(all) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file"))
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf(
			"Dry run complete: %d transactions parsed, %d rows dropped, nothing saved",
			len(all), dropped)))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.SaveTransactions(ctx, all)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Import complete: %d new transactions, %d duplicates skipped, %d rows dropped",
		inserted, len(all)-inserted, dropped)))

	return nil
}

// expandArgs resolves glob patterns and plain paths into a file list.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
