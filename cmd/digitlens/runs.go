package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verafin/digitlens/internal/cli"
	"github.com/verafin/digitlens/internal/storage"
)

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs [id]",
		Short: "List saved analysis runs",
		Long: `List previously saved analysis runs, newest first, or show one run
in detail by ID.

Runs are saved with 'digitlens analyze --save'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRuns,
	}
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if len(args) == 1 {
		run, err := store.GetRun(ctx, args[0])
		if err != nil {
			return err
		}
		printRun(run)
		return nil
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println(cli.FormatInfo("No saved runs. Use 'digitlens analyze --save' to create one."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Saved Analysis Runs"))

	header := fmt.Sprintf("%-36s %-20s %8s %8s %10s %-18s %-8s %7s %6s",
		"ID", "Created", "Txns", "MAD", "Chi-sq", "Assessment", "Risk", "Vendors", "Flags")
	fmt.Println(cli.TableHeaderStyle.Render(header))
	fmt.Println(cli.SubtleStyle.Render(strings.Repeat("─", len(header))))

	for _, run := range runs {
		fmt.Printf("%-36s %-20s %8d %8.4f %10.2f %-18s %-8s %7d %6d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.TotalTransactions,
			run.MAD,
			run.ChiSquare,
			run.Assessment,
			run.RiskLevel,
			run.VendorCount,
			run.FlagCount)
	}

	return nil
}

func printRun(run *storage.RunSummary) {
	fmt.Println(cli.FormatTitle("Analysis Run " + run.ID))
	fmt.Printf("Created:      %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Transactions: %d\n", run.TotalTransactions)
	fmt.Printf("MAD:          %.4f\n", run.MAD)
	fmt.Printf("Chi-square:   %.2f\n", run.ChiSquare)
	fmt.Printf("Assessment:   %s\n", run.Assessment)
	fmt.Printf("Risk:         %s\n", run.RiskLevel)
	fmt.Printf("Vendors:      %d\n", run.VendorCount)
	fmt.Printf("Flags:        %d\n", run.FlagCount)
}
