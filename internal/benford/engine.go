package benford

import (
	"context"
	"fmt"

	"github.com/verafin/digitlens/internal/common"
	"github.com/verafin/digitlens/internal/model"
)

// Sample-size floors for the deviation statistics.
const (
	// MinSampleSize is the hard floor below which the statistics carry
	// almost no signal. Analysis still runs; a warning is attached.
	MinSampleSize = 10
	// ReliableSampleSize is the practical floor for a trustworthy signal.
	ReliableSampleSize = 100

	// UpstreamDropWarnRatio is the share of rows removed during upstream
	// cleaning above which a data-quality warning is attached.
	UpstreamDropWarnRatio = 0.25
)

// Options configures one analysis run.
type Options struct {
	// DroppedUpstream is the number of rows the cleaning collaborator
	// removed before handing transactions to the engine. Used only for the
	// data-quality warning.
	DroppedUpstream int
}

// Analyzer assembles the full Benford analysis: dataset-level scoring, vendor
// analysis and transaction flagging. It is stateless; one instance may be
// shared across goroutines.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the complete analysis over the given transactions and returns
// an immutable result. The only fatal condition is an empty amount list;
// records violating the positivity contract are excluded and reported as a
// warning instead of crashing the run. The result is a deterministic function
// of the input.
func (a *Analyzer) Analyze(ctx context.Context, txns []model.Transaction, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, common.ErrNoTransactions
	}

	ft := &FrequencyTable{}
	valid := make([]model.Transaction, 0, len(txns))
	skipped := 0
	for _, t := range txns {
		digit, err := LeadingDigit(t.Amount)
		if err != nil {
			skipped++
			continue
		}
		ft.Add(digit)
		valid = append(valid, t)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("all %d records have invalid amounts: %w", len(txns), common.ErrNoTransactions)
	}

	mad := MAD(ft)
	chi := ChiSquare(ft)
	assessment, risk := Classify(mad, chi)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		TotalTransactions:   len(valid),
		SkippedRecords:      skipped,
		DigitFrequencies:    ft.Frequencies(),
		MAD:                 mad,
		ChiSquare:           chi,
		Assessment:          assessment,
		RiskLevel:           risk,
		SuspiciousVendors:   AnalyzeVendors(valid),
		FlaggedTransactions: FlagTransactions(valid),
		Warnings:            buildWarnings(len(valid), skipped, opts.DroppedUpstream),
	}

	return result, nil
}

// buildWarnings collects the dataset-quality warnings in a fixed order.
func buildWarnings(analyzed, skipped, droppedUpstream int) []string {
	var warnings []string

	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d record(s) with non-positive amounts were excluded; the upstream cleaning contract was not honored", skipped))
	}
	if analyzed < MinSampleSize {
		warnings = append(warnings, fmt.Sprintf(
			"only %d transactions analyzed; at least %d are needed for the statistics to carry any signal", analyzed, MinSampleSize))
	} else if analyzed < ReliableSampleSize {
		warnings = append(warnings, fmt.Sprintf(
			"sample size %d is below the reliability floor of %d; deviation statistics may be noisy", analyzed, ReliableSampleSize))
	}
	if droppedUpstream > 0 {
		total := analyzed + skipped + droppedUpstream
		if ratio := float64(droppedUpstream) / float64(total); ratio > UpstreamDropWarnRatio {
			warnings = append(warnings, fmt.Sprintf(
				"%.0f%% of input rows were removed during cleaning; results may not represent the full dataset", ratio*100))
		}
	}

	return warnings
}
