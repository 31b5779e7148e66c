package benford

import (
	"fmt"

	"github.com/verafin/digitlens/internal/model"
)

// DigitFrequency describes how often one leading digit was observed compared
// to its theoretical Benford frequency. Observed, Expected and Deviation are
// percentages.
type DigitFrequency struct {
	Digit     int     `json:"digit"`
	Count     int     `json:"count"`
	Observed  float64 `json:"observed"`
	Expected  float64 `json:"expected"`
	Deviation float64 `json:"deviation"`
}

// PatternKind identifies a vendor-level suspicious pattern heuristic.
type PatternKind string

const (
	// PatternRoundNumbers fires when an excessive share of a vendor's
	// amounts are exact multiples of the round-number unit.
	PatternRoundNumbers PatternKind = "round_numbers"
	// PatternHighDigits fires when leading digits 7-9 appear far more often
	// than their combined Benford expectation (~14.9%).
	PatternHighDigits PatternKind = "high_digit_concentration"
	// PatternDigitDominance fires when a single leading digit's observed
	// share far exceeds its own expectation.
	PatternDigitDominance PatternKind = "single_digit_dominance"
	// PatternDuplicateAmounts fires when the vendor repeats the exact same
	// amount more often than chance predicts.
	PatternDuplicateAmounts PatternKind = "duplicate_amounts"
)

// SuspiciousPattern is one vendor-level heuristic finding. It carries the
// observed value and the threshold that tripped it; human-readable text is
// rendered only at the presentation boundary via Describe.
type SuspiciousPattern struct {
	Kind      PatternKind `json:"kind"`
	Digit     int         `json:"digit,omitempty"` // set for single_digit_dominance
	Observed  float64     `json:"observed"`
	Threshold float64     `json:"threshold"`
}

// Describe renders the pattern as human-readable text.
func (p SuspiciousPattern) Describe() string {
	switch p.Kind {
	case PatternRoundNumbers:
		return fmt.Sprintf("excessive round numbers: %.0f%% of amounts are multiples of %.0f (threshold %.0f%%)",
			p.Observed*100, RoundNumberUnit, p.Threshold*100)
	case PatternHighDigits:
		expected := ExpectedPercent(7) + ExpectedPercent(8) + ExpectedPercent(9)
		return fmt.Sprintf("high-digit concentration: leading digits 7-9 make up %.0f%% of amounts vs. %.1f%% expected",
			p.Observed*100, expected)
	case PatternDigitDominance:
		return fmt.Sprintf("single-digit dominance: leading digit %d appears in %.0f%% of amounts vs. %.1f%% expected",
			p.Digit, p.Observed*100, ExpectedPercent(p.Digit))
	case PatternDuplicateAmounts:
		return fmt.Sprintf("duplicate amounts: the most repeated amount occurs %.0f times", p.Observed)
	default:
		return string(p.Kind)
	}
}

// VendorAnalysis holds the Benford statistics and heuristic findings for one
// vendor. Only vendors meeting MinVendorTransactions are analyzed.
type VendorAnalysis struct {
	Vendor           string              `json:"vendor"`
	TransactionCount int                 `json:"transaction_count"`
	MAD              float64             `json:"mad"`
	ChiSquare        float64             `json:"chi_square"`
	Assessment       model.Assessment    `json:"assessment"`
	RiskLevel        model.RiskLevel     `json:"risk_level"`
	Patterns         []SuspiciousPattern `json:"patterns,omitempty"`
	DigitCounts      map[int]int         `json:"digit_counts"`
}

// FlaggedTransaction is a single transaction surfaced by one or more anomaly
// heuristics. RiskLevel is always medium or worse; transactions that trigger
// nothing are never emitted.
type FlaggedTransaction struct {
	Index        int             `json:"index"` // position in the analyzed input
	ID           string          `json:"id,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	Amount       float64         `json:"amount"`
	LeadingDigit int             `json:"leading_digit"`
	Reason       string          `json:"reason"`
	RiskLevel    model.RiskLevel `json:"risk_level"`
}

// Result is the root output of one analysis run. It is constructed once by
// Analyzer.Analyze and never mutated afterwards; rerunning on the same input
// produces an identical value.
type Result struct {
	TotalTransactions   int                  `json:"total_transactions"`
	SkippedRecords      int                  `json:"skipped_records,omitempty"`
	DigitFrequencies    []DigitFrequency     `json:"digit_frequencies"`
	MAD                 float64              `json:"mad"`
	ChiSquare           float64              `json:"chi_square"`
	Assessment          model.Assessment     `json:"assessment"`
	RiskLevel           model.RiskLevel      `json:"risk_level"`
	SuspiciousVendors   []VendorAnalysis     `json:"suspicious_vendors"`
	FlaggedTransactions []FlaggedTransaction `json:"flagged_transactions"`
	Warnings            []string             `json:"warnings,omitempty"`
}

// Validate checks the internal consistency of a result: nine digit entries,
// counts summing to the total, percentages summing to 100, and no flagged
// transaction below medium risk.
func (r *Result) Validate() error {
	if len(r.DigitFrequencies) != 9 {
		return fmt.Errorf("expected 9 digit frequencies, got %d", len(r.DigitFrequencies))
	}
	countSum := 0
	percentSum := 0.0
	for _, df := range r.DigitFrequencies {
		countSum += df.Count
		percentSum += df.Observed
	}
	if countSum != r.TotalTransactions {
		return fmt.Errorf("digit counts sum to %d, want %d", countSum, r.TotalTransactions)
	}
	if r.TotalTransactions > 0 && (percentSum < 99.9 || percentSum > 100.1) {
		return fmt.Errorf("observed percentages sum to %.4f, want 100", percentSum)
	}
	for _, ft := range r.FlaggedTransactions {
		if ft.RiskLevel.Order() < model.RiskMedium.Order() {
			return fmt.Errorf("flagged transaction %d has risk %q below medium", ft.Index, ft.RiskLevel)
		}
		if ft.Reason == "" {
			return fmt.Errorf("flagged transaction %d has no reason", ft.Index)
		}
	}
	return nil
}
