package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verafin/digitlens/internal/benford"
	"github.com/verafin/digitlens/internal/model"
)

func sampleResult() *benford.Result {
	freqs := make([]benford.DigitFrequency, 0, 9)
	for d := 1; d <= 9; d++ {
		observed := 100.0 / 9
		freqs = append(freqs, benford.DigitFrequency{
			Digit:     d,
			Count:     10,
			Observed:  observed,
			Expected:  benford.ExpectedPercent(d),
			Deviation: math.Abs(observed - benford.ExpectedPercent(d)),
		})
	}
	return &benford.Result{
		TotalTransactions: 90,
		SkippedRecords:    2,
		DigitFrequencies:  freqs,
		MAD:               0.0597,
		ChiSquare:         46.1,
		Assessment:        model.AssessmentHighlySuspicious,
		RiskLevel:         model.RiskCritical,
		SuspiciousVendors: []benford.VendorAnalysis{
			{
				Vendor:           "Acme Corp",
				TransactionCount: 20,
				MAD:              0.041,
				ChiSquare:        19.8,
				Assessment:       model.AssessmentHighlySuspicious,
				RiskLevel:        model.RiskCritical,
				Patterns: []benford.SuspiciousPattern{
					{Kind: benford.PatternRoundNumbers, Observed: 0.85, Threshold: 0.40},
				},
			},
		},
		FlaggedTransactions: []benford.FlaggedTransaction{
			{Index: 4, Vendor: "Acme Corp", Amount: 2500, LeadingDigit: 2,
				Reason: "round amount (multiple of 500)", RiskLevel: model.RiskMedium},
		},
		Warnings: []string{"2 malformed records were excluded"},
	}
}

func newTestFormatter() *CLIFormatter {
	f := NewCLIFormatter()
	f.now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestFormatSummaryIncludesAllSections(t *testing.T) {
	out := newTestFormatter().FormatSummary(sampleResult())

	assert.Contains(t, out, "Leading-Digit Analysis Report")
	assert.Contains(t, out, "Analyzed: 90 transactions")
	assert.Contains(t, out, "(2 skipped)")
	assert.Contains(t, out, "2025-03-15T12:00:00Z")
	assert.Contains(t, out, "Assessment: highly-suspicious")
	assert.Contains(t, out, "Risk: critical")
	assert.Contains(t, out, "MAD: 0.0597")
	assert.Contains(t, out, "Chi-square: 46.10")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "excessive round numbers")
	assert.Contains(t, out, "round amount (multiple of 500)")
	assert.Contains(t, out, "2 malformed records were excluded")

	// Deviations are absolute values and render unsigned.
	assert.Contains(t, out, "19.0%")
	assert.NotContains(t, out, "+19.0%")
}

func TestFormatSummaryOmitsEmptySections(t *testing.T) {
	result := sampleResult()
	result.SuspiciousVendors = nil
	result.FlaggedTransactions = nil
	result.Warnings = nil

	out := newTestFormatter().FormatSummary(result)

	assert.NotContains(t, out, "Vendors Needing Review")
	assert.NotContains(t, out, "Flagged Transactions")
	assert.NotContains(t, out, "Warnings:")
}

func TestFormatSummaryNilResult(t *testing.T) {
	out := newTestFormatter().FormatSummary(nil)
	assert.Contains(t, out, "No analysis result available")
}

func TestFormatSummaryTruncatesLongFlagList(t *testing.T) {
	result := sampleResult()
	result.FlaggedTransactions = nil
	for i := 0; i < 20; i++ {
		result.FlaggedTransactions = append(result.FlaggedTransactions, benford.FlaggedTransaction{
			Index: i, Vendor: "Acme Corp", Amount: 2500, LeadingDigit: 2,
			Reason: "round amount", RiskLevel: model.RiskMedium,
		})
	}

	out := newTestFormatter().FormatSummary(result)
	assert.Contains(t, out, "Flagged Transactions (20)")
	assert.Contains(t, out, "... and 5 more")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 24))
	require.Equal(t, "a very long vendor na...", truncate("a very long vendor name here", 24))
}
