package benford

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verafin/digitlens/internal/common"
	"github.com/verafin/digitlens/internal/model"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.Analyze(context.Background(), nil, Options{})
	require.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestAnalyzeAllRecordsMalformed(t *testing.T) {
	analyzer := NewAnalyzer()
	txns := []model.Transaction{{Amount: 0}, {Amount: -12.50}}
	_, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	txns := vendorTxns("Acme Corp", 2500, 2500, 2500, 2500, 2500)
	txns = append(txns, vendorTxns("Varied Co",
		112.34, 13.57, 192.01, 24.99, 31.20, 47.83, 56.12, 68.90, 159.95, 210.47)...)

	analyzer := NewAnalyzer()
	first, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second), "same input must produce identical output")
}

func TestAnalyzeUniformDigitsEndToEnd(t *testing.T) {
	// One transaction per leading digit: 100, 200, ..., 900.
	txns := make([]model.Transaction, 0, 9)
	for i := 1; i <= 9; i++ {
		txns = append(txns, model.Transaction{Amount: float64(i) * 100})
	}

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	assert.Equal(t, 9, result.TotalTransactions)
	require.Len(t, result.DigitFrequencies, 9)
	for _, df := range result.DigitFrequencies {
		assert.Equal(t, 1, df.Count)
		assert.InDelta(t, 100.0/9, df.Observed, 1e-9)
	}
	// Digit 1 is expected at ~30.1%; observing 11.1% leaves ~19 points.
	assert.InDelta(t, 19.0, result.DigitFrequencies[0].Deviation, 0.2)

	assert.GreaterOrEqual(t, result.Assessment.Order(), model.AssessmentSuspicious.Order())
	assert.Greater(t, result.ChiSquare, 0.0)
	assert.Greater(t, result.MAD, MADSuspiciousMax)

	// Nine transactions sit below the hard sample floor.
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "at least 10")
}

func TestAnalyzeBenfordConformingDataset(t *testing.T) {
	txns := make([]model.Transaction, 0, 1000)
	for i := 0; i < 1000; i++ {
		txns = append(txns, model.Transaction{Amount: 100 * math.Pow(10, float64(i)/1000)})
	}

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	assert.Equal(t, model.AssessmentCompliant, result.Assessment)
	assert.Equal(t, model.RiskLow, result.RiskLevel)
	assert.Less(t, result.MAD, MADCompliantMax)
	assert.Empty(t, result.Warnings)
}

func TestAnalyzeExcludesMalformedRecordsWithWarning(t *testing.T) {
	txns := make([]model.Transaction, 0, 1001)
	for i := 0; i < 1000; i++ {
		txns = append(txns, model.Transaction{Amount: 100 * math.Pow(10, float64(i)/1000)})
	}
	txns = append(txns, model.Transaction{Amount: -99}) // contract violation

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1000, result.TotalTransactions)
	assert.Equal(t, 1, result.SkippedRecords)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "excluded")
}

func TestAnalyzeSmallSampleWarning(t *testing.T) {
	txns := make([]model.Transaction, 0, 50)
	for i := 0; i < 50; i++ {
		txns = append(txns, model.Transaction{Amount: 100 * math.Pow(10, float64(i)/50)})
	}

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "reliability floor")
}

func TestAnalyzeUpstreamDropWarning(t *testing.T) {
	txns := make([]model.Transaction, 0, 100)
	for i := 0; i < 100; i++ {
		txns = append(txns, model.Transaction{Amount: 100 * math.Pow(10, float64(i)/100)})
	}

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{DroppedUpstream: 100})
	require.NoError(t, err)

	var found bool
	for _, w := range result.Warnings {
		if strings.Contains(w, "removed during cleaning") {
			found = true
		}
	}
	assert.True(t, found, "expected an upstream-drop warning, got %v", result.Warnings)
}

func TestAnalyzeVendorAndFlagIntegration(t *testing.T) {
	// A vendor submitting five identical transactions must surface both in
	// the vendor analyses and in the flagged list.
	txns := vendorTxns("Acme Corp", 2500, 2500, 2500, 2500, 2500)
	txns = append(txns, vendorTxns("Plain Co",
		13.11, 27.40, 31.99, 45.02, 52.80, 66.13, 71.25, 89.90, 104.60, 118.75)...)

	analyzer := NewAnalyzer()
	result, err := analyzer.Analyze(context.Background(), txns, Options{})
	require.NoError(t, err)
	require.NoError(t, result.Validate())

	var acme *VendorAnalysis
	for i := range result.SuspiciousVendors {
		if result.SuspiciousVendors[i].Vendor == "Acme Corp" {
			acme = &result.SuspiciousVendors[i]
		}
	}
	require.NotNil(t, acme)
	var hasDup bool
	for _, p := range acme.Patterns {
		if p.Kind == PatternDuplicateAmounts {
			hasDup = true
		}
	}
	assert.True(t, hasDup, "Acme Corp should carry a duplicate-amounts pattern")

	acmeFlags := 0
	for _, f := range result.FlaggedTransactions {
		if f.Vendor == "Acme Corp" {
			acmeFlags++
			assert.Contains(t, f.Reason, "duplicate amount")
		}
	}
	assert.Equal(t, 5, acmeFlags, "every duplicate instance is flagged")
}

func TestAnalyzeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewAnalyzer()
	_, err := analyzer.Analyze(ctx, vendorTxns("v", 1, 2, 3), Options{})
	require.ErrorIs(t, err, context.Canceled)
}
