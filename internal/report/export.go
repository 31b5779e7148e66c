package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verafin/digitlens/internal/benford"
)

// WriteJSON writes the full result as indented JSON.
func WriteJSON(w io.Writer, result *benford.Result) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteCSV writes the result as CSV. The file carries three record types
// distinguished by the first column: digit rows, vendor rows and flag rows.
func WriteCSV(w io.Writer, result *benford.Result) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"record_type", "key", "count", "observed", "expected", "deviation", "assessment", "risk_level", "leading_digit", "detail"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := cw.Write([]string{
		"summary", "",
		strconv.Itoa(result.TotalTransactions),
		formatFloat(result.MAD),
		formatFloat(result.ChiSquare),
		"",
		string(result.Assessment),
		string(result.RiskLevel),
		"",
		strings.Join(result.Warnings, "; "),
	}); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}

	for _, df := range result.DigitFrequencies {
		if err := cw.Write([]string{
			"digit",
			strconv.Itoa(df.Digit),
			strconv.Itoa(df.Count),
			formatFloat(df.Observed),
			formatFloat(df.Expected),
			formatFloat(df.Deviation),
			"", "", "", "",
		}); err != nil {
			return fmt.Errorf("failed to write digit row: %w", err)
		}
	}

	for _, v := range result.SuspiciousVendors {
		patterns := make([]string, 0, len(v.Patterns))
		for _, p := range v.Patterns {
			patterns = append(patterns, p.Describe())
		}
		if err := cw.Write([]string{
			"vendor",
			v.Vendor,
			strconv.Itoa(v.TransactionCount),
			formatFloat(v.MAD),
			formatFloat(v.ChiSquare),
			"",
			string(v.Assessment),
			string(v.RiskLevel),
			"",
			strings.Join(patterns, "; "),
		}); err != nil {
			return fmt.Errorf("failed to write vendor row: %w", err)
		}
	}

	for _, ft := range result.FlaggedTransactions {
		if err := cw.Write([]string{
			"flag",
			ft.Vendor,
			"1",
			formatFloat(ft.Amount),
			"", "", "",
			string(ft.RiskLevel),
			strconv.Itoa(ft.LeadingDigit),
			ft.Reason,
		}); err != nil {
			return fmt.Errorf("failed to write flag row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
