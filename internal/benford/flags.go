package benford

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verafin/digitlens/internal/model"
)

// Per-transaction heuristic constants.
const (
	// RoundAmountFloor is the materiality floor below which round amounts
	// are not flagged; small round payments are routine.
	RoundAmountFloor = 500.0

	// OutlierMADMultiplier is the boundary, in multiples of the median
	// absolute deviation of log10 amounts, beyond which an amount counts as
	// a statistical outlier.
	OutlierMADMultiplier = 3.0

	// DuplicateFlagCount is how many identical vendor amounts trigger the
	// duplicate heuristic at high risk.
	DuplicateFlagCount = 3
	// DuplicateCriticalCount escalates the duplicate heuristic to critical.
	DuplicateCriticalCount = 5
)

// roundUnits are checked largest first so the reason names the biggest unit
// the amount divides evenly into.
var roundUnits = []float64{1000, 500, 100}

type vendorAmount struct {
	vendor string
	cents  int64
}

// FlagTransactions evaluates every transaction against the standalone anomaly
// heuristics (round amounts, statistical outliers, duplicated vendor amounts)
// and returns the ones that triggered at least one, in input order. The risk
// level is the maximum across triggered heuristics and the reason concatenates
// every explanation; nothing is ever flagged at low risk.
func FlagTransactions(txns []model.Transaction) []FlaggedTransaction {
	if len(txns) == 0 {
		return nil
	}

	medianLog, madLog := logAmountSpread(txns)

	duplicates := make(map[vendorAmount]int)
	for _, t := range txns {
		if t.Vendor == "" {
			continue
		}
		duplicates[vendorAmount{t.Vendor, amountCents(t.Amount)}]++
	}

	var flagged []FlaggedTransaction
	for i, t := range txns {
		digit, err := LeadingDigit(t.Amount)
		if err != nil {
			continue
		}

		var reasons []string
		var risk model.RiskLevel

		if t.Amount >= RoundAmountFloor {
			for _, unit := range roundUnits {
				if isMultipleOf(t.Amount, unit) {
					reasons = append(reasons, fmt.Sprintf("round amount: exact multiple of %.0f", unit))
					risk = model.MaxRiskLevel(risk, model.RiskMedium)
					break
				}
			}
		}

		if madLog > 0 && math.Abs(math.Log10(t.Amount)-medianLog) > OutlierMADMultiplier*madLog {
			reasons = append(reasons, fmt.Sprintf("extreme amount: %.2f is a statistical outlier for this dataset", t.Amount))
			risk = model.MaxRiskLevel(risk, model.RiskHigh)
		}

		if t.Vendor != "" {
			if n := duplicates[vendorAmount{t.Vendor, amountCents(t.Amount)}]; n >= DuplicateFlagCount {
				level := model.RiskHigh
				if n >= DuplicateCriticalCount {
					level = model.RiskCritical
				}
				reasons = append(reasons, fmt.Sprintf("duplicate amount: %.2f appears %d times for vendor %q", t.Amount, n, t.Vendor))
				risk = model.MaxRiskLevel(risk, level)
			}
		}

		if len(reasons) == 0 {
			continue
		}

		flagged = append(flagged, FlaggedTransaction{
			Index:        i,
			ID:           t.ID,
			Vendor:       t.Vendor,
			Amount:       t.Amount,
			LeadingDigit: digit,
			Reason:       strings.Join(reasons, "; "),
			RiskLevel:    risk,
		})
	}

	return flagged
}

// logAmountSpread returns the median and the median absolute deviation of the
// dataset's log10 amounts. A zero deviation (all amounts equal) disables the
// outlier heuristic.
func logAmountSpread(txns []model.Transaction) (median, mad float64) {
	logs := make([]float64, 0, len(txns))
	for _, t := range txns {
		if t.Amount > 0 {
			logs = append(logs, math.Log10(t.Amount))
		}
	}
	if len(logs) == 0 {
		return 0, 0
	}

	median = medianOf(logs)

	deviations := make([]float64, len(logs))
	for i, l := range logs {
		deviations[i] = math.Abs(l - median)
	}
	mad = medianOf(deviations)

	return median, mad
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// amountCents converts an amount to integer cents so exact-equality checks do
// not depend on float representation.
func amountCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// isMultipleOf reports whether amount divides evenly into unit, compared in
// cents.
func isMultipleOf(amount, unit float64) bool {
	unitCents := int64(math.Round(unit * 100))
	if unitCents == 0 {
		return false
	}
	return amountCents(amount)%unitCents == 0
}
