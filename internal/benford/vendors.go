package benford

import (
	"sort"

	"github.com/verafin/digitlens/internal/model"
)

// Vendor-level analysis constants. Values are fixed and documented here so
// tests can target them precisely.
const (
	// MinVendorTransactions is the smallest vendor group worth analyzing;
	// below it the per-vendor statistics are meaningless.
	MinVendorTransactions = 5

	// RoundNumberUnit is the divisor used by the round-numbers pattern.
	RoundNumberUnit = 100.0
	// RoundNumberShareThreshold is the share of round amounts above which
	// the round-numbers pattern fires.
	RoundNumberShareThreshold = 0.40

	// HighDigitShareThreshold is the combined observed share of leading
	// digits 7-9 above which the high-digit pattern fires. Benford expects
	// roughly 14.9% combined.
	HighDigitShareThreshold = 0.30

	// DominanceMultiplier is how many times a digit's observed share must
	// exceed its own expectation to count as dominant.
	DominanceMultiplier = 3.0
)

// AnalyzeVendors groups transactions by vendor (case-sensitive exact match),
// scores each group that meets MinVendorTransactions, and returns the
// analyses sorted by descending risk, then descending transaction count.
// Transactions without a vendor are excluded from vendor-level analysis.
func AnalyzeVendors(txns []model.Transaction) []VendorAnalysis {
	groups := make(map[string][]model.Transaction)
	for _, t := range txns {
		if t.Vendor == "" {
			continue
		}
		groups[t.Vendor] = append(groups[t.Vendor], t)
	}

	names := make([]string, 0, len(groups))
	for name, group := range groups {
		if len(group) >= MinVendorTransactions {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	analyses := make([]VendorAnalysis, 0, len(names))
	for _, name := range names {
		analyses = append(analyses, analyzeVendor(name, groups[name]))
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].RiskLevel.Order() != analyses[j].RiskLevel.Order() {
			return analyses[i].RiskLevel.Order() > analyses[j].RiskLevel.Order()
		}
		return analyses[i].TransactionCount > analyses[j].TransactionCount
	})

	return analyses
}

func analyzeVendor(name string, group []model.Transaction) VendorAnalysis {
	ft := &FrequencyTable{}
	amounts := make([]float64, 0, len(group))
	for _, t := range group {
		digit, err := LeadingDigit(t.Amount)
		if err != nil {
			continue // malformed records are excluded upstream
		}
		ft.Add(digit)
		amounts = append(amounts, t.Amount)
	}

	mad := MAD(ft)
	chi := ChiSquare(ft)
	assessment, risk := Classify(mad, chi)
	patterns := detectVendorPatterns(amounts, ft)

	// A vendor exhibiting any suspicious pattern is never reported below
	// medium risk, even when its aggregate MAD looks clean.
	if len(patterns) > 0 && risk == model.RiskLow {
		risk = model.RiskMedium
	}

	counts := make(map[int]int, 9)
	for d := 1; d <= 9; d++ {
		if c := ft.Count(d); c > 0 {
			counts[d] = c
		}
	}

	return VendorAnalysis{
		Vendor:           name,
		TransactionCount: len(group),
		MAD:              mad,
		ChiSquare:        chi,
		Assessment:       assessment,
		RiskLevel:        risk,
		Patterns:         patterns,
		DigitCounts:      counts,
	}
}

// detectVendorPatterns evaluates the fixed suspicious-pattern heuristics over
// one vendor's amounts. Findings are appended in a fixed order so results are
// deterministic.
func detectVendorPatterns(amounts []float64, ft *FrequencyTable) []SuspiciousPattern {
	if len(amounts) == 0 {
		return nil
	}

	var patterns []SuspiciousPattern

	round := 0
	for _, a := range amounts {
		if isMultipleOf(a, RoundNumberUnit) {
			round++
		}
	}
	if share := float64(round) / float64(len(amounts)); share >= RoundNumberShareThreshold {
		patterns = append(patterns, SuspiciousPattern{
			Kind:      PatternRoundNumbers,
			Observed:  share,
			Threshold: RoundNumberShareThreshold,
		})
	}

	highShare := ft.ObservedFraction(7) + ft.ObservedFraction(8) + ft.ObservedFraction(9)
	if highShare >= HighDigitShareThreshold {
		patterns = append(patterns, SuspiciousPattern{
			Kind:      PatternHighDigits,
			Observed:  highShare,
			Threshold: HighDigitShareThreshold,
		})
	}

	// Report the single most dominant digit, if any digit qualifies.
	bestDigit, bestRatio := 0, 0.0
	for d := 1; d <= 9; d++ {
		observed := ft.ObservedFraction(d)
		if ratio := observed / ExpectedFraction(d); ratio >= DominanceMultiplier && ratio > bestRatio {
			bestDigit, bestRatio = d, ratio
		}
	}
	if bestDigit != 0 {
		patterns = append(patterns, SuspiciousPattern{
			Kind:      PatternDigitDominance,
			Digit:     bestDigit,
			Observed:  ft.ObservedFraction(bestDigit),
			Threshold: DominanceMultiplier * ExpectedFraction(bestDigit),
		})
	}

	if maxDup := maxDuplicateCount(amounts); maxDup >= DuplicateFlagCount {
		patterns = append(patterns, SuspiciousPattern{
			Kind:      PatternDuplicateAmounts,
			Observed:  float64(maxDup),
			Threshold: DuplicateFlagCount,
		})
	}

	return patterns
}

// maxDuplicateCount returns how often the most repeated exact amount occurs.
func maxDuplicateCount(amounts []float64) int {
	counts := make(map[int64]int, len(amounts))
	best := 0
	for _, a := range amounts {
		c := counts[amountCents(a)] + 1
		counts[amountCents(a)] = c
		if c > best {
			best = c
		}
	}
	return best
}
