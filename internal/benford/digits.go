// Package benford implements leading-digit analysis of transaction amounts:
// digit frequency extraction, deviation scoring against the Benford
// distribution, risk classification, vendor-level analysis and per-transaction
// anomaly flagging. The package is pure computation; it performs no I/O and
// holds no global mutable state, so it is safe to invoke concurrently.
package benford

import (
	"fmt"
	"math"

	"github.com/verafin/digitlens/internal/common"
)

// expectedFraction holds the theoretical Benford probability for each leading
// digit 1-9, computed once from the closed form log10(1 + 1/d). Index 0 is
// unused.
var expectedFraction = func() [10]float64 {
	var table [10]float64
	for d := 1; d <= 9; d++ {
		table[d] = math.Log10(1 + 1/float64(d))
	}
	return table
}()

// ExpectedFraction returns the theoretical Benford probability of digit d
// (1-9) as a fraction. Out-of-range digits return 0.
func ExpectedFraction(d int) float64 {
	if d < 1 || d > 9 {
		return 0
	}
	return expectedFraction[d]
}

// ExpectedPercent returns the theoretical Benford probability of digit d
// (1-9) as a percentage.
func ExpectedPercent(d int) float64 {
	return ExpectedFraction(d) * 100
}

// LeadingDigit returns the first significant (non-zero) digit of amount,
// independent of magnitude or decimal placement: 0.0047 and 4700 both yield 4.
// Non-positive, NaN and infinite amounts violate the upstream cleaning
// contract and are reported as errors rather than guessed at.
func LeadingDigit(amount float64) (int, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidAmount, amount)
	}
	v := math.Abs(amount)
	if v <= 0 {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidAmount, amount)
	}

	// Scale into [1, 10) so the integer part is the leading digit.
	for v >= 10 {
		v /= 10
	}
	for v < 1 {
		v *= 10
	}

	return int(v), nil
}
