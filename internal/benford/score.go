package benford

import "math"

// Chi-square goodness of fit over nine digits has eight degrees of freedom;
// 15.51 is the conventional critical value at 95% confidence.
const (
	DegreesOfFreedom  = 8
	ChiSquareCritical = 15.51
)

// MAD computes the mean absolute deviation between the observed and expected
// leading-digit distributions, on the fractional scale (the conventional
// 0-0.09 range used by Benford practice).
func MAD(ft *FrequencyTable) float64 {
	if ft.Total() == 0 {
		return 0
	}
	sum := 0.0
	for d := 1; d <= 9; d++ {
		sum += math.Abs(ft.ObservedFraction(d) - ExpectedFraction(d))
	}
	return sum / 9
}

// ChiSquare computes the chi-square goodness-of-fit statistic between the
// observed counts and the counts the Benford distribution predicts for the
// same total.
func ChiSquare(ft *FrequencyTable) float64 {
	total := float64(ft.Total())
	if total == 0 {
		return 0
	}
	sum := 0.0
	for d := 1; d <= 9; d++ {
		expected := ExpectedFraction(d) * total
		diff := float64(ft.Count(d)) - expected
		sum += diff * diff / expected
	}
	return sum
}
