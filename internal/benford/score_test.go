package benford

import (
	"math"
	"testing"
)

// benfordDigits generates n leading digits that track the Benford
// distribution as closely as integer counts allow, by sampling amounts with
// log-uniform mantissas.
func benfordDigits(n int) []int {
	digits := make([]int, 0, n)
	for i := 0; i < n; i++ {
		amount := 100 * math.Pow(10, float64(i)/float64(n))
		d, err := LeadingDigit(amount)
		if err != nil {
			panic(err)
		}
		digits = append(digits, d)
	}
	return digits
}

// uniformDigits returns reps copies of each digit 1-9.
func uniformDigits(reps int) []int {
	digits := make([]int, 0, 9*reps)
	for r := 0; r < reps; r++ {
		for d := 1; d <= 9; d++ {
			digits = append(digits, d)
		}
	}
	return digits
}

func TestMADNearZeroForBenfordConformingData(t *testing.T) {
	ft := NewFrequencyTable(benfordDigits(1000))
	mad := MAD(ft)
	if mad >= MADCompliantMax {
		t.Errorf("MAD = %v for Benford-conforming data, want < %v", mad, MADCompliantMax)
	}
}

func TestMADLargeForUniformDigits(t *testing.T) {
	ft := NewFrequencyTable(uniformDigits(1))
	mad := MAD(ft)

	// Uniform leading digits sit far outside the Nigrini bands; the exact
	// value is ~0.0597 regardless of repetition count.
	if mad <= MADSuspiciousMax {
		t.Errorf("MAD = %v for uniform digits, want > %v", mad, MADSuspiciousMax)
	}
	if math.Abs(mad-0.0597) > 0.001 {
		t.Errorf("MAD = %v for uniform digits, want ~0.0597", mad)
	}
}

func TestChiSquareScalesWithSampleSize(t *testing.T) {
	small := ChiSquare(NewFrequencyTable(uniformDigits(1)))
	large := ChiSquare(NewFrequencyTable(uniformDigits(10)))

	// Nine uniform digits diverge in shape but carry little statistical
	// weight; the same shape over 90 samples is decisive.
	if small <= 0 {
		t.Errorf("ChiSquare = %v for 9 uniform digits, want > 0", small)
	}
	if small > ChiSquareCritical {
		t.Errorf("ChiSquare = %v for 9 uniform digits, want below critical %v", small, ChiSquareCritical)
	}
	if large <= ChiSquareCritical {
		t.Errorf("ChiSquare = %v for 90 uniform digits, want above critical %v", large, ChiSquareCritical)
	}
	if math.Abs(large-10*small) > 1e-6 {
		t.Errorf("ChiSquare should scale linearly with repetitions: 9 digits = %v, 90 digits = %v", small, large)
	}
}

func TestScoresZeroOnEmptyTable(t *testing.T) {
	ft := &FrequencyTable{}
	if got := MAD(ft); got != 0 {
		t.Errorf("MAD(empty) = %v, want 0", got)
	}
	if got := ChiSquare(ft); got != 0 {
		t.Errorf("ChiSquare(empty) = %v, want 0", got)
	}
}
