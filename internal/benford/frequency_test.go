package benford

import (
	"math"
	"testing"
)

func TestFrequencyTableCountsAndPercentages(t *testing.T) {
	digits := []int{1, 1, 1, 2, 2, 3, 9}
	ft := NewFrequencyTable(digits)

	if ft.Total() != 7 {
		t.Fatalf("Total() = %d, want 7", ft.Total())
	}
	if ft.Count(1) != 3 || ft.Count(2) != 2 || ft.Count(3) != 1 || ft.Count(9) != 1 {
		t.Errorf("unexpected counts: 1=%d 2=%d 3=%d 9=%d", ft.Count(1), ft.Count(2), ft.Count(3), ft.Count(9))
	}

	freqs := ft.Frequencies()
	if len(freqs) != 9 {
		t.Fatalf("Frequencies() returned %d entries, want 9", len(freqs))
	}

	countSum := 0
	percentSum := 0.0
	for _, f := range freqs {
		countSum += f.Count
		percentSum += f.Observed
		if f.Deviation < 0 {
			t.Errorf("digit %d deviation %v is negative", f.Digit, f.Deviation)
		}
	}
	if countSum != ft.Total() {
		t.Errorf("counts sum to %d, want %d", countSum, ft.Total())
	}
	if math.Abs(percentSum-100) > 1e-9 {
		t.Errorf("observed percentages sum to %v, want 100", percentSum)
	}
}

func TestFrequencyTableIgnoresOutOfRangeDigits(t *testing.T) {
	ft := NewFrequencyTable([]int{0, 1, 10, -3, 5})
	if ft.Total() != 2 {
		t.Errorf("Total() = %d, want 2", ft.Total())
	}
}

func TestFrequencyTableEmpty(t *testing.T) {
	ft := &FrequencyTable{}
	for _, f := range ft.Frequencies() {
		if f.Count != 0 || f.Observed != 0 {
			t.Errorf("digit %d: count=%d observed=%v, want zeros", f.Digit, f.Count, f.Observed)
		}
		if f.Expected == 0 {
			t.Errorf("digit %d: expected percentage missing", f.Digit)
		}
	}
}
