package benford

// FrequencyTable tallies leading-digit counts over a population of amounts.
type FrequencyTable struct {
	counts [10]int // index 1-9; 0 unused
	total  int
}

// NewFrequencyTable builds a table from already-extracted leading digits.
// Digits outside 1-9 are ignored; the extractor never produces them.
func NewFrequencyTable(digits []int) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, d := range digits {
		ft.Add(d)
	}
	return ft
}

// Add records one leading digit.
func (ft *FrequencyTable) Add(digit int) {
	if digit < 1 || digit > 9 {
		return
	}
	ft.counts[digit]++
	ft.total++
}

// Total returns the number of digits tallied.
func (ft *FrequencyTable) Total() int {
	return ft.total
}

// Count returns the observed count for digit d.
func (ft *FrequencyTable) Count(d int) int {
	if d < 1 || d > 9 {
		return 0
	}
	return ft.counts[d]
}

// ObservedFraction returns the observed share of digit d as a fraction.
func (ft *FrequencyTable) ObservedFraction(d int) float64 {
	if ft.total == 0 {
		return 0
	}
	return float64(ft.Count(d)) / float64(ft.total)
}

// Frequencies expands the table into the nine DigitFrequency entries compared
// against the theoretical Benford distribution.
func (ft *FrequencyTable) Frequencies() []DigitFrequency {
	freqs := make([]DigitFrequency, 0, 9)
	for d := 1; d <= 9; d++ {
		observed := ft.ObservedFraction(d) * 100
		expected := ExpectedPercent(d)
		deviation := observed - expected
		if deviation < 0 {
			deviation = -deviation
		}
		freqs = append(freqs, DigitFrequency{
			Digit:     d,
			Count:     ft.Count(d),
			Observed:  observed,
			Expected:  expected,
			Deviation: deviation,
		})
	}
	return freqs
}
