package benford

import (
	"math"
	"testing"
)

func TestLeadingDigit(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    int
		wantErr bool
	}{
		{name: "single digit", amount: 7, want: 7},
		{name: "integer", amount: 123456, want: 1},
		{name: "hundreds", amount: 900, want: 9},
		{name: "decimal", amount: 45.99, want: 4},
		{name: "small fraction", amount: 0.0047, want: 4},
		{name: "just below one", amount: 0.999, want: 9},
		{name: "negative uses absolute value", amount: -250, want: 2},
		{name: "zero", amount: 0, wantErr: true},
		{name: "NaN", amount: math.NaN(), wantErr: true},
		{name: "positive infinity", amount: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LeadingDigit(tt.amount)
			if tt.wantErr {
				if err == nil {
					t.Errorf("LeadingDigit(%v) error = nil, want error", tt.amount)
				}
				return
			}
			if err != nil {
				t.Fatalf("LeadingDigit(%v) error = %v, want nil", tt.amount, err)
			}
			if got != tt.want {
				t.Errorf("LeadingDigit(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestExpectedPercentMatchesClosedForm(t *testing.T) {
	// Conventional reference values for log10(1+1/d)*100.
	want := []float64{30.1, 17.6, 12.5, 9.7, 7.9, 6.7, 5.8, 5.1, 4.6}
	for d := 1; d <= 9; d++ {
		got := ExpectedPercent(d)
		if math.Abs(got-want[d-1]) > 0.05 {
			t.Errorf("ExpectedPercent(%d) = %.3f, want ~%.1f", d, got, want[d-1])
		}
	}
}

func TestExpectedFractionsSumToOne(t *testing.T) {
	sum := 0.0
	for d := 1; d <= 9; d++ {
		sum += ExpectedFraction(d)
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("expected fractions sum to %v, want 1", sum)
	}
}

func TestExpectedFractionOutOfRange(t *testing.T) {
	for _, d := range []int{0, 10, -1} {
		if got := ExpectedFraction(d); got != 0 {
			t.Errorf("ExpectedFraction(%d) = %v, want 0", d, got)
		}
	}
}
