package model

import (
	"testing"
	"time"
)

func TestTransactionGenerateHash(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	a := Transaction{Date: date, Vendor: "Acme Corp", Amount: 1250.00}
	b := Transaction{Date: date, Vendor: "Acme Corp", Amount: 1250.00}
	c := Transaction{Date: date, Vendor: "Acme Corp", Amount: 1250.01}

	if a.GenerateHash() != b.GenerateHash() {
		t.Error("identical transactions should hash identically")
	}
	if a.GenerateHash() == c.GenerateHash() {
		t.Error("different amounts should hash differently")
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr bool
	}{
		{"positive amount", 42.17, false},
		{"zero amount", 0, true},
		{"negative amount", -10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := Transaction{Amount: tt.amount}
			err := txn.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
