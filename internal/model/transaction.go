// Package model defines the core domain types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single cleaned financial transaction from any
// source. Amount is always positive; the ingest layer filters everything else
// before transactions reach the analysis engine.
type Transaction struct {
	Date     time.Time
	ID       string
	Vendor   string // Cleaned vendor/merchant name; may be empty
	Category string
	Hash     string
	Amount   float64
}

// GenerateHash creates a unique hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Vendor)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Validate ensures the transaction honors the upstream cleaning contract.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", t.Amount)
	}
	return nil
}
