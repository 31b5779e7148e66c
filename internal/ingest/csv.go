package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verafin/digitlens/internal/common"
	"github.com/verafin/digitlens/internal/model"
)

// Column synonyms recognized in CSV headers, after normalization.
var (
	amountColumns   = []string{"amount", "amt", "value", "total", "debit", "price", "cost"}
	vendorColumns   = []string{"vendor", "merchant", "payee", "supplier", "name", "description"}
	dateColumns     = []string{"date", "transactiondate", "txndate", "posted", "posteddate"}
	categoryColumns = []string{"category", "type", "class", "account"}
)

// dateLayouts tried in order when parsing the optional date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// CSVParser implements header-mapped CSV parsing with amount cleaning.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// ParseFile reads a CSV file, maps its columns to transaction fields by
// header name, and returns the cleaned transactions. Rows whose amount cannot
// be parsed as a positive number are dropped and counted, never passed on.
func (p *CSVParser) ParseFile(ctx context.Context, reader io.Reader) (*Result, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrNoTransactions
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		amount, ok := parseAmount(field(row, cols.amount))
		if !ok {
			result.Dropped++
			continue
		}

		txn := model.Transaction{
			ID:       fmt.Sprintf("row-%d", i+2),
			Vendor:   strings.TrimSpace(field(row, cols.vendor)),
			Category: strings.TrimSpace(field(row, cols.category)),
			Date:     parseDate(field(row, cols.date)),
			Amount:   amount,
		}
		txn.Hash = txn.GenerateHash()
		result.Transactions = append(result.Transactions, txn)
	}

	slog.Info("Parsed CSV file",
		"transactions", len(result.Transactions),
		"dropped", result.Dropped)

	return result, nil
}

// columnMap holds the resolved column index per field; -1 means absent.
type columnMap struct {
	amount   int
	vendor   int
	date     int
	category int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{amount: -1, vendor: -1, date: -1, category: -1}
	for i, raw := range header {
		name := normalizeHeader(raw)
		switch {
		case cols.amount == -1 && matchesAny(name, amountColumns):
			cols.amount = i
		case cols.vendor == -1 && matchesAny(name, vendorColumns):
			cols.vendor = i
		case cols.date == -1 && matchesAny(name, dateColumns):
			cols.date = i
		case cols.category == -1 && matchesAny(name, categoryColumns):
			cols.category = i
		}
	}
	if cols.amount == -1 {
		return cols, fmt.Errorf("%w in header %v", common.ErrNoAmountColumn, header)
	}
	return cols, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
	return name
}

func matchesAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseAmount cleans a raw amount cell (currency symbols, thousands
// separators, parenthesized negatives) and parses it exactly. Amounts that
// are not positive numbers are rejected.
func parseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(s)

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if negative {
		dec = dec.Neg()
	}
	if !dec.IsPositive() {
		return 0, false
	}

	return dec.Round(2).InexactFloat64(), true
}

func parseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
