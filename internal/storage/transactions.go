package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/verafin/digitlens/internal/model"
)

// SaveTransactions inserts transactions, skipping any whose hash is already
// stored. It returns the number of newly inserted rows.
func (s *Store) SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO transactions
		(id, hash, date, vendor, category, amount) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	inserted := 0
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("invalid transaction %q: %w", t.ID, err)
		}

		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		hash := t.Hash
		if hash == "" {
			hash = t.GenerateHash()
		}

		var date any
		if !t.Date.IsZero() {
			date = t.Date.UTC()
		}

		res, err := stmt.ExecContext(ctx, id, hash, date, t.Vendor, t.Category, t.Amount)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %q: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}

	return inserted, nil
}

// GetTransactions returns all stored transactions ordered by import time,
// then id, so repeated analyses see the same ordering.
func (s *Store) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, hash, date, vendor, category, amount
		FROM transactions ORDER BY imported_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date sql.NullTime
		var vendor, category sql.NullString
		if err := rows.Scan(&t.ID, &t.Hash, &date, &vendor, &category, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if date.Valid {
			t.Date = date.Time.UTC()
		}
		t.Vendor = vendor.String
		t.Category = category.String
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// CountTransactions returns the number of stored transactions.
func (s *Store) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
