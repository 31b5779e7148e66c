package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verafin/digitlens/internal/benford"
	"github.com/verafin/digitlens/internal/common"
)

// RunSummary is the stored header of one completed analysis run.
type RunSummary struct {
	CreatedAt         time.Time
	ID                string
	Assessment        string
	RiskLevel         string
	TotalTransactions int
	MAD               float64
	ChiSquare         float64
	VendorCount       int
	FlagCount         int
}

// SaveRun persists a completed analysis result and returns the run ID.
func (s *Store) SaveRun(ctx context.Context, result *benford.Result) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	runID := uuid.NewString()

	warnings, err := json.Marshal(result.Warnings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs
		(id, total_transactions, mad, chi_square, assessment, risk_level, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, result.TotalTransactions, result.MAD, result.ChiSquare,
		string(result.Assessment), string(result.RiskLevel), string(warnings)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, v := range result.SuspiciousVendors {
		patterns, err := json.Marshal(v.Patterns)
		if err != nil {
			return "", fmt.Errorf("failed to marshal patterns for %q: %w", v.Vendor, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_vendors
			(run_id, vendor, transaction_count, mad, chi_square, assessment, risk_level, patterns)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, v.Vendor, v.TransactionCount, v.MAD, v.ChiSquare,
			string(v.Assessment), string(v.RiskLevel), string(patterns)); err != nil {
			return "", fmt.Errorf("failed to insert vendor analysis for %q: %w", v.Vendor, err)
		}
	}

	for _, f := range result.FlaggedTransactions {
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_flags
			(run_id, txn_index, vendor, amount, leading_digit, reason, risk_level)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, f.Index, f.Vendor, f.Amount, f.LeadingDigit, f.Reason,
			string(f.RiskLevel)); err != nil {
			return "", fmt.Errorf("failed to insert flagged transaction %d: %w", f.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRun returns the summary of one stored run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var run RunSummary
	var created sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT
			r.id, r.created_at, r.total_transactions, r.mad, r.chi_square,
			r.assessment, r.risk_level,
			(SELECT COUNT(*) FROM run_vendors v WHERE v.run_id = r.id),
			(SELECT COUNT(*) FROM run_flags f WHERE f.run_id = r.id)
		FROM runs r WHERE r.id = ?`, runID).Scan(
		&run.ID, &created, &run.TotalTransactions, &run.MAD,
		&run.ChiSquare, &run.Assessment, &run.RiskLevel,
		&run.VendorCount, &run.FlagCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if created.Valid {
		run.CreatedAt = created.Time.UTC()
	}

	return &run, nil
}

// ListRuns returns summaries of stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
			r.id, r.created_at, r.total_transactions, r.mad, r.chi_square,
			r.assessment, r.risk_level,
			(SELECT COUNT(*) FROM run_vendors v WHERE v.run_id = r.id),
			(SELECT COUNT(*) FROM run_flags f WHERE f.run_id = r.id)
		FROM runs r ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var created sql.NullTime
		if err := rows.Scan(&run.ID, &created, &run.TotalTransactions, &run.MAD,
			&run.ChiSquare, &run.Assessment, &run.RiskLevel,
			&run.VendorCount, &run.FlagCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if created.Valid {
			run.CreatedAt = created.Time.UTC()
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
