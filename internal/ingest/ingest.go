// Package ingest implements the upstream cleaning collaborator: it parses
// transaction files, maps columns to fields, validates amounts and hands the
// analysis engine only records that honor its positivity contract.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verafin/digitlens/internal/common"
	"github.com/verafin/digitlens/internal/model"
)

// Result is the outcome of parsing and cleaning one input file.
type Result struct {
	Transactions []model.Transaction
	// Dropped counts rows removed during cleaning (unparseable or
	// non-positive amounts). The engine turns a high drop ratio into a
	// dataset-quality warning.
	Dropped int
}

// Parser parses one file format into cleaned transactions.
type Parser interface {
	ParseFile(ctx context.Context, reader io.Reader) (*Result, error)
}

// ParserFor returns the parser for the given file path, selected by
// extension.
func ParserFor(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".ofx", ".qfx":
		return NewOFXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFile opens path and parses it with the format-appropriate parser.
func ParseFile(ctx context.Context, path string) (*Result, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return parser.ParseFile(ctx, f)
}
