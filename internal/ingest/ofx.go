package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/verafin/digitlens/internal/model"
)

// OFXParser implements OFX/QFX statement parsing.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank-exported OFX files:
// leading whitespace, mixed-case SEVERITY values, and SGML-style tags missing
// their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX statement and returns cleaned transactions.
// Statement amounts are taken as magnitudes; zero-amount entries are dropped.
func (p *OFXParser) ParseFile(_ context.Context, reader io.Reader) (*Result, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	result := &Result{}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				p.appendTransaction(result, ofxTx)
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				p.appendTransaction(result, ofxTx)
			}
		}
	}

	slog.Info("Parsed OFX file",
		"transactions", len(result.Transactions),
		"dropped", result.Dropped)

	return result, nil
}

func (p *OFXParser) appendTransaction(result *Result, ofxTx ofxgo.Transaction) {
	// OFX uses negative amounts for debits; the engine analyzes magnitudes.
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 {
		result.Dropped++
		return
	}

	txn := model.Transaction{
		ID:     string(ofxTx.FiTID),
		Date:   ofxTx.DtPosted.Time,
		Vendor: extractVendor(ofxTx),
		Amount: amount,
	}
	txn.Hash = txn.GenerateHash()
	result.Transactions = append(result.Transactions, txn)
}

// vendorPrefixes are boilerplate prefixes banks prepend to payee names.
var vendorPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// extractVendor pulls the cleanest available vendor name from an OFX record.
func extractVendor(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	return cleanVendorName(name)
}

// cleanVendorName strips bank boilerplate prefixes and leading "MM/DD " date
// fragments from a raw payee name.
func cleanVendorName(name string) string {
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
