package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/verafin/digitlens/internal/benford"
	"github.com/verafin/digitlens/internal/model"
)

// CLIFormatter renders analysis results for terminal display.
type CLIFormatter struct {
	styles *Styles
	now    func() time.Time
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
		now:    time.Now,
	}
}

// FormatSummary renders the full report for a terminal.
func (f *CLIFormatter) FormatSummary(result *benford.Result) string {
	if result == nil {
		return f.styles.Error.Render("No analysis result available")
	}

	sections := []string{
		f.formatHeader(result),
		f.formatVerdict(result),
		f.formatDigitTable(result.DigitFrequencies),
	}

	if len(result.SuspiciousVendors) > 0 {
		sections = append(sections, f.formatVendors(result.SuspiciousVendors))
	}
	if len(result.FlaggedTransactions) > 0 {
		sections = append(sections, f.formatFlagged(result.FlaggedTransactions))
	}
	if len(result.Warnings) > 0 {
		sections = append(sections, f.formatWarnings(result.Warnings))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatHeader(result *benford.Result) string {
	title := f.styles.Title.Render("🔍 Leading-Digit Analysis Report")

	counts := fmt.Sprintf("Analyzed: %d transactions", result.TotalTransactions)
	if result.SkippedRecords > 0 {
		counts += fmt.Sprintf(" (%d skipped)", result.SkippedRecords)
	}
	countsStyled := f.styles.Subtitle.Render(counts)

	generated := f.styles.Subtle.Render("Generated: " + f.now().Format(time.RFC3339))

	return fmt.Sprintf("%s\n%s\n%s", title, countsStyled, generated)
}

// formatVerdict renders the overall assessment, risk and test statistics.
func (f *CLIFormatter) formatVerdict(result *benford.Result) string {
	assessment := f.styles.ForAssessment(result.Assessment).
		Bold(true).
		Render(fmt.Sprintf("Assessment: %s", result.Assessment))
	risk := f.styles.ForRisk(result.RiskLevel).
		Render(fmt.Sprintf("Risk: %s", result.RiskLevel))

	stats := f.styles.Score.Render(fmt.Sprintf("MAD: %.4f  │  Chi-square: %.2f (critical %.2f at df=%d)",
		result.MAD, result.ChiSquare, benford.ChiSquareCritical, benford.DegreesOfFreedom))

	return f.styles.Box.Render(fmt.Sprintf("%s\n%s\n%s", assessment, risk, stats))
}

// formatDigitTable renders observed vs. expected frequencies per leading
// digit, with a proportional bar per row.
func (f *CLIFormatter) formatDigitTable(freqs []benford.DigitFrequency) string {
	title := f.styles.Subtitle.Render("Leading-Digit Distribution:")

	headerStyle := f.styles.Subtle.Bold(true)
	header := fmt.Sprintf("%-6s %-7s %-10s %-10s %-10s %s",
		"Digit", "Count", "Observed", "Expected", "Deviation", "")
	rows := []string{headerStyle.Render(header)}
	rows = append(rows, f.styles.Subtle.Render(strings.Repeat("─", len(header)+24)))

	for _, df := range freqs {
		bar := f.styles.RenderBar(df.Observed/100, 24)

		// Deviation is an absolute value.
		deviation := fmt.Sprintf("%.1f%%", df.Deviation)
		var devStyled string
		switch {
		case df.Deviation > 5:
			devStyled = f.styles.Error.Render(deviation)
		case df.Deviation > 2:
			devStyled = f.styles.Warning.Render(deviation)
		default:
			devStyled = f.styles.Subtle.Render(deviation)
		}

		rows = append(rows, fmt.Sprintf("%-6d %-7d %-10s %-10s %-10s %s",
			df.Digit,
			df.Count,
			fmt.Sprintf("%.1f%%", df.Observed),
			fmt.Sprintf("%.1f%%", df.Expected),
			devStyled,
			bar))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

// formatVendors renders the per-vendor findings, worst first.
func (f *CLIFormatter) formatVendors(vendors []benford.VendorAnalysis) string {
	title := f.styles.Subtitle.Render("Vendors Needing Review:")

	var lines []string
	for _, v := range vendors {
		riskStyled := f.styles.ForRisk(v.RiskLevel).Render(string(v.RiskLevel))
		head := fmt.Sprintf("%s %s  (%d transactions, MAD %.4f, %s)",
			riskIcon(v.RiskLevel),
			f.styles.Info.Bold(true).Render(v.Vendor),
			v.TransactionCount, v.MAD, riskStyled)
		lines = append(lines, head)

		for _, p := range v.Patterns {
			lines = append(lines, f.styles.Subtle.Render("    • "+p.Describe()))
		}
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// formatFlagged renders individually flagged transactions.
func (f *CLIFormatter) formatFlagged(flags []benford.FlaggedTransaction) string {
	title := f.styles.Subtitle.Render(fmt.Sprintf("Flagged Transactions (%d):", len(flags)))

	limit := 15
	shown := flags
	if len(shown) > limit {
		shown = shown[:limit]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, ft := range shown {
		vendor := ft.Vendor
		if vendor == "" {
			vendor = "(no vendor)"
		}
		risk := f.styles.ForRisk(ft.RiskLevel).Render(string(ft.RiskLevel))
		lines = append(lines, fmt.Sprintf("  %s %-10s $%-12.2f %-24s %s",
			riskIcon(ft.RiskLevel), risk, ft.Amount, truncate(vendor, 24),
			f.styles.Subtle.Render(ft.Reason)))
	}

	if len(flags) > limit {
		lines = append(lines, f.styles.Subtle.Render(
			fmt.Sprintf("  ... and %d more", len(flags)-limit)))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatWarnings(warnings []string) string {
	title := f.styles.Subtitle.Render("Warnings:")

	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, f.styles.Warning.Render("  ⚠ "+w))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func riskIcon(level model.RiskLevel) string {
	switch level {
	case model.RiskCritical:
		return "🚨"
	case model.RiskHigh:
		return "⚠️"
	case model.RiskMedium:
		return "⚡"
	default:
		return "•"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
