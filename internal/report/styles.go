// Package report renders analysis results for terminals and exports them as
// JSON or CSV.
package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verafin/digitlens/internal/cli"
	"github.com/verafin/digitlens/internal/model"
)

// Styles contains all styling definitions for report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box      lipgloss.Style
	Score    lipgloss.Style
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.Score = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.Critical = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.ErrorColor).
		Background(lipgloss.Color("#2D0000"))

	s.High = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.WarningColor)

	s.Medium = lipgloss.NewStyle().
		Foreground(cli.InfoColor)

	s.Low = lipgloss.NewStyle().
		Foreground(cli.SubtleColor)

	return s
}

// ForRisk returns the appropriate style for the given risk level.
func (s *Styles) ForRisk(level model.RiskLevel) lipgloss.Style {
	switch level {
	case model.RiskCritical:
		return s.Critical
	case model.RiskHigh:
		return s.High
	case model.RiskMedium:
		return s.Medium
	case model.RiskLow:
		return s.Low
	default:
		return s.Normal
	}
}

// ForAssessment returns the appropriate style for the given assessment.
func (s *Styles) ForAssessment(a model.Assessment) lipgloss.Style {
	switch a {
	case model.AssessmentCompliant:
		return s.Success
	case model.AssessmentAcceptable:
		return s.Info
	case model.AssessmentSuspicious:
		return s.Warning
	case model.AssessmentHighlySuspicious:
		return s.Error
	default:
		return s.Normal
	}
}

// RenderBar renders a proportional bar of the given width. Progress is a
// fraction in [0, 1].
func (s *Styles) RenderBar(progress float64, width int) string {
	if width <= 0 {
		width = 30
	}

	filled := int(float64(width) * progress)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
