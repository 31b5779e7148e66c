package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name    string
		format  func(string) string
		icon    string
		message string
	}{
		{"success", FormatSuccess, SuccessIcon, "import complete"},
		{"error", FormatError, ErrorIcon, "parse failed"},
		{"warning", FormatWarning, WarningIcon, "no files matched"},
		{"info", FormatInfo, InfoIcon, "no saved runs"},
		{"title", FormatTitle, LensIcon, "Saved Analysis Runs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format(tt.message)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, tt.message)
		})
	}
}
