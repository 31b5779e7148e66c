package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerAcceptsValidCombinations(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, format := range []string{"console", "json"} {
			assert.NoError(t, SetupLogger(level, format))
		}
	}
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	err := SetupLogger("verbose", "console")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLoggerRejectsUnknownFormat(t *testing.T) {
	err := SetupLogger("info", "xml")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
