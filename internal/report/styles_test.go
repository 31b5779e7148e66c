package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verafin/digitlens/internal/model"
)

func TestRenderBar(t *testing.T) {
	s := NewStyles()

	assert.Equal(t, "██████████", s.RenderBar(1.0, 10))
	assert.Equal(t, "█████░░░░░", s.RenderBar(0.5, 10))
	assert.Equal(t, "░░░░░░░░░░", s.RenderBar(0, 10))

	// Out-of-range progress is clamped.
	assert.Equal(t, "██████████", s.RenderBar(1.7, 10))
	assert.Equal(t, "░░░░░░░░░░", s.RenderBar(-0.3, 10))

	// Zero width falls back to the default.
	assert.Len(t, []rune(s.RenderBar(0, 0)), 30)
}

func TestStyleSelectors(t *testing.T) {
	s := NewStyles()

	assert.Equal(t, s.Critical, s.ForRisk(model.RiskCritical))
	assert.Equal(t, s.Low, s.ForRisk(model.RiskLow))
	assert.Equal(t, s.Normal, s.ForRisk(model.RiskLevel("bogus")))

	assert.Equal(t, s.Success, s.ForAssessment(model.AssessmentCompliant))
	assert.Equal(t, s.Error, s.ForAssessment(model.AssessmentHighlySuspicious))
}
