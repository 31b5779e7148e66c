package model

// RiskLevel is the ordinal risk classification attached to datasets, vendors
// and flagged transactions.
type RiskLevel string

const (
	// RiskLow indicates digit patterns consistent with natural data.
	RiskLow RiskLevel = "low"
	// RiskMedium indicates patterns worth a second look.
	RiskMedium RiskLevel = "medium"
	// RiskHigh indicates patterns strongly diverging from natural data.
	RiskHigh RiskLevel = "high"
	// RiskCritical indicates classic fabrication signatures.
	RiskCritical RiskLevel = "critical"
)

// Order returns the numeric rank of a risk level (higher is riskier).
// Unknown levels rank below low.
func (r RiskLevel) Order() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// Escalate returns the next level up, capped at critical.
func (r RiskLevel) Escalate() RiskLevel {
	switch r {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	case RiskHigh, RiskCritical:
		return RiskCritical
	default:
		return r
	}
}

// MaxRiskLevel returns the riskier of two levels.
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.Order() > a.Order() {
		return b
	}
	return a
}

// Assessment is the ordinal overall conformity category for a dataset or
// vendor, derived from the deviation statistics.
type Assessment string

const (
	// AssessmentCompliant indicates close conformity to the expected
	// leading-digit distribution.
	AssessmentCompliant Assessment = "compliant"
	// AssessmentAcceptable indicates marginal conformity.
	AssessmentAcceptable Assessment = "acceptable"
	// AssessmentSuspicious indicates nonconformity warranting review.
	AssessmentSuspicious Assessment = "suspicious"
	// AssessmentHighlySuspicious indicates severe nonconformity.
	AssessmentHighlySuspicious Assessment = "highly-suspicious"
)

// Order returns the numeric rank of an assessment (higher is worse).
func (a Assessment) Order() int {
	switch a {
	case AssessmentCompliant:
		return 1
	case AssessmentAcceptable:
		return 2
	case AssessmentSuspicious:
		return 3
	case AssessmentHighlySuspicious:
		return 4
	default:
		return 0
	}
}
