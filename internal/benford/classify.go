package benford

import "github.com/verafin/digitlens/internal/model"

// MAD thresholds on the fractional scale, following the Nigrini conformity
// bands. One canonical scale is used everywhere; dataset and vendor
// classification share this exact ladder.
const (
	// MADCompliantMax is the upper bound for close conformity.
	MADCompliantMax = 0.006
	// MADAcceptableMax is the upper bound for acceptable conformity.
	MADAcceptableMax = 0.012
	// MADSuspiciousMax is the upper bound for marginal nonconformity;
	// anything above is highly suspicious.
	MADSuspiciousMax = 0.022
)

// Classify maps deviation statistics to the overall assessment and risk
// level. The assessment is a pure function of MAD; the risk level starts from
// the MAD band and escalates one notch when the chi-square statistic exceeds
// its 95% critical value.
func Classify(mad, chiSquare float64) (model.Assessment, model.RiskLevel) {
	var assessment model.Assessment
	var risk model.RiskLevel

	switch {
	case mad < MADCompliantMax:
		assessment = model.AssessmentCompliant
		risk = model.RiskLow
	case mad < MADAcceptableMax:
		assessment = model.AssessmentAcceptable
		risk = model.RiskLow
	case mad < MADSuspiciousMax:
		assessment = model.AssessmentSuspicious
		risk = model.RiskMedium
	default:
		assessment = model.AssessmentHighlySuspicious
		risk = model.RiskHigh
	}

	if chiSquare > ChiSquareCritical {
		risk = risk.Escalate()
	}

	return assessment, risk
}
