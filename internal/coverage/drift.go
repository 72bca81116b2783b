package coverage

// Severity classifies the magnitude of a coverage regression.
type Severity string

const (
	SeverityOK       Severity = "ok"       // No regression
	SeverityInfo     Severity = "info"     // Minor dip, below half the threshold
	SeverityWarning  Severity = "warning"  // At or above half the threshold
	SeverityCritical Severity = "critical" // At or above the threshold
)

// DefaultThreshold is the default critical boundary in percentage points.
const DefaultThreshold = 10.0

// Policy is the caller-supplied classification configuration. The zero
// value classifies with DefaultThreshold and gates review at the critical
// boundary.
type Policy struct {
	// Threshold is the critical boundary in percentage points.
	// Zero or negative selects DefaultThreshold.
	Threshold float64
	// ReviewAt is the drift at which human review is required.
	// Zero or negative selects the critical boundary, so "critical" and
	// "requires review" coincide unless configured apart.
	ReviewAt float64
}

func (p Policy) threshold() float64 {
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

func (p Policy) reviewAt() float64 {
	if p.ReviewAt <= 0 {
		return p.threshold()
	}
	return p.ReviewAt
}

// Assessment is the classified result of a drift computation. Derived,
// never persisted; a pure function of its inputs.
type Assessment struct {
	Baseline       float64  `json:"baseline"`
	Current        float64  `json:"current"`
	Drift          float64  `json:"drift"` // baseline - current; positive means regression
	Severity       Severity `json:"severity"`
	RequiresReview bool     `json:"requiresReview"`
}

// Classify computes drift = baseline - current and buckets it against the
// policy. A baseline of 0.0 is the "never recorded" sentinel: classification
// is skipped entirely and the assessment is ok/no-review regardless of the
// current value, rather than producing a nonsensical delta against zero.
func Classify(baseline, current float64, pol Policy) Assessment {
	if baseline == 0 {
		return Assessment{
			Baseline: baseline,
			Current:  current,
			Drift:    0,
			Severity: SeverityOK,
		}
	}

	threshold := pol.threshold()
	drift := baseline - current

	var severity Severity
	switch {
	case drift <= 0:
		severity = SeverityOK
	case drift < threshold/2:
		severity = SeverityInfo
	case drift < threshold:
		severity = SeverityWarning
	default:
		severity = SeverityCritical
	}

	return Assessment{
		Baseline:       baseline,
		Current:        current,
		Drift:          drift,
		Severity:       severity,
		RequiresReview: drift >= pol.reviewAt(),
	}
}
