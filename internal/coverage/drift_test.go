package coverage

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		baseline     float64
		current      float64
		wantDrift    float64
		wantSeverity Severity
		wantReview   bool
	}{
		{"small dip is info", 90.0, 87.0, 3.0, SeverityInfo, false},
		{"half threshold is warning", 90.0, 83.0, 7.0, SeverityWarning, false},
		{"past threshold is critical", 95.0, 80.0, 15.0, SeverityCritical, true},
		{"improvement is ok", 85.0, 90.0, -5.0, SeverityOK, false},
		{"exactly at threshold is critical", 90.0, 80.0, 10.0, SeverityCritical, true},
		{"exactly at half threshold is warning", 90.0, 85.0, 5.0, SeverityWarning, false},
		{"no drift is ok", 90.0, 90.0, 0.0, SeverityOK, false},
		{"unset baseline skips classification", 0.0, 12.5, 0.0, SeverityOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Classify(tt.baseline, tt.current, Policy{Threshold: 10.0})

			if a.Drift != tt.wantDrift {
				t.Errorf("drift: got %v, want %v", a.Drift, tt.wantDrift)
			}
			if a.Severity != tt.wantSeverity {
				t.Errorf("severity: got %s, want %s", a.Severity, tt.wantSeverity)
			}
			if a.RequiresReview != tt.wantReview {
				t.Errorf("requiresReview: got %v, want %v", a.RequiresReview, tt.wantReview)
			}
		})
	}
}

func TestClassify_ZeroPolicyUsesDefaultThreshold(t *testing.T) {
	a := Classify(95.0, 80.0, Policy{})
	if a.Severity != SeverityCritical || !a.RequiresReview {
		t.Errorf("15 point drift under default threshold: got %s review=%v", a.Severity, a.RequiresReview)
	}
}

func TestClassify_CustomThreshold(t *testing.T) {
	// threshold=4: 3 points is already warning territory
	a := Classify(90.0, 87.0, Policy{Threshold: 4.0})
	if a.Severity != SeverityWarning {
		t.Errorf("got %s, want warning", a.Severity)
	}

	a = Classify(90.0, 85.0, Policy{Threshold: 4.0})
	if a.Severity != SeverityCritical || !a.RequiresReview {
		t.Errorf("got %s review=%v, want critical+review", a.Severity, a.RequiresReview)
	}
}

func TestClassify_EarlierReviewBoundary(t *testing.T) {
	// Review configured below the critical boundary
	a := Classify(90.0, 83.0, Policy{Threshold: 10.0, ReviewAt: 5.0})
	if a.Severity != SeverityWarning {
		t.Errorf("got %s, want warning", a.Severity)
	}
	if !a.RequiresReview {
		t.Error("7 point drift should require review at ReviewAt=5")
	}
}

func TestClassify_UnsetBaselineIgnoresCurrent(t *testing.T) {
	for _, current := range []float64{0, 1, 50, 99.9, 100} {
		a := Classify(0, current, Policy{Threshold: 10.0})
		if a.Drift != 0 || a.Severity != SeverityOK || a.RequiresReview {
			t.Errorf("current=%v: got drift=%v severity=%s review=%v", current, a.Drift, a.Severity, a.RequiresReview)
		}
	}
}

var severityRank = map[Severity]int{
	SeverityOK:       0,
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityCritical: 3,
}

// For a fixed baseline and threshold, severity never decreases as current
// coverage decreases.
func TestClassify_Monotonicity_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("severity non-decreasing as current decreases", prop.ForAll(
		func(baseline, a, b float64) bool {
			if baseline <= 0 {
				return true
			}
			hi, lo := a, b
			if hi < lo {
				hi, lo = lo, hi
			}
			pol := Policy{Threshold: 10.0}
			atHi := Classify(baseline, hi, pol)
			atLo := Classify(baseline, lo, pol)
			return severityRank[atLo.Severity] >= severityRank[atHi.Severity]
		},
		gen.Float64Range(0.5, 100),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.Property("classification is pure", prop.ForAll(
		func(baseline, current float64) bool {
			pol := Policy{Threshold: 10.0}
			return Classify(baseline, current, pol) == Classify(baseline, current, pol)
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.Property("review coincides with critical by default", prop.ForAll(
		func(baseline, current float64) bool {
			a := Classify(baseline, current, Policy{Threshold: 10.0})
			return a.RequiresReview == (a.Severity == SeverityCritical)
		},
		gen.Float64Range(0.5, 100),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
