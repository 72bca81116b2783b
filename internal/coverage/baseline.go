package coverage

import (
	"math"
	"time"
)

// BaselineAccessor reads and writes the recorded coverage baseline on a
// caller-owned artifact payload. The core never inspects payload shape;
// each concrete payload representation implements this once. Persisting
// the payload remains the caller's responsibility.
type BaselineAccessor interface {
	// Baseline returns the recorded baseline. ok is false when the field
	// is absent or malformed.
	Baseline() (value float64, ok bool)
	// SetBaseline records a new baseline value and its timestamp.
	SetBaseline(value float64, recordedAt time.Time)
}

// ReadBaseline extracts the baseline from a payload, substituting the 0.0
// "never recorded" sentinel for absent, malformed, or out-of-range values.
// A malformed baseline is indistinguishable in policy from an unset one,
// so it never surfaces as an error.
func ReadBaseline(payload BaselineAccessor) float64 {
	v, ok := payload.Baseline()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return 0
	}
	return v
}

// RecordBaseline stamps the sample's percentage and a recorded-at time on
// the payload.
func RecordBaseline(payload BaselineAccessor, sample Sample, at time.Time) {
	payload.SetBaseline(sample.Percent, at.UTC())
}

// BaselineField is a struct-backed BaselineAccessor for payloads that
// model the baseline as plain fields. Embeddable.
type BaselineField struct {
	Value      float64   `json:"coverageBaseline" yaml:"coverage_baseline"`
	RecordedAt time.Time `json:"coverageRecordedAt,omitempty" yaml:"coverage_recorded_at,omitempty"`
}

// Baseline reports the recorded value; never recorded reads as not ok.
func (f *BaselineField) Baseline() (float64, bool) {
	if f.Value == 0 && f.RecordedAt.IsZero() {
		return 0, false
	}
	return f.Value, true
}

// SetBaseline records the value and timestamp.
func (f *BaselineField) SetBaseline(value float64, recordedAt time.Time) {
	f.Value = value
	f.RecordedAt = recordedAt
}
