package coverage

import (
	"context"
	"time"
)

// Monitor composes baseline extraction, a probe, and the drift classifier.
// It holds no state between calls beyond what lives on the payload.
type Monitor struct {
	Probe  Probe
	Policy Policy
	Now    func() time.Time // Clock override for tests; nil means time.Now
}

// NewMonitor creates a monitor around the given probe and policy.
func NewMonitor(probe Probe, pol Policy) *Monitor {
	return &Monitor{Probe: probe, Policy: pol}
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Check measures current coverage and classifies drift against the
// payload's baseline. Measurement failures propagate; a regressed drift is
// a normal result, never an error. Read-only with respect to the payload.
func (m *Monitor) Check(ctx context.Context, payload BaselineAccessor) (Assessment, Sample, error) {
	baseline := ReadBaseline(payload)

	sample, err := m.Probe.Measure(ctx)
	if err != nil {
		return Assessment{}, Sample{}, err
	}

	return Classify(baseline, sample.Percent, m.Policy), sample, nil
}

// Record measures current coverage and records it as the new baseline on
// the payload. Persisting the payload is the caller's job.
func (m *Monitor) Record(ctx context.Context, payload BaselineAccessor) (Sample, error) {
	sample, err := m.Probe.Measure(ctx)
	if err != nil {
		return Sample{}, err
	}
	RecordBaseline(payload, sample, m.now())
	return sample, nil
}
