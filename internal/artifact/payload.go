// Package artifact models the caller-owned phase artifact payload. The
// coverage core reads and writes its baseline field through the accessor
// interface; everything else in the document is opaque and preserved.
package artifact

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Field names the payload uses for the recorded baseline.
const (
	BaselineField   = "coverage_baseline"
	RecordedAtField = "coverage_recorded_at"
)

// Payload is a map-backed artifact document. Unknown fields round-trip
// untouched.
type Payload struct {
	Fields map[string]any
}

// New creates an empty payload.
func New() *Payload {
	return &Payload{Fields: map[string]any{}}
}

// Load reads a payload document from disk. A missing file yields an empty
// payload: an artifact that was never written has no baseline yet.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return &Payload{Fields: fields}, nil
}

// Save writes the payload document, creating missing parent directories.
func (p *Payload) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p.Fields)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Baseline reads the recorded coverage baseline. Absent or malformed
// values read as not ok; the caller substitutes the 0.0 sentinel.
func (p *Payload) Baseline() (float64, bool) {
	raw, present := p.Fields[BaselineField]
	if !present {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// SetBaseline records the baseline value and its timestamp on the payload.
func (p *Payload) SetBaseline(value float64, recordedAt time.Time) {
	p.Fields[BaselineField] = value
	p.Fields[RecordedAtField] = recordedAt.UTC().Format(time.RFC3339)
}
