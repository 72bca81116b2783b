package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stagegate/internal/coverage"
)

// Payload must satisfy the accessor contract the coverage core consumes.
var _ coverage.BaselineAccessor = (*Payload)(nil)

func TestLoad_MissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "artifact.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield empty payload: %v", err)
	}
	if _, ok := p.Baseline(); ok {
		t.Error("fresh payload has no baseline")
	}
}

func TestSaveLoad_PreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.yaml")

	p := New()
	p.Fields["phase"] = "tests-approved"
	p.Fields["reviewer"] = "sam"
	p.SetBaseline(88.5, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))

	if err := p.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Fields["phase"] != "tests-approved" || loaded.Fields["reviewer"] != "sam" {
		t.Errorf("caller-owned fields not preserved: %+v", loaded.Fields)
	}
	v, ok := loaded.Baseline()
	if !ok || v != 88.5 {
		t.Errorf("baseline not preserved: %v ok=%v", v, ok)
	}
	if loaded.Fields[RecordedAtField] != "2026-04-01T08:00:00Z" {
		t.Errorf("recorded-at: got %v", loaded.Fields[RecordedAtField])
	}
}

func TestBaseline_ValueShapes(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   float64
		wantOK bool
	}{
		{"float", 87.5, 87.5, true},
		{"int", 90, 90.0, true},
		{"numeric string", "82.5", 82.5, true},
		{"garbage string", "eighty", 0, false},
		{"wrong type", []any{1, 2}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.Fields[BaselineField] = tt.raw

			v, ok := p.Baseline()
			if ok != tt.wantOK || v != tt.want {
				t.Errorf("got (%v, %v), want (%v, %v)", v, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMalformedBaseline_ReadsAsSentinel(t *testing.T) {
	p := New()
	p.Fields[BaselineField] = "not-a-number"

	if got := coverage.ReadBaseline(p); got != 0 {
		t.Errorf("malformed baseline must read as the 0.0 sentinel, got %v", got)
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.yaml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Fields == nil {
		t.Error("empty document should load as empty fields map")
	}
}
