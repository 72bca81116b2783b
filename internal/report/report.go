// Package report renders verification outcomes and drift assessments for a
// hosting control surface: human-readable text, GitHub Actions annotations
// for CI, and JSON for machine consumers. Output ordering is deterministic.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"stagegate/internal/coverage"
	"stagegate/internal/lock"
)

// FormatVerifyCLI formats a verification outcome for terminal output.
func FormatVerifyCLI(o lock.Outcome) string {
	var sb strings.Builder

	if o.Valid {
		fmt.Fprintf(&sb, "✅ Lock verified: %d file(s) unchanged\n", len(o.Expected))
		return sb.String()
	}

	sb.WriteString("❌ Locked files changed since approval:\n")
	for _, path := range o.Modified {
		fmt.Fprintf(&sb, "  ~ %s\n      expected %s\n      actual   %s\n", path, o.Expected[path], o.Actual[path])
	}
	for _, path := range o.Missing {
		fmt.Fprintf(&sb, "  - %s (missing)\n", path)
	}
	fmt.Fprintf(&sb, "\n%d modified, %d missing\n", len(o.Modified), len(o.Missing))
	return sb.String()
}

// FormatVerifyCI formats a verification outcome as GitHub Actions error
// annotations, one per finding.
func FormatVerifyCI(o lock.Outcome) string {
	if o.Valid {
		return fmt.Sprintf("✅ Lock verified: %d file(s) unchanged\n", len(o.Expected))
	}

	var sb strings.Builder
	for _, path := range o.Modified {
		fmt.Fprintf(&sb, "::error file=%s::Locked file modified (expected %s, actual %s)\n", path, o.Expected[path], o.Actual[path])
	}
	for _, path := range o.Missing {
		fmt.Fprintf(&sb, "::error file=%s::Locked file missing\n", path)
	}
	fmt.Fprintf(&sb, "\n❌ Lock verification failed: %d modified, %d missing\n", len(o.Modified), len(o.Missing))
	return sb.String()
}

// FormatVerifyJSON formats a verification outcome as indented JSON.
func FormatVerifyJSON(o lock.Outcome) (string, error) {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// severityBadge maps a severity to its terminal label.
var severityBadge = map[coverage.Severity]string{
	coverage.SeverityOK:       "✅ ok",
	coverage.SeverityInfo:     "ℹ️  info",
	coverage.SeverityWarning:  "⚠️  warning",
	coverage.SeverityCritical: "❌ critical",
}

// FormatDriftCLI formats a drift assessment for terminal output.
func FormatDriftCLI(a coverage.Assessment) string {
	var sb strings.Builder

	if a.Baseline == 0 {
		fmt.Fprintf(&sb, "✅ ok — no baseline recorded yet (current %.1f%%)\n", a.Current)
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s — coverage %.1f%% against baseline %.1f%% (drift %+.1f)\n",
		severityBadge[a.Severity], a.Current, a.Baseline, a.Drift)
	if a.RequiresReview {
		sb.WriteString("Human review required before proceeding.\n")
	}
	return sb.String()
}

// FormatDriftCI formats a drift assessment as a GitHub Actions annotation.
// Warning-level for non-blocking severities, error-level when review is
// required.
func FormatDriftCI(a coverage.Assessment) string {
	if a.Severity == coverage.SeverityOK {
		return fmt.Sprintf("Coverage %.1f%% (baseline %.1f%%) — no regression\n", a.Current, a.Baseline)
	}

	level := "warning"
	if a.RequiresReview {
		level = "error"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "::%s::Coverage regressed %.1f points: %.1f%% -> %.1f%% (severity: %s)\n",
		level, a.Drift, a.Baseline, a.Current, a.Severity)
	if a.RequiresReview {
		sb.WriteString("\n❌ Coverage gate: human review required\n")
	}
	return sb.String()
}

// FormatDriftJSON formats a drift assessment as indented JSON.
func FormatDriftJSON(a coverage.Assessment) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
