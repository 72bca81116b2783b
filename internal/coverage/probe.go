package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Probe produces a coverage measurement. Implementations are selected by
// injection: ExecProbe runs the project's coverage command, StaticProbe is
// the deterministic stand-in for tests.
type Probe interface {
	Measure(ctx context.Context) (Sample, error)
}

// MeasurementError reports that the coverage runner could not produce a
// usable report. The underlying diagnostic is preserved verbatim for
// caller display.
type MeasurementError struct {
	Command  string // Command line that was attempted
	ExitCode int    // Exit status, -1 when the process never ran
	Stderr   string // Stderr excerpt, verbatim
	Err      error  // Underlying cause
}

func (e *MeasurementError) Error() string {
	msg := fmt.Sprintf("coverage measurement failed: %s", e.Command)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *MeasurementError) Unwrap() error { return e.Err }

// stderrExcerptLimit bounds how much stderr a MeasurementError carries.
const stderrExcerptLimit = 4096

// ExecProbe runs an external coverage command and parses its report from
// stdout. The command's cost is unbounded, so Measure honors context
// cancellation; callers wrap it in a timeout.
type ExecProbe struct {
	Command string   // Executable to run
	Args    []string // Arguments
	Dir     string   // Working directory; empty means inherited
}

// Measure runs the command and parses its coverage report.
func (p *ExecProbe) Measure(ctx context.Context) (Sample, error) {
	cmdline := strings.TrimSpace(p.Command + " " + strings.Join(p.Args, " "))

	if _, err := exec.LookPath(p.Command); err != nil {
		return Sample{}, &MeasurementError{Command: cmdline, ExitCode: -1, Err: err}
	}

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Dir = p.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cause := err
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
		}
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		return Sample{}, &MeasurementError{
			Command:  cmdline,
			ExitCode: exitCode,
			Stderr:   excerpt(stderr.String()),
			Err:      cause,
		}
	}

	sample, err := ParseReport(stdout.Bytes())
	if err != nil {
		return Sample{}, &MeasurementError{
			Command:  cmdline,
			ExitCode: 0,
			Stderr:   excerpt(stderr.String()),
			Err:      err,
		}
	}
	return sample, nil
}

// StaticProbe returns a fixed sample or error. Test stand-in.
type StaticProbe struct {
	Sample Sample
	Err    error
}

// Measure returns the configured sample or error.
func (p StaticProbe) Measure(ctx context.Context) (Sample, error) {
	if p.Err != nil {
		return Sample{}, p.Err
	}
	return p.Sample, nil
}

// goCoverageLine matches the summary line of `go test -cover` style output.
var goCoverageLine = regexp.MustCompile(`coverage:\s+(\d+(?:\.\d+)?)%`)

// ParseReport extracts a Sample from a coverage runner's output. A JSON
// summary document is preferred; a `coverage: NN.N% of statements` text
// line is accepted as a fallback (statement counts unavailable there).
func ParseReport(report []byte) (Sample, error) {
	trimmed := bytes.TrimSpace(report)
	if len(trimmed) == 0 {
		return Sample{}, fmt.Errorf("empty coverage report")
	}

	if trimmed[0] == '{' {
		var sample Sample
		if err := json.Unmarshal(trimmed, &sample); err != nil {
			return Sample{}, fmt.Errorf("malformed coverage report: %w", err)
		}
		if err := validate(sample); err != nil {
			return Sample{}, err
		}
		return sample, nil
	}

	if match := goCoverageLine.FindSubmatch(trimmed); match != nil {
		percent, err := strconv.ParseFloat(string(match[1]), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("malformed coverage report: %w", err)
		}
		sample := Sample{Percent: percent}
		if err := validate(sample); err != nil {
			return Sample{}, err
		}
		return sample, nil
	}

	return Sample{}, fmt.Errorf("no coverage figure found in report")
}

func validate(s Sample) error {
	if math.IsNaN(s.Percent) || s.Percent < 0 || s.Percent > 100 {
		return fmt.Errorf("coverage percent %v out of range [0,100]", s.Percent)
	}
	return nil
}

func excerpt(s string) string {
	if len(s) > stderrExcerptLimit {
		return s[:stderrExcerptLimit]
	}
	return s
}
