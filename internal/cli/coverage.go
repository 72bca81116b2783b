package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stagegate/internal/artifact"
	"stagegate/internal/config"
	"stagegate/internal/coverage"
	"stagegate/internal/report"
)

// NewCoverageCommand creates the `stagegate coverage` command group.
func NewCoverageCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Measure coverage and gate on drift against the baseline",
	}
	cmd.AddCommand(newCoverageCheckCommand(opts))
	cmd.AddCommand(newCoverageRecordCommand(opts))
	return cmd
}

// setup loads config and builds the probe, monitor, and payload for a
// coverage command.
func setup(opts *RootOptions, thresholdFlag float64) (*coverage.Monitor, *artifact.Payload, config.Config, error) {
	cfg, err := config.Load(opts.Root)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	if cfg.CoverageCommand == "" {
		return nil, nil, config.Config{}, errors.New("no coverage_command configured in " + config.Path(opts.Root))
	}

	pol := coverage.Policy{Threshold: cfg.Threshold, ReviewAt: cfg.ReviewAt}
	if thresholdFlag > 0 {
		pol.Threshold = thresholdFlag
		pol.ReviewAt = 0
	}

	probe := &coverage.ExecProbe{
		Command: cfg.CoverageCommand,
		Args:    cfg.CoverageArgs,
		Dir:     opts.Root,
	}

	payload, err := artifact.Load(config.ArtifactPath(opts.Root))
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	return coverage.NewMonitor(probe, pol), payload, cfg, nil
}

func measureCtx(cfg config.Config) (context.Context, context.CancelFunc) {
	if cfg.CoverageTimeoutSeconds <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(cfg.CoverageTimeoutSeconds)*time.Second)
}

func newCoverageCheckCommand(opts *RootOptions) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the coverage probe and classify drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitor, payload, cfg, err := setup(opts, threshold)
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			ctx, cancel := measureCtx(cfg)
			defer cancel()

			assessment, sample, err := monitor.Check(ctx, payload)
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}
			opts.Logger().Debug("coverage measured",
				"percent", sample.Percent, "lines", sample.LinesTotal, "severity", assessment.Severity)

			var out string
			switch opts.Format {
			case "json":
				out, err = report.FormatDriftJSON(assessment)
				if err != nil {
					return &ExitError{Code: ExitOperational, Err: err}
				}
				out += "\n"
			case "ci":
				out = report.FormatDriftCI(assessment)
			default:
				out = report.FormatDriftCLI(assessment)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if assessment.RequiresReview {
				return &ExitError{Code: ExitViolation}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "override the configured drift threshold (percentage points)")
	return cmd
}

func newCoverageRecordCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Measure coverage and record it as the new baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitor, payload, cfg, err := setup(opts, 0)
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			ctx, cancel := measureCtx(cfg)
			defer cancel()

			sample, err := monitor.Record(ctx, payload)
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			if err := payload.Save(config.ArtifactPath(opts.Root)); err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "📈 Baseline recorded: %.1f%% (%d/%d lines)\n",
				sample.Percent, sample.LinesCovered, sample.LinesTotal)
			return nil
		},
	}
}
