package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagegate/internal/lock"
	"stagegate/internal/report"
)

// NewVerifyCommand creates the `stagegate verify` command.
func NewVerifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute digests and diff them against the lock record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := lock.NewManager(opts.Root)

			outcome, err := mgr.Verify()
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			var out string
			switch opts.Format {
			case "json":
				out, err = report.FormatVerifyJSON(outcome)
				if err != nil {
					return &ExitError{Code: ExitOperational, Err: err}
				}
				out += "\n"
			case "ci":
				out = report.FormatVerifyCI(outcome)
			default:
				out = report.FormatVerifyCLI(outcome)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if !outcome.Valid {
				return &ExitError{Code: ExitViolation}
			}
			return nil
		},
	}
}
