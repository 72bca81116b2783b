package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagegate/internal/lock"
)

// NewStatusCommand creates the `stagegate status` command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current lock, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := lock.NewManager(opts.Root)

			rec, ok, err := mgr.Get()
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No lock present")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "🔒 Locked: %d file(s) under subject %s\n", len(rec.Entries), rec.SubjectID)
			fmt.Fprintf(cmd.OutOrStdout(), "   since %s\n", rec.LockedAt.Format("2006-01-02T15:04:05+00:00"))
			return nil
		},
	}
}
