package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagegate/internal/lock"
)

// NewUnlockCommand creates the `stagegate unlock` command.
func NewUnlockCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Remove the lock record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := lock.NewManager(opts.Root)

			deleted, err := mgr.Unlock()
			if err != nil {
				return &ExitError{Code: ExitOperational, Err: err}
			}

			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "🔓 Lock removed")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No lock present")
			}
			return nil
		},
	}
}
