package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stagegate/internal/digest"
	"stagegate/internal/lock"
)

// NewLockCommand creates the `stagegate lock` command.
func NewLockCommand(opts *RootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "lock <file>...",
		Short: "Freeze files behind content digests under a subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := lock.NewManager(opts.Root)

			var subj lock.Subject
			if subject != "" {
				subj = lock.SubjectID(subject)
			} else {
				subj = uuid.New()
			}

			rec, err := mgr.Lock(subj, args)
			if err != nil {
				if errors.Is(err, digest.ErrNotFound) {
					return &ExitError{Code: ExitViolation, Err: err}
				}
				return &ExitError{Code: ExitOperational, Err: err}
			}

			opts.Logger().Info("lock taken", "subject", rec.SubjectID, "files", len(rec.Entries))
			fmt.Fprintf(cmd.OutOrStdout(), "🔒 Locked %d file(s) under subject %s\n", len(rec.Entries), rec.SubjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject identifier (a uuid is generated when omitted)")
	return cmd
}
