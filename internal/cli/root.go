// Package cli wires the stagegate commands. The CLI is a thin host
// surface: locking, verification, and coverage policy live in the core
// packages, and command handlers only map their results to output and
// process exit codes.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"stagegate/internal/logging"
)

// Exit codes exposed to hosting surfaces.
const (
	ExitOK          = 0 // Operation succeeded, no violation
	ExitViolation   = 1 // Tamper detected or review gate tripped
	ExitOperational = 2 // I/O, process, or measurement failure
	ExitUsage       = 3 // Bad invocation
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "ci"}

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Root    string // Project root directory
	Format  string // "text" | "json" | "ci"
	Verbose bool
}

// Logger returns the command logger: debug to stderr when verbose,
// silent otherwise.
func (o *RootOptions) Logger() *slog.Logger {
	if o.Verbose {
		return logging.New(os.Stderr, logging.LevelDebug)
	}
	return logging.Discard()
}

// ExitError carries a process exit code up through cobra. A nil Err means
// the command already rendered its output and only the code matters.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewRootCommand creates the stagegate command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stagegate",
		Short: "Tamper-evident spec locks and coverage drift gating",
		Long: "stagegate freezes approved test files behind content digests, detects\n" +
			"any later modification, and gates progress on coverage drift against a\n" +
			"recorded baseline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Root, "root", ".", "project root directory")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|ci)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewLockCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewUnlockCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewCoverageCommand(opts))

	return cmd
}

// Execute runs the command tree and maps errors to exit codes.
func Execute(args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, "Error:", exitErr.Err)
			}
			return exitErr.Code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitUsage
	}
	return ExitOK
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
