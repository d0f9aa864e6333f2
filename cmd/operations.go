package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"syscli/internal/dispatch"
)

// newOperationCmd builds the subcommand for op. Running it only records the
// selection; the handler itself is invoked by Run once parsing has finished.
func newOperationCmd(op dispatch.Operation, selected **dispatch.InvocationArguments) *cobra.Command {
	return &cobra.Command{
		Use:   op.String(),
		Short: op.Summary(),
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*selected = &dispatch.InvocationArguments{Op: op}
			return nil
		},
	}
}

// noArgs rejects positional arguments after an operation subcommand.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &dispatch.UsageError{
			Msg: fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), args),
		}
	}
	return nil
}
