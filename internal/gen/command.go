package gen

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/help"
	"github.com/reeflective/structcli/internal/schema"
)

// RunFunc runs a command with the values parsed for its tree.
type RunFunc func(cmd *cobra.Command, parsed Parsed) error

// Bind registers the flags of tree on cmd and sets its help function,
// argument checks and run function. Usage errors are written to the
// command error output and returned; other errors are only returned.
func Bind(cmd *cobra.Command, tree *schema.Tree, run RunFunc) error {
	bindings, err := register(cmd.Flags(), tree)
	if err != nil {
		return err
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.Flags().SortFlags = false

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		_ = help.New(c.CommandPath()).Write(c.OutOrStdout(), tree)
	})

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, tree, flagError(err, c.Flags()))
	})

	cmd.Args = func(c *cobra.Command, args []string) error {
		return usageError(c, tree, checkArgs(args))
	}

	cmd.RunE = func(c *cobra.Command, _ []string) error {
		parsed, err := collect(bindings)
		if err != nil {
			return usageError(c, tree, err)
		}

		return run(c, parsed)
	}

	return nil
}

// usageError writes usage errors to the command error output.
func usageError(cmd *cobra.Command, tree *schema.Tree, err error) error {
	var usage *errors.UsageError
	if !stderrors.As(err, &usage) {
		return err
	}

	_ = help.New(cmd.CommandPath()).WriteError(cmd.ErrOrStderr(), tree, usage)

	return err
}
