package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
)

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:        block.TaskLogin,
		SuggestFor: []string{"auth", "authenticate", "authorize"},
		Short:      "Log in to the block registry",
		Long: `Log in to the block registry.

The username comes from the USER environment variable unless the
settings file defines one; the password prompt is the engine's own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runTask(cmd, block.TaskLogin, block.Options{})
			return err
		},
	}
}
