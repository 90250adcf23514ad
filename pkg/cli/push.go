package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
	"github.com/up42/blockctl/pkg/util/console"
)

func newPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   block.TaskPush,
		Short: "Push the block image to the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := runTask(cmd, block.TaskPush, block.Options{})
			if err != nil {
				return err
			}

			image, err := bindings.Expand(block.Image)
			if err != nil {
				return err
			}
			console.Infof("\nImage '%s' pushed", image)
			return nil
		},
	}
}
