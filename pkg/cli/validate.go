package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
	"github.com/up42/blockctl/pkg/util/console"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   block.TaskValidate,
		Short: "Validate the manifest against the block schema endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := runTask(cmd, block.TaskValidate, block.Options{})
			if err != nil {
				return err
			}
			console.Infof("Manifest '%s' is valid", bindings.Get("MANIFEST_JSON"))
			return nil
		},
	}
}
