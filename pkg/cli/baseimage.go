package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
	"github.com/up42/blockctl/pkg/util/console"
)

func newBuildImageESASnapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   block.TaskBuildImageESASnap,
		Short: "Build the ESA SNAP base image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runTask(cmd, block.TaskBuildImageESASnap, buildOptions()); err != nil {
				return err
			}
			console.Infof("\nImage built as %s", block.ESASnapImage)
			return nil
		},
	}
	addNoCacheFlag(cmd)
	return cmd
}

func newBuildImageUP42SnapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   block.TaskBuildImageUP42Snap,
		Short: "Build the UP42 SNAP base image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runTask(cmd, block.TaskBuildImageUP42Snap, buildOptions()); err != nil {
				return err
			}
			console.Infof("\nImage built as %s", block.UP42SnapImage)
			return nil
		},
	}
	addNoCacheFlag(cmd)
	return cmd
}

func newBuildAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   block.TaskBuildAll,
		Short: "Build both SNAP base images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runTask(cmd, block.TaskBuildAll, buildOptions())
			return err
		},
	}
	addNoCacheFlag(cmd)
	return cmd
}
