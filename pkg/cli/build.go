package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
	"github.com/up42/blockctl/pkg/util/console"
)

var buildNoCache bool

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   block.TaskBuild,
		Short: "Build the block image, embedding the manifest as a build argument",
		Args:  cobra.NoArgs,
		RunE:  buildCommand,
	}
	addNoCacheFlag(cmd)
	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	bindings, err := runTask(cmd, block.TaskBuild, buildOptions())
	if err != nil {
		return err
	}

	image, err := bindings.Expand(block.Image)
	if err != nil {
		return err
	}
	console.Infof("\nImage built as %s", image)
	return nil
}

func buildOptions() block.Options {
	return block.Options{NoCache: buildNoCache}
}

func addNoCacheFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Do not use cache when building the image")
}
