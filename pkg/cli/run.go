package cli

import (
	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   block.TaskRun,
		Short: "Run the block image with the job configuration injected",
		Long: `Run the block image with the job configuration injected.

The JOB_CONFIG file's content is passed to the container through the
` + block.TaskParametersEnvVarName + ` environment variable. Extra engine
options come from DOCKER_RUN_OPTIONS in the settings file. The image is
rebuilt first if needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runTask(cmd, block.TaskRun, buildOptions())
			return err
		},
	}
	addNoCacheFlag(cmd)
	return cmd
}
