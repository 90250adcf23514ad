package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
	"github.com/up42/blockctl/pkg/global"
	"github.com/up42/blockctl/pkg/settings"
	"github.com/up42/blockctl/pkg/taskgraph"
	"github.com/up42/blockctl/pkg/util/console"
	"github.com/up42/blockctl/pkg/util/files"
)

var (
	settingsFlag string
	timeoutFlag  time.Duration
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "blockctl",
		Short:   "Build, validate, push and run UP42 processing block images",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		// Errors are printed in cmd/blockctl/main.go, with the exit code
		// of the failed task.
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newBuildImageESASnapCommand(),
		newBuildImageUP42SnapCommand(),
		newBuildAllCommand(),
		newBuildCommand(),
		newValidateCommand(),
		newPushCommand(),
		newLoginCommand(),
		newRunCommand(),
		newTasksCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVarP(&settingsFlag, "settings", "s", "", "Path to the settings file (default "+global.SettingsFilename+" in the current directory)")
	cmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Abort the run and kill the active task after this duration (no timeout by default)")
}

// loadBindings resolves the settings once per invocation. A missing
// default settings file is fine (defaults plus environment apply); a
// missing file passed via --settings is an error.
func loadBindings() (*settings.Bindings, error) {
	path := settingsFlag
	if path == "" {
		path = global.SettingsFilename
		exists, err := files.Exists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			console.Debugf("No %s found, using built-in defaults and the environment", path)
			return settings.Parse(nil, block.Defaults(), os.LookupEnv)
		}
	}
	bindings, err := settings.Load(path, block.Defaults())
	if err != nil {
		return nil, err
	}
	console.Debugf("Loaded settings from %s: %s", path, strings.Join(bindings.Keys(), ", "))
	return bindings, nil
}

// runTask runs the named task with its full prerequisite closure and
// returns the bindings so commands can print substituted values in
// their success messages.
func runTask(cmd *cobra.Command, name string, options block.Options) (*settings.Bindings, error) {
	bindings, err := loadBindings()
	if err != nil {
		return nil, err
	}
	registry, err := block.NewRegistry(bindings, options)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeoutFlag)
		defer cancel()
	}

	runner := taskgraph.NewRunner(registry, bindings, nil)
	if err := runner.Run(ctx, name); err != nil {
		return nil, err
	}
	return bindings, nil
}
