package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/up42/blockctl/pkg/block"
)

func newTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks and their prerequisites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := loadBindings()
			if err != nil {
				return err
			}
			registry, err := block.NewRegistry(bindings, block.Options{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range registry.Names() {
				task, _ := registry.Lookup(name)
				if len(task.Deps) > 0 {
					fmt.Fprintf(out, "%-24s (requires %s)\n", name, strings.Join(task.Deps, ", "))
				} else {
					fmt.Fprintln(out, name)
				}
			}
			return nil
		},
	}
}
