package main

import (
	"errors"
	"os"

	"github.com/up42/blockctl/pkg/cli"
	"github.com/up42/blockctl/pkg/taskgraph"
	"github.com/up42/blockctl/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Errorf("%s", err)

		// Propagate the failed task's exit code.
		var exitErr *taskgraph.ExitError
		if errors.As(err, &exitErr) && exitErr.Code > 0 {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
