package taskgraph

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/up42/blockctl/pkg/util/console"
)

// ProcessExecer runs a task's command as a child process with the
// caller's stdin/stdout/stderr, so engine logs stream live. A non-zero
// exit is reported as an *ExitError; the child's own diagnostics are
// never swallowed or reformatted.
type ProcessExecer struct{}

func (ProcessExecer) Exec(ctx context.Context, task string, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Task: task, Argv: argv, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("starting %s: %w", argv[0], err)
}
