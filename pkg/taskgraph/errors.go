package taskgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTask is returned for task names not in the registry.
	ErrUnknownTask = errors.New("unknown task")

	// ErrTaskCycle is returned when task prerequisites form a cycle.
	ErrTaskCycle = errors.New("task dependency cycle")

	// ErrMissingInputFile is returned when a task's declared input file
	// is absent or unreadable. The run aborts before the task's command
	// is invoked.
	ErrMissingInputFile = errors.New("missing input file")
)

// ExitError reports a task whose external command exited non-zero. The
// command's own output has already been streamed to the caller's
// stdout/stderr; this error only identifies the failing task.
type ExitError struct {
	Task string
	Argv []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("task %q: %s exited with status %d", e.Task, strings.Join(e.Argv, " "), e.Code)
}
