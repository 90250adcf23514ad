package taskgraph

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/up42/blockctl/pkg/settings"
	"github.com/up42/blockctl/pkg/util/console"
)

type taskState int

const (
	taskPending taskState = iota
	taskRunning
	taskCompleted
	taskFailed
)

// Execer spawns a task's external command. The argv it receives is fully
// substituted.
type Execer interface {
	Exec(ctx context.Context, task string, argv []string) error
}

// Runner executes tasks from a registry in dependency order, sequentially,
// each at most once per run. A Runner is single-use: make a new one per
// invocation.
type Runner struct {
	registry *Registry
	bindings *settings.Bindings
	execer   Execer
	states   map[string]taskState
	inputs   map[string]map[string]string
}

// NewRunner returns a Runner that spawns real processes. execer may be
// nil, in which case ProcessExecer is used.
func NewRunner(registry *Registry, bindings *settings.Bindings, execer Execer) *Runner {
	if execer == nil {
		execer = ProcessExecer{}
	}
	return &Runner{
		registry: registry,
		bindings: bindings,
		execer:   execer,
		states:   make(map[string]taskState),
		inputs:   make(map[string]map[string]string),
	}
}

// Run executes the named task after all of its prerequisites, depth
// first in declaration order. Every file input in the closure is read
// and checked up front, so a missing or malformed input aborts the run
// before any process is spawned. Any failure aborts the whole run;
// tasks downstream of a failed prerequisite are never invoked.
func (r *Runner) Run(ctx context.Context, name string) error {
	if err := r.readInputs(name); err != nil {
		return err
	}
	return r.run(ctx, name)
}

// readInputs walks the prerequisite closure of the named task and reads
// the declared file inputs into per-task bindings.
func (r *Runner) readInputs(name string) error {
	if _, done := r.inputs[name]; done {
		return nil
	}
	task, ok := r.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}
	r.inputs[name] = nil
	for _, dep := range task.Deps {
		if err := r.readInputs(dep); err != nil {
			return err
		}
	}
	if len(task.Inputs) == 0 {
		return nil
	}
	extra := make(map[string]string, len(task.Inputs))
	for _, input := range task.Inputs {
		content, err := r.readInput(task.Name, input)
		if err != nil {
			return err
		}
		extra[input.BindTo] = string(content)
	}
	r.inputs[name] = extra
	return nil
}

func (r *Runner) run(ctx context.Context, name string) error {
	switch r.states[name] {
	case taskCompleted:
		return nil
	case taskRunning:
		return fmt.Errorf("%w: %q depends on itself", ErrTaskCycle, name)
	}

	task, ok := r.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}

	r.states[name] = taskRunning
	for _, dep := range task.Deps {
		if err := r.run(ctx, dep); err != nil {
			r.states[name] = taskFailed
			return err
		}
	}

	if err := r.runTask(ctx, task); err != nil {
		r.states[name] = taskFailed
		return err
	}
	r.states[name] = taskCompleted
	return nil
}

func (r *Runner) runTask(ctx context.Context, task Task) error {
	bindings := r.bindings
	if extra := r.inputs[task.Name]; len(extra) > 0 {
		bindings = bindings.With(extra)
	}

	console.Debugf("Running task '%s'", task.Name)

	if task.Action != nil {
		if err := task.Action(ctx, bindings); err != nil {
			return fmt.Errorf("task %q: %w", task.Name, err)
		}
	}

	if len(task.Argv) == 0 {
		return nil
	}

	argv, err := substitute(task.Argv, bindings)
	if err != nil {
		return fmt.Errorf("task %q: %w", task.Name, err)
	}
	if err := r.execer.Exec(ctx, task.Name, argv); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return fmt.Errorf("task %q: %w", task.Name, err)
	}
	return nil
}

func (r *Runner) readInput(task string, input FileInput) ([]byte, error) {
	path, ok := r.bindings.Lookup(input.PathKey)
	if !ok {
		return nil, fmt.Errorf("task %q: %w: %s", task, settings.ErrUnboundVariable, input.PathKey)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w: %s (%v)", task, ErrMissingInputFile, path, err)
	}
	if input.Check != nil {
		if err := input.Check(content); err != nil {
			return nil, fmt.Errorf("task %q: %s: %w", task, path, err)
		}
	}
	return content, nil
}

func substitute(argv []string, bindings *settings.Bindings) ([]string, error) {
	out := make([]string, 0, len(argv))
	for _, token := range argv {
		expanded, err := bindings.Expand(token)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
