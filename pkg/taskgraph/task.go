// Package taskgraph runs named tasks in dependency order. Each task maps
// to one external command invocation (or an in-process action), and a
// run executes the requested task's full prerequisite closure, each task
// at most once.
package taskgraph

import (
	"context"
	"fmt"

	"github.com/up42/blockctl/pkg/settings"
)

// Task is a named unit of work. Argv is the command template; tokens may
// contain ${KEY} references substituted from the bindings at execution
// time. Action, if set, runs before the command; a task with an Action
// and no Argv is fully in-process, and a task with neither is an
// aggregate alias over its prerequisites.
type Task struct {
	Name   string
	Deps   []string
	Argv   []string
	Action func(ctx context.Context, bindings *settings.Bindings) error
	Inputs []FileInput
}

// FileInput declares a file the task consumes. PathKey is the settings
// key holding the file's path; the file content is bound to BindTo
// before command substitution. Check, if set, inspects the content
// before the task may proceed.
type FileInput struct {
	PathKey string
	BindTo  string
	Check   func(content []byte) error
}

// Registry is a static, validated set of tasks. Construction rejects
// duplicate names, prerequisites naming unknown tasks, and dependency
// cycles, so traversal at run time cannot fail structurally.
type Registry struct {
	order []string
	tasks map[string]Task
}

// NewRegistry builds and validates a Registry.
func NewRegistry(tasks ...Task) (*Registry, error) {
	r := &Registry{tasks: make(map[string]Task, len(tasks))}
	for _, task := range tasks {
		if task.Name == "" {
			return nil, fmt.Errorf("task name is required")
		}
		if _, exists := r.tasks[task.Name]; exists {
			return nil, fmt.Errorf("duplicate task name: %q", task.Name)
		}
		r.tasks[task.Name] = task
		r.order = append(r.order, task.Name)
	}

	for _, name := range r.order {
		for _, dep := range r.tasks[name].Deps {
			if _, ok := r.tasks[dep]; !ok {
				return nil, fmt.Errorf("task %q: %w: %q", name, ErrUnknownTask, dep)
			}
		}
	}

	if err := r.checkAcyclic(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns a task by name.
func (r *Registry) Lookup(name string) (Task, bool) {
	task, ok := r.tasks[name]
	return task, ok
}

// Names returns the task names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	color := make(map[string]int, len(r.tasks))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch color[name] {
		case done:
			return nil
		case visiting:
			cycle := append(append([]string{}, path...), name)
			return fmt.Errorf("%w: %v", ErrTaskCycle, cycle)
		}
		color[name] = visiting
		for _, dep := range r.tasks[name].Deps {
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		color[name] = done
		return nil
	}

	for _, name := range r.order {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}
