// Package block defines the task registry for the block workflow: two
// base image builds, the block image build with the manifest embedded as
// a build argument, remote manifest validation, push, login, and running
// the built image with the job configuration injected.
package block

import (
	"context"
	"strings"

	"github.com/up42/blockctl/pkg/api"
	"github.com/up42/blockctl/pkg/docker"
	"github.com/up42/blockctl/pkg/global"
	"github.com/up42/blockctl/pkg/manifest"
	"github.com/up42/blockctl/pkg/settings"
	"github.com/up42/blockctl/pkg/taskgraph"
	"github.com/up42/blockctl/pkg/util/console"
)

const (
	TaskBuildImageESASnap  = "build-image-esa-snap"
	TaskBuildImageUP42Snap = "build-image-up42-snap"
	TaskBuildAll           = "build-all"
	TaskBuild              = "build"
	TaskValidate           = "validate"
	TaskPush               = "push"
	TaskLogin              = "login"
	TaskRun                = "run"
)

// Image is the block image reference template. UID has no default and
// must come from the settings file.
const Image = "${REGISTRY}/${UID}/${DOCKER_TAG}"

// Base image tags, fixed by the two SNAP dockerfiles.
const (
	ESASnapImage  = "up42-esa-snap"
	UP42SnapImage = "up42-snap"
)

// TaskParametersEnvVarName is the environment variable the block reads
// its job configuration from at runtime.
const TaskParametersEnvVarName = "UP42_TASK_PARAMETERS"

// Defaults returns the built-in settings, overridable from the settings
// file.
func Defaults() map[string]string {
	return map[string]string{
		"REGISTRY":             global.DefaultRegistryHost,
		"DOCKER_TAG":           "snap-polarimetric",
		"VALIDATE_ENDPOINT":    global.DefaultValidateEndpoint,
		"MANIFEST_JSON":        "UP42Manifest.json",
		"JOB_CONFIG":           "params.json",
		"ESA_SNAP_DOCKERFILE":  "esa-snap.Dockerfile",
		"UP42_SNAP_DOCKERFILE": "up42-snap.Dockerfile",
		"UP42_DOCKERFILE":      "Dockerfile",
	}
}

// Options tweak how the registry's commands are built.
type Options struct {
	NoCache bool
}

// NewRegistry builds the static task registry against the given
// bindings. The graph is fixed; only the substituted values vary.
func NewRegistry(bindings *settings.Bindings, options Options) (*taskgraph.Registry, error) {
	engine := docker.CommandFromEnvironment()
	runOptions := runOptions(bindings)

	return taskgraph.NewRegistry(
		taskgraph.Task{
			Name: TaskBuildImageESASnap,
			Argv: argv(engine, docker.BuildArgs(docker.BuildOptions{
				Dockerfile: "${ESA_SNAP_DOCKERFILE}",
				ImageName:  ESASnapImage,
				NoCache:    options.NoCache,
			})),
		},
		taskgraph.Task{
			Name: TaskBuildImageUP42Snap,
			Argv: argv(engine, docker.BuildArgs(docker.BuildOptions{
				Dockerfile: "${UP42_SNAP_DOCKERFILE}",
				ImageName:  UP42SnapImage,
				NoCache:    options.NoCache,
			})),
		},
		taskgraph.Task{
			// Aggregate alias over the two base image builds. No command
			// of its own.
			Name: TaskBuildAll,
			Deps: []string{TaskBuildImageESASnap, TaskBuildImageUP42Snap},
		},
		taskgraph.Task{
			Name:   TaskBuild,
			Deps:   []string{TaskBuildAll},
			Inputs: []taskgraph.FileInput{manifestInput()},
			Argv: argv(engine, docker.BuildArgs(docker.BuildOptions{
				Dockerfile: "${UP42_DOCKERFILE}",
				ImageName:  Image,
				BuildArgs:  []string{"manifest=${MANIFEST_BODY}"},
				NoCache:    options.NoCache,
			})),
		},
		taskgraph.Task{
			Name:   TaskValidate,
			Inputs: []taskgraph.FileInput{manifestInput()},
			Action: validateAction,
		},
		taskgraph.Task{
			Name: TaskPush,
			Argv: argv(engine, docker.PushArgs(Image)),
		},
		taskgraph.Task{
			Name:   TaskLogin,
			Action: loginAction,
			Argv:   argv(engine, docker.LoginArgs("${USER}", "${REGISTRY}")),
		},
		taskgraph.Task{
			Name:   TaskRun,
			Deps:   []string{TaskBuild},
			Inputs: []taskgraph.FileInput{jobConfigInput()},
			Argv: argv(engine, docker.RunArgs(docker.RunOptions{
				Options: runOptions,
				Env:     []string{TaskParametersEnvVarName + "=${JOB_CONFIG_BODY}"},
				Image:   Image,
			})),
		},
	)
}

func manifestInput() taskgraph.FileInput {
	return taskgraph.FileInput{
		PathKey: "MANIFEST_JSON",
		BindTo:  "MANIFEST_BODY",
		Check:   manifest.Lint,
	}
}

func jobConfigInput() taskgraph.FileInput {
	return taskgraph.FileInput{
		PathKey: "JOB_CONFIG",
		BindTo:  "JOB_CONFIG_BODY",
		Check:   manifest.Lint,
	}
}

func validateAction(ctx context.Context, bindings *settings.Bindings) error {
	// MANIFEST_BODY is bound by the runner from the MANIFEST_JSON file.
	body := bindings.Get("MANIFEST_BODY")

	if schemaPath, ok := bindings.Lookup("BLOCK_SCHEMA"); ok && schemaPath != "" {
		if err := manifest.ValidateSchema(schemaPath, []byte(body)); err != nil {
			return err
		}
		console.Debugf("Manifest conforms to local schema %s", schemaPath)
	}

	endpoint, err := bindings.Expand("${VALIDATE_ENDPOINT}")
	if err != nil {
		return err
	}
	return api.NewClient(endpoint).ValidateManifest(ctx, []byte(body))
}

func loginAction(_ context.Context, bindings *settings.Bindings) error {
	registryHost, err := bindings.Expand("${REGISTRY}")
	if err != nil {
		return err
	}
	if token, err := docker.LoadLoginToken(registryHost); err == nil && token != "" {
		console.Warnf("Found existing credentials for %s, logging in again", registryHost)
	}
	return nil
}

// runOptions tokenizes DOCKER_RUN_OPTIONS on whitespace, the way the
// engine would have received them from a shell. Unresolved references
// stay in the tokens and fail when the run task substitutes its
// command, so a bad value cannot break unrelated tasks.
func runOptions(bindings *settings.Bindings) []string {
	raw, ok := bindings.Lookup("DOCKER_RUN_OPTIONS")
	if !ok || raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

func argv(engine string, args []string) []string {
	return append([]string{engine}, args...)
}
