package docker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		options  BuildOptions
		expected []string
	}{
		{
			name: "basic build",
			options: BuildOptions{
				Dockerfile: "Dockerfile",
				ImageName:  "some-image",
			},
			expected: []string{
				"build",
				"--file", "Dockerfile",
				"--tag", "some-image",
				".",
			},
		},
		{
			name: "with build args",
			options: BuildOptions{
				Dockerfile: "Dockerfile",
				ImageName:  "some-image",
				BuildArgs:  []string{"manifest=${MANIFEST_BODY}"},
			},
			expected: []string{
				"build",
				"--file", "Dockerfile",
				"--build-arg", "manifest=${MANIFEST_BODY}",
				"--tag", "some-image",
				".",
			},
		},
		{
			name: "with no cache",
			options: BuildOptions{
				Dockerfile: "Dockerfile",
				ImageName:  "some-image",
				NoCache:    true,
			},
			expected: []string{
				"build",
				"--no-cache",
				"--file", "Dockerfile",
				"--tag", "some-image",
				".",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, BuildArgs(tt.options))
		})
	}
}

func TestPushArgs(t *testing.T) {
	require.Equal(t, []string{"push", "registry.example.com/acme/v1"}, PushArgs("registry.example.com/acme/v1"))
}

func TestLoginArgs(t *testing.T) {
	require.Equal(t, []string{"login", "--username", "jane", "registry.example.com"}, LoginArgs("jane", "registry.example.com"))
}

func TestRunArgs(t *testing.T) {
	args := RunArgs(RunOptions{
		Options: []string{"--rm", "--volume", "/tmp:/data"},
		Env:     []string{"UP42_TASK_PARAMETERS={}"},
		Image:   "registry.example.com/acme/v1",
	})
	require.Equal(t, []string{
		"run",
		"--rm",
		"--volume", "/tmp:/data",
		"--env", "UP42_TASK_PARAMETERS={}",
		"registry.example.com/acme/v1",
	}, args)
}

func TestCommandFromEnvironment(t *testing.T) {
	t.Setenv(DockerCommandEnvVarName, "")
	require.Equal(t, "docker", CommandFromEnvironment())

	t.Setenv(DockerCommandEnvVarName, "podman")
	require.Equal(t, "podman", CommandFromEnvironment())
}
