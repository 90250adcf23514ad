package docker

import "os"

// DockerCommandEnvVarName overrides the container engine binary, mostly
// so tests can substitute something harmless like "echo".
const DockerCommandEnvVarName = "BLOCKCTL_DOCKER_COMMAND"

func CommandFromEnvironment() string {
	command := os.Getenv(DockerCommandEnvVarName)
	if command == "" {
		command = "docker"
	}
	return command
}
