// Package docker builds argument vectors for the container engine and
// reads Docker's stored credentials. It never spawns the engine itself;
// the task runner does that, so every invocation goes through one
// executor.
package docker

type BuildOptions struct {
	Dockerfile string
	ImageName  string
	BuildArgs  []string // KEY=VALUE pairs
	NoCache    bool
}

func BuildArgs(options BuildOptions) []string {
	args := []string{"build"}
	if options.NoCache {
		args = append(args, "--no-cache")
	}
	if options.Dockerfile != "" {
		args = append(args, "--file", options.Dockerfile)
	}
	for _, buildArg := range options.BuildArgs {
		args = append(args, "--build-arg", buildArg)
	}
	args = append(args, "--tag", options.ImageName, ".")
	return args
}

func PushArgs(image string) []string {
	return []string{"push", image}
}

func LoginArgs(username string, registryHost string) []string {
	return []string{"login", "--username", username, registryHost}
}

type RunOptions struct {
	Options []string // caller-supplied engine options, already tokenized
	Env     []string // KEY=VALUE pairs injected into the container
	Image   string
}

func RunArgs(options RunOptions) []string {
	args := []string{"run"}
	args = append(args, options.Options...)
	for _, env := range options.Env {
		args = append(args, "--env", env)
	}
	args = append(args, options.Image)
	return args
}
