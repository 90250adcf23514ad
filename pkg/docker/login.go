package docker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/docker/cli/cli/config"

	"github.com/up42/blockctl/pkg/util/console"
)

type credentialHelperInput struct {
	Username  string
	Secret    string
	ServerURL string
}

// LoadLoginToken returns the credential Docker already stores for
// registryHost, or "" when there is none. Depending on the local Docker
// setup the credential lives either in config.json directly or behind a
// docker-credential-* helper.
func LoadLoginToken(registryHost string) (string, error) {
	conf := config.LoadDefaultConfigFile(os.Stderr)
	if conf.CredentialsStore == "" {
		return conf.AuthConfigs[registryHost].Password, nil
	}
	return loadAuthFromCredentialsStore(conf.CredentialsStore, registryHost)
}

func loadAuthFromCredentialsStore(credsStore string, registryHost string) (string, error) {
	var out strings.Builder
	binary := "docker-credential-" + credsStore
	cmd := exec.Command(binary, "get")
	cmd.Env = os.Environ()
	cmd.Stdout = &out
	cmd.Stderr = &out
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("connecting stdin to %s: %w", binary, err)
	}
	defer stdin.Close()
	console.Debug("$ " + strings.Join(cmd.Args, " "))
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("starting %s: %w", binary, err)
	}
	if _, err := io.WriteString(stdin, registryHost); err != nil {
		return "", err
	}
	if err := stdin.Close(); err != nil {
		return "", err
	}
	if err := cmd.Wait(); err != nil {
		// The helper exits non-zero when it has no credential for the host.
		return "", nil
	}

	var helperOutput credentialHelperInput
	if err := json.Unmarshal([]byte(out.String()), &helperOutput); err != nil {
		return "", fmt.Errorf("parsing %s output: %w", binary, err)
	}
	return helperOutput.Secret, nil
}
