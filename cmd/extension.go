package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/capsim/config"
)

// EnvConfig carries the resolved configuration path to extensions, so they
// read the same config as the invoking wcs.
const EnvConfig = "WCS_CONFIG"

// RunExtension looks for an external wcs-<subcommand> binary in PATH and
// executes it, forwarding stdio, the remaining arguments and the
// configuration. It reports whether an extension ran, and its exit code.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "wcs-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}

	ext := exec.Command(lp, args...)
	ext.Stdin = os.Stdin
	ext.Stdout = os.Stdout
	ext.Stderr = os.Stderr
	ext.Env = append(os.Environ(), EnvConfig+"="+path)

	if err := ext.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error: running %s: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
