package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix prefixes the executables that extend spn with new
// subcommands: 'spn foo' runs 'spn-foo' found in PATH.
const ExtensionPrefix = "spn-"

// extensionEnv returns the environment of an extension: the current one plus
// the global flags.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvLedgerFile+"="+app.LedgerFile)
	env = append(env, EnvBackend+"="+app.Backend)
	env = append(env, EnvCurrency+"="+app.Currency)
	env = append(env, EnvCategories+"="+app.Categories)
	env = append(env, EnvStrict+"="+strconv.FormatBool(app.Strict))
	env = append(env, EnvPlain+"="+strconv.FormatBool(app.Plain))
	env = append(env, EnvVerbose+"="+strconv.FormatBool(app.Verbose))
	return env
}

// RunExtension attempts to find and execute an external spn-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
