package engine

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// Runner invokes the engine entry point in the foreground, inheriting the
// caller's standard streams.
type Runner struct {
	// Runtime is the command used to execute the entry point (NODE_CMD).
	Runtime string
}

func NewRunner(runtime string) Runner {
	return Runner{Runtime: runtime}
}

// RunStatus spawns `<runtime> <entry> args...`, blocks until exit, and
// reports success plus the exit code when one is available (-1 otherwise,
// e.g. when the process was killed by a signal).
func (r Runner) RunStatus(entry string, args []string) (bool, int, error) {
	cmd := exec.Command(r.Runtime, append([]string{entry}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return runStatus(cmd)
}

// RunStatusSilent runs like RunStatus but swallows the engine's streams;
// used when the caller prints a structured report instead of passing output
// through live.
func (r Runner) RunStatusSilent(entry string, args []string) (bool, int, error) {
	cmd := exec.Command(r.Runtime, append([]string{entry}, args...)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return runStatus(cmd)
}

func runStatus(cmd *exec.Cmd) (bool, int, error) {
	err := cmd.Run()
	if err == nil {
		return true, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, exitErr.ExitCode(), nil
	}
	return false, -1, err
}

// RunReport is the --json answer for orchestrated runs.
type RunReport struct {
	SchemaVersion int         `json:"schema_version"`
	Mode          string      `json:"mode"`
	ManifestPath  string      `json:"manifest_path"`
	EntryPath     string      `json:"entry_path"`
	ForwardedArgs []string    `json:"forwarded_args"`
	Success       bool        `json:"success"`
	ExitCode      *int        `json:"exit_code"`
	CacheLayout   CacheLayout `json:"cache_layout"`
}
