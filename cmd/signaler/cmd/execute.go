package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	errUsage = errors.New("usage")

	// errFailed marks a failure whose message has already been printed;
	// Execute maps it to exit code 1 without extra noise.
	errFailed = errors.New("failed")
)

func Execute() int {
	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		if errors.Is(err, errFailed) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = root.Help()
			return 2
		}
		return 1
	}
	return 0
}
