package cmd

import (
	"bytes"
	"errors"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestUpdate_CheckSucceeds(t *testing.T) {
	t.Setenv("SIGNALER_CACHE_DIR", t.TempDir())

	out, err := runCommand(t, "update", "--check")
	if err != nil {
		t.Fatalf("update --check: %v", err)
	}
	if want := "update: not implemented"; !bytes.Contains([]byte(out), []byte(want)) {
		t.Fatalf("output %q missing %q", out, want)
	}
}

func TestUpdate_BareFails(t *testing.T) {
	t.Setenv("SIGNALER_CACHE_DIR", t.TempDir())

	out, err := runCommand(t, "update")
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if want := "update: not implemented"; !bytes.Contains([]byte(out), []byte(want)) {
		t.Fatalf("output %q missing %q", out, want)
	}
}

func TestRoot_NoArgsIsUsage(t *testing.T) {
	_, err := runCommand(t)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
}

func TestEnginePath_NotFound(t *testing.T) {
	t.Setenv("SIGNALER_CACHE_DIR", t.TempDir())

	_, err := runCommand(t, "engine", "path")
	if err == nil {
		t.Fatalf("expected resolution failure with empty cache")
	}
}
