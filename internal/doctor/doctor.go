package doctor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// DefaultMinNodeMajor is the minimum Node.js major version the engine
// supports.
const DefaultMinNodeMajor = 20

type CheckResult struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

type Report struct {
	OK      bool        `json:"ok"`
	Node    CheckResult `json:"node"`
	Browser CheckResult `json:"browser"`
}

// Check runs both environment probes. It never errors: a failed probe is
// reported in the result, not raised.
func Check(nodeCmd string, minMajor int) Report {
	node := checkNode(nodeCmd, minMajor)
	browser := checkBrowser()
	return Report{
		OK:      node.OK && browser.OK,
		Node:    node,
		Browser: browser,
	}
}

func checkNode(nodeCmd string, minMajor int) CheckResult {
	version, err := runCaptureStdout(nodeCmd, "--version")
	if err != nil {
		return CheckResult{OK: false, Detail: fmt.Sprintf("Node not found or not runnable: %v", err)}
	}
	major, ok := parseNodeMajor(version)
	switch {
	case !ok:
		return CheckResult{OK: false, Detail: fmt.Sprintf("Unrecognized Node version string: %s", version)}
	case major < minMajor:
		return CheckResult{OK: false, Detail: fmt.Sprintf("%s (major %d) is below required %d", version, major, minMajor)}
	default:
		return CheckResult{OK: true, Detail: fmt.Sprintf("%s (>= %d)", version, minMajor)}
	}
}

func runCaptureStdout(program string, args ...string) (string, error) {
	cmd := exec.Command(program, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s failed: %s", program, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// parseNodeMajor extracts the leading major component from strings like
// "v22.14.0" or "20.1.0".
func parseNodeMajor(version string) (int, bool) {
	trimmed := strings.TrimSpace(version)
	trimmed = strings.TrimPrefix(trimmed, "v")
	majorText, _, _ := strings.Cut(trimmed, ".")
	major, err := strconv.Atoi(majorText)
	if err != nil {
		return 0, false
	}
	return major, true
}

var windowsBrowserPaths = []string{
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
	`C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`,
}

var darwinBrowserPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
}

var browserCommandNames = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}

func checkBrowser() CheckResult {
	switch runtime.GOOS {
	case "windows":
		if path, ok := findFirstExisting(windowsBrowserPaths); ok {
			return CheckResult{OK: true, Detail: path}
		}
	case "darwin":
		if path, ok := findFirstExisting(darwinBrowserPaths); ok {
			return CheckResult{OK: true, Detail: path}
		}
		if path, ok := findFirstInPath(browserCommandNames); ok {
			return CheckResult{OK: true, Detail: path}
		}
	default:
		if path, ok := findFirstInPath(browserCommandNames); ok {
			return CheckResult{OK: true, Detail: path}
		}
	}
	return CheckResult{OK: false, Detail: "No supported browser executable found (Chrome/Edge/Brave)"}
}

func findFirstExisting(paths []string) (string, bool) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func findFirstInPath(names []string) (string, bool) {
	for _, n := range names {
		if p, err := exec.LookPath(n); err == nil {
			return p, true
		}
	}
	return "", false
}
