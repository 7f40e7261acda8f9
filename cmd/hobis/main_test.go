package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

// hobisBin is the path to the compiled binary, set by TestMain.
var hobisBin string

func TestMain(m *testing.M) {
	// Build binary once for all tests.
	tmp, err := os.MkdirTemp("", "hobis-cli-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}

	hobisBin = filepath.Join(tmp, "hobis")
	cmd := exec.Command("go", "build", "-o", hobisBin, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.RemoveAll(tmp)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// =============================================================================
// Helpers
// =============================================================================

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// runHobis executes the binary with args and returns stdout, stderr, exit code.
func runHobis(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(hobisBin, args...)
	cmd.Env = append(os.Environ(), "HOBIS_DATA=")

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("exec error (not ExitError): %v", err)
		}
	}
	return
}

const cobaltDoc = `QSA:
  - id: Co-60
    halfLife: {value: 5.27, unit: y}
    gamma: %s
    hvl: {Lead: 12.7}
`

// =============================================================================
// Exit codes
// =============================================================================

func TestExit_OK(t *testing.T) {
	stdout, stderr, exit := runHobis(t, "hvl", "QSA", "Co-60", "Lead")
	if exit != 0 {
		t.Fatalf("exit %d, stderr: %s", exit, stderr)
	}
	if stdout != "12.7\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestExit_LookupMiss(t *testing.T) {
	for _, args := range [][]string{
		{"isotopes", "NIST"},
		{"show", "QSA", "Unobtainium"},
		{"hvl", "ICRP107", "Se-75", "Tungsten"},
	} {
		_, stderr, exit := runHobis(t, args...)
		if exit != 2 {
			t.Errorf("%v: exit %d, want 2", args, exit)
		}
		if !strings.HasPrefix(stderr, "error: ") {
			t.Errorf("%v: stderr = %q", args, stderr)
		}
	}
}

func TestExit_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, fmt.Sprintf(cobaltDoc, "0"))

	stdout, _, exit := runHobis(t, "--data", path, "validate")
	if exit != 3 {
		t.Fatalf("validate: exit %d, want 3", exit)
	}
	if !strings.Contains(stdout, "QSA/Co-60.gamma") {
		t.Errorf("validate output missing violation:\n%s", stdout)
	}

	_, stderr, exit := runHobis(t, "--data", path, "datasets")
	if exit != 3 {
		t.Errorf("datasets: exit %d, want 3", exit)
	}
	if !strings.Contains(stderr, "failed validation") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExit_UsageError(t *testing.T) {
	_, _, exit := runHobis(t, "hvl", "QSA")
	if exit != 1 {
		t.Errorf("exit %d, want 1", exit)
	}
}

// =============================================================================
// watch
// =============================================================================

func TestWatch_ReloadsAndRejects(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "reference.yaml")
	logFile := filepath.Join(dir, "log", "reload.log")
	writeFile(t, data, fmt.Sprintf(cobaltDoc, "13.0"))

	cmd := exec.Command(hobisBin, "--data", data, "watch",
		"--log-file", logFile, "--debounce", "20ms")
	var out strings.Builder
	cmd.Stdout = &out
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	defer cmd.Process.Kill()

	waitForLog := func(want string) {
		t.Helper()
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			if b, err := os.ReadFile(logFile); err == nil && strings.Contains(string(b), want) {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		b, _ := os.ReadFile(logFile)
		t.Fatalf("log never contained %q:\n%s", want, b)
	}

	waitForLog("watching " + data)

	writeFile(t, data, fmt.Sprintf(cobaltDoc, "13.5"))
	waitForLog("revision 2:")

	writeFile(t, data, fmt.Sprintf(cobaltDoc, "-1"))
	waitForLog("reload rejected, keeping revision 2")

	if err := cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("watch did not exit cleanly: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "watching "+data+" (revision 1)") {
		t.Errorf("stdout = %q", out.String())
	}
}
