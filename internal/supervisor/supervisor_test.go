//go:build unix

package supervisor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeScript creates an executable shell script in a temp dir and
// returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "child.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runWithTimeout(t *testing.T, cfg RunConfig) int {
	t.Helper()
	resultCh := make(chan int, 1)
	go func() { resultCh <- Run(cfg) }()
	select {
	case code := <-resultCh:
		return code
	case <-time.After(10 * time.Second):
		t.Fatal("supervisor run timed out")
		return -1
	}
}

func TestRunForwardsChildExitCode(t *testing.T) {
	script := writeScript(t, "exit 42\n")
	code := runWithTimeout(t, RunConfig{
		Command: []string{"/bin/sh", script},
		Prompt:  "assword:",
	})
	if code != 42 {
		t.Fatalf("got exit code %d, want 42", code)
	}
}

func TestRunInjectsPasswordAndPassesOutputThrough(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	script := writeScript(t, `printf 'assword: '
read line
echo ""
echo "hello"
`)

	code := runWithTimeout(t, RunConfig{
		Command:  []string{"/bin/sh", script},
		Password: []byte("testpass123"),
		Prompt:   "assword:",
	})
	w.Close()

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	out := string(buf[:n])

	if code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected output to contain %q, got %q", "hello", out)
	}
	if strings.Contains(out, "testpass123") {
		t.Fatalf("password leaked into output: %q", out)
	}
}
