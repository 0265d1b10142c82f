package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsontree/pkg/observability"
)

// captureStdout redirects status lines into a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// runCLI executes the root command with args and returns what the command
// wrote to its output stream.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIStatus(t, stdin, args...)
	return out, err
}

// runCLIStatus is runCLI that also returns the status lines.
func runCLIStatus(t *testing.T, stdin string, args ...string) (out, status string, err error) {
	t.Helper()
	statusBuf := captureStdout(t)
	t.Cleanup(observability.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var outBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(io.Discard)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), statusBuf.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
