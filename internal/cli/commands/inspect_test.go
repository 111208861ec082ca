package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeStatLog(t, dir, "container.log", testLog)

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{path})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Version: 1.1.6") {
		t.Errorf("output missing metadata:\n%s", out)
	}
	if !strings.Contains(out, "samples: 3") {
		t.Errorf("output missing sample count:\n%s", out)
	}
}

func TestRunInspect_MissingFile(t *testing.T) {
	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"/nonexistent/container.log"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunInspect_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeStatLog(t, dir, "broken.log", "---\nVersion: 1.1.6\n")

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{path})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for file without header terminator")
	}
}
