package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/radlog/radlog/pkg/config"
)

const testLog = `---
Version: 1.1.6
PolledAt: 1585108205642212219
---
read,pids.current,pids.max
read,pids.current,pids.max
100000000,3,max
150000000,3,max
200000000,3,max
`

func writeStatLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetExitCode(t *testing.T) {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	if cmd.Use != "check [dir]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	// Check flags exist
	flags := []string{"root", "config", "ext", "output", "remove-outliers", "z", "verbose", "quiet", "webhook-url"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestRunCheck(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	writeStatLog(t, dir, "container.log", testLog)

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{dir})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	out := buf.String()
	if !strings.Contains(out, "read deltas (ms)") {
		t.Errorf("output missing statistics table:\n%s", out)
	}
	if !strings.Contains(out, "50.000000") {
		t.Errorf("output missing 50ms mean:\n%s", out)
	}
}

func TestRunCheck_JSONOutput(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	writeStatLog(t, dir, "container.log", testLog)

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{dir, "--output", "json", "--quiet"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
}

func TestRunCheck_BadFileDoesNotAbortBatch(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	// "a" sorts before "b": the broken file is hit first, the good one
	// must still be processed.
	writeStatLog(t, dir, "a.log", "---\nVersion: 1.1.6\n")
	writeStatLog(t, dir, "b.log", testLog)

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{dir})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1 after a skipped file", ExitCode)
	}
	if !strings.Contains(buf.String(), "b.log") {
		t.Errorf("good sibling not processed:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "a.log") {
		t.Errorf("broken file should not produce a report:\n%s", buf.String())
	}
}

func TestRunCheck_EmptyDirectory(t *testing.T) {
	resetExitCode(t)

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{t.TempDir()})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Errorf("check of an empty directory should succeed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunCheck_InvalidOutputFormat(t *testing.T) {
	resetExitCode(t)

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{t.TempDir(), "--output", "xml"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for invalid output format")
	}
}

func TestRunCheck_ConfigFile(t *testing.T) {
	resetExitCode(t)
	dir := t.TempDir()
	writeStatLog(t, dir, "container.log", testLog)

	configPath := filepath.Join(t.TempDir(), "radlog.yaml")
	cfg := "root: " + dir + "\noutput: json\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewCheckCommand()
	cmd.SetArgs([]string{"--config", configPath, "--quiet"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("config file output format not honored:\n%s", buf.String())
	}
}

func TestResolveConfig_FlagsWin(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "radlog.yaml")
	if err := os.WriteFile(configPath, []byte("output: json\nz: 3.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := &CheckOptions{Config: configPath}
	cmd := NewCheckCommand()
	if err := cmd.Flags().Set("output", "text"); err != nil {
		t.Fatal(err)
	}
	opts.Output = "text"

	cfg, err := resolveConfig(context.Background(), cmd, nil, opts)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want flag override text", cfg.Output)
	}
	if cfg.Z != 3.0 {
		t.Errorf("Z = %v, want config file value 3.0", cfg.Z)
	}
}

func TestResolveRoot_DefaultsToCwd(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	root, err := resolveRoot("")
	if err != nil {
		t.Fatalf("resolveRoot() error = %v", err)
	}
	if root != cwd {
		t.Errorf("resolveRoot(\"\") = %q, want %q", root, cwd)
	}
}

func TestShouldFireWebhook(t *testing.T) {
	cases := []struct {
		trigger   config.WebhookTrigger
		hasIssues bool
		want      bool
	}{
		{config.WebhookTriggerAlways, false, true},
		{config.WebhookTriggerAlways, true, true},
		{config.WebhookTriggerNever, true, false},
		{config.WebhookTriggerOnIssues, false, false},
		{config.WebhookTriggerOnIssues, true, true},
	}
	for _, tc := range cases {
		if got := shouldFireWebhook(tc.trigger, tc.hasIssues); got != tc.want {
			t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v", tc.trigger, tc.hasIssues, got, tc.want)
		}
	}
}

func TestCollectWebhooks_MergesCLI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Webhooks = []config.WebhookConfig{{Name: "file", URL: "https://example.com/a"}}

	opts := &CheckOptions{
		WebhookURL:     "https://example.com/b",
		WebhookTrigger: "always",
	}

	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) != 2 {
		t.Fatalf("got %d webhooks, want 2", len(webhooks))
	}
	if webhooks[1].Name != "cli" || webhooks[1].Trigger != config.WebhookTriggerAlways {
		t.Errorf("CLI webhook = %+v", webhooks[1])
	}
}
