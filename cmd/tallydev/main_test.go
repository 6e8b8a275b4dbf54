package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tally/internal/devtask"
	"tally/internal/testsupport"
)

func runDevCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootExposesEveryTask(t *testing.T) {
	cmd := newRootCommand()
	for _, task := range devtask.Tasks() {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == task.Name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("task %q has no subcommand", task.Name)
		}
	}
}

func TestPublishInitWritesSampleConfig(t *testing.T) {
	target := filepath.Join(t.TempDir(), "release.toml")

	out, _, err := runDevCLI(t, "publish", "--init", "--config", target)
	if err != nil {
		t.Fatalf("publish --init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample release config") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, _, err := runDevCLI(t, "publish", "--init", "--config", target); err == nil {
		t.Fatal("publish --init should refuse to overwrite")
	}
}

func TestNotesPrintsNewestChangelogSection(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "release.toml"), `
[project]
name = "tally"
owner = "example"
repo = "tally"

[index]
url = "https://index.example.com/upload"
`)
	testsupport.WriteFile(t, filepath.Join(dir, "CHANGELOG.md"),
		"[v1.2.0] - 2024-01-01\n- added recurring entries\n")

	out, _, err := runDevCLI(t, "notes", "--config", filepath.Join(dir, "release.toml"))
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if !strings.Contains(out, "added recurring entries") {
		t.Fatalf("unexpected notes output: %q", out)
	}
}

func TestPublishWithoutConfigFails(t *testing.T) {
	_, _, err := runDevCLI(t, "publish", "--config", filepath.Join(t.TempDir(), "release.toml"))
	if err == nil {
		t.Fatal("publish without settings should fail")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("error should point at the missing config: %v", err)
	}
}
