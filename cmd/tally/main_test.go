package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, "local", "")

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func writeTestConfig(t *testing.T, path, base, mode, baseURL string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[service]
mode = %q

[http]
listen = "127.0.0.1:0"
base_url = %q
timeout_seconds = 1
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		mode,
		baseURL,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIAddGetListRoundtrip(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "-p", "2024", "add", "-c", "clothes", "-d", "01-15", "--", "pants", "-99.5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Added element 1.") {
		t.Fatalf("unexpected add output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "-p", "2024", "get", "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for _, want := range []string{"Name", "Pants", "-99.50", "01-15", "clothes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("get output missing %q: %q", want, out)
		}
	}

	out, _, err = runCLI(t, env.configPath, "-p", "2024", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Period 2024") || !strings.Contains(out, "Pants") {
		t.Fatalf("unexpected list output: %q", out)
	}
	if !strings.Contains(out, "99.50") {
		t.Fatalf("list should fold the sign away: %q", out)
	}
}

func TestCLIUpdateRemoveMessages(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "-p", "2024", "add", "--", "coffee", "-4"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "-p", "2024", "update", "-v=-5", "1")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Updated element 1.") {
		t.Fatalf("unexpected update output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "-p", "2024", "remove", "1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "Removed element 1.") {
		t.Fatalf("unexpected remove output: %q", out)
	}

	if _, _, err = runCLI(t, env.configPath, "-p", "2024", "get", "1"); err == nil {
		t.Fatal("get after remove should fail")
	}
}

func TestCLICopyBetweenPeriods(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "-p", "2024", "add", "--", "rent", "-1000"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "copy", "1", "-s", "2024", "-d", "2025")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if !strings.Contains(out, "Copied element 1.") {
		t.Fatalf("unexpected copy output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "periods")
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if !strings.Contains(out, "2024") || !strings.Contains(out, "2025") {
		t.Fatalf("unexpected periods output: %q", out)
	}
}

func TestCLIInvalidDateMessage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "add", "-d", "not-a-date", "--", "pants", "-10")
	if err == nil {
		t.Fatal("expected invalid date error")
	}
	if err.Error() != "Invalid date format." {
		t.Fatalf("error = %q, want %q", err.Error(), "Invalid date format.")
	}
}

func TestCLIInvalidFilterMessage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "list", "-f", "noequalsign")
	if err == nil {
		t.Fatal("expected invalid filter error")
	}
	if err.Error() != "Invalid filter format: noequalsign." {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestCLIOfflineBacklogStoreAndRecover(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")

	// Unreachable daemon: mutating commands queue instead of failing.
	writeTestConfig(t, configPath, base, "http", "http://127.0.0.1:1")
	out, _, err := runCLI(t, configPath, "-p", "2024", "add", "--", "pants", "-10")
	if err != nil {
		t.Fatalf("offline add: %v", err)
	}
	if !strings.Contains(out, "Stored 'add' request in offline backup.") {
		t.Fatalf("unexpected offline output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(base, "data", "offline_backup.json")); err != nil {
		t.Fatalf("backlog file missing: %v", err)
	}

	// Back in local mode the next successful command replays the backlog.
	writeTestConfig(t, configPath, base, "local", "")
	out, _, err = runCLI(t, configPath, "periods")
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if !strings.Contains(out, "Recovered offline backup.") {
		t.Fatalf("expected recovery message, got %q", out)
	}

	out, _, err = runCLI(t, configPath, "-p", "2024", "get", "1")
	if err != nil {
		t.Fatalf("get after recovery: %v", err)
	}
	if !strings.Contains(out, "Pants") {
		t.Fatalf("replayed entry missing: %q", out)
	}
}

func TestCLIVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "tally ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestCLIConfigInitAndShow(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration to") {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("config init should refuse to overwrite")
	}

	env := setupCLITestEnv(t)
	out, _, err = runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[paths]") || !strings.Contains(out, "mode = 'local'") {
		t.Fatalf("unexpected show output: %q", out)
	}
}
