package devtask

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/fileutil"
	"tally/internal/logging"
	"tally/internal/shell"
)

// HookSource is the pre-commit script shipped with the repository, relative
// to the root.
const HookSource = "scripts/pre-commit"

// Env carries what every task needs to run.
type Env struct {
	Root   string
	Runner shell.Runner
	Logger *slog.Logger
}

// Task is one named repository chore.
type Task struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, env Env) error
}

// Tasks lists every task in the order the help output shows them.
func Tasks() []Task {
	return []Task{
		{
			Name:    "install",
			Summary: "Download dependencies, install the binaries, and set up the pre-commit hook",
			Run:     runInstall,
		},
		{
			Name:    "test",
			Summary: "Run the full test suite",
			Run: commands(
				command("go", "test", "./..."),
			),
		},
		{
			Name:    "coverage",
			Summary: "Run the tests with coverage and render the per-function and HTML reports",
			Run: commands(
				command("go", "test", "-coverprofile=coverage.out", "./..."),
				command("go", "tool", "cover", "-func=coverage.out"),
				command("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"),
			),
		},
		{
			Name:    "lint",
			Summary: "Run go vet and golangci-lint",
			Run: commands(
				command("go", "vet", "./..."),
				command("golangci-lint", "run"),
			),
		},
		{
			Name:    "format",
			Summary: "Rewrite the source tree with gofmt",
			Run: commands(
				command("gofmt", "-l", "-w", "."),
			),
		},
		{
			Name:    "style-check",
			Summary: "Format the tree, then lint it",
			Run:     runStyleCheck,
		},
		{
			Name:    "release",
			Summary: "Push the current branch and tags to trigger the release pipeline",
			Run: commands(
				command("git", "push"),
				command("git", "push", "--tags"),
			),
		},
	}
}

// Lookup resolves a task by name.
func Lookup(name string) (Task, bool) {
	for _, task := range Tasks() {
		if task.Name == name {
			return task, true
		}
	}
	return Task{}, false
}

func command(binary string, args ...string) shell.Command {
	return shell.Command{Binary: binary, Args: args}
}

// commands builds a task body that runs the given sequence fail-fast from the
// repository root.
func commands(cmds ...shell.Command) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		return runAll(ctx, env, cmds...)
	}
}

func runAll(ctx context.Context, env Env, cmds ...shell.Command) error {
	logger := env.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	for _, cmd := range cmds {
		cmd.Dir = env.Root
		logger.Info("running", logging.String(logging.FieldCommand, cmd.String()))
		if err := env.Runner.Run(ctx, cmd, func(line string) {
			fmt.Println(line)
		}); err != nil {
			return err
		}
	}
	return nil
}

func runInstall(ctx context.Context, env Env) error {
	err := runAll(ctx, env,
		command("go", "mod", "download"),
		command("go", "install", "./cmd/..."),
	)
	if err != nil {
		return err
	}
	return InstallHook(env)
}

func runStyleCheck(ctx context.Context, env Env) error {
	err := runAll(ctx, env,
		command("gofmt", "-l", "-w", "."),
	)
	if err != nil {
		return err
	}
	return runAll(ctx, env,
		command("go", "vet", "./..."),
		command("golangci-lint", "run"),
	)
}

// InstallHook copies scripts/pre-commit into .git/hooks. A checkout without a
// .git directory (an extracted archive) skips the hook without failing.
func InstallHook(env Env) error {
	logger := env.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	gitDir := filepath.Join(env.Root, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		logger.Info("no .git directory, skipping pre-commit hook")
		return nil
	}

	source := filepath.Join(env.Root, HookSource)
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("pre-commit hook source: %w", err)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}
	dest := filepath.Join(hooksDir, "pre-commit")
	if err := fileutil.CopyFileMode(source, dest, 0o755); err != nil {
		return fmt.Errorf("install pre-commit hook: %w", err)
	}
	logger.Info("installed pre-commit hook", logging.String("path", dest))
	return nil
}
