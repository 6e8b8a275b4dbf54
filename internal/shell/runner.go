package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"tally/internal/errkit"
)

// Command names one external invocation.
type Command struct {
	Binary string
	Args   []string
	Dir    string
	Env    []string
}

// String renders the command the way a shell prompt would show it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// Runner abstracts command execution for testability.
type Runner interface {
	Run(ctx context.Context, cmd Command, onOutput func(string)) error
}

// CommandRunner executes commands through the operating system.
type CommandRunner struct{}

// NewRunner returns the process-backed runner.
func NewRunner() CommandRunner {
	return CommandRunner{}
}

// Run starts the command and forwards every output line to onOutput. Stdout
// and stderr are both forwarded; when onOutput is nil, lines go to stderr. A
// non-zero exit is classified as an external tool failure.
func (CommandRunner) Run(ctx context.Context, command Command, onOutput func(string)) error {
	if strings.TrimSpace(command.Binary) == "" {
		return errkit.Wrap(errkit.ErrValidation, "shell", "run", "command binary required", nil)
	}

	cmd := exec.CommandContext(ctx, command.Binary, command.Args...) //nolint:gosec
	cmd.Dir = command.Dir
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return errkit.Wrap(errkit.ErrExternalTool, "shell", "start "+command.Binary, "command failed to start", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	forward := func(line string) {
		if onOutput != nil {
			onOutput(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}

	wg.Add(2)
	go scan(stdout, forward)
	go scan(stderr, forward)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return errkit.Wrap(errkit.ErrExternalTool, "shell", command.String(), "command exited non-zero", err)
	}
	return nil
}
