package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/client"
	"tally/internal/config"
	"tally/internal/errkit"
	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/offline"
)

type commandContext struct {
	configFlag  *string
	periodFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	backlogOnce sync.Once
	backlog     *offline.Backlog
}

func newCommandContext(configFlag, periodFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		periodFlag:  periodFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// period resolves the persistent period flag, defaulting to the current year.
func (c *commandContext) period() string {
	if c.periodFlag != nil {
		if period := strings.TrimSpace(*c.periodFlag); period != "" {
			return period
		}
	}
	return ledger.DefaultPeriod(time.Now())
}

// log returns the CLI logger. The CLI stays quiet unless --verbose is set;
// failures surface through command errors, not log lines.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		level := "error"
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		logger, err := logging.New(logging.Options{
			Level:            level,
			Format:           "pretty",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		})
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) offlineBacklog(cfg *config.Config) *offline.Backlog {
	c.backlogOnce.Do(func() {
		path := filepath.Join(cfg.Paths.DataDir, offline.DefaultFilename)
		c.backlog = offline.NewBacklog(path, c.log())
	})
	return c.backlog
}

// execute runs fn against a fresh client. Mutating commands pass their
// fallback request: when the service is unreachable the request is queued in
// the offline backlog instead of failing. Any successful command triggers a
// backlog replay.
func (c *commandContext) execute(cmd *cobra.Command, fn func(context.Context, client.Client) error, fallback *offline.Request) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	cl, err := client.New(cfg, c.log())
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := fn(ctx, cl); err != nil {
		if fallback != nil && errors.Is(err, errkit.ErrUnreachable) {
			if pushErr := c.offlineBacklog(cfg).Push(*fallback); pushErr != nil {
				return pushErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored '%s' request in offline backup.\n", fallback.Command)
			return nil
		}
		return err
	}

	c.recoverBacklog(ctx, cmd, cfg, cl)
	return nil
}

// recoverBacklog replays queued offline requests after a successful command.
// A replay failure keeps the remainder queued and never fails the command
// that already succeeded.
func (c *commandContext) recoverBacklog(ctx context.Context, cmd *cobra.Command, cfg *config.Config, cl client.Client) {
	backlog := c.offlineBacklog(cfg)
	if backlog.Pending() == 0 {
		return
	}

	_, err := backlog.Replay(ctx, func(ctx context.Context, req offline.Request) error {
		return client.Apply(ctx, cl, req)
	})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Offline backup recovery failed!")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Recovered offline backup.")
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
