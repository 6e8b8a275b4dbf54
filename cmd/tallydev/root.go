package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/devtask"
	"tally/internal/logging"
	"tally/internal/shell"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tallydev",
		Short:         "Developer tasks for the tally repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, task := range devtask.Tasks() {
		rootCmd.AddCommand(newTaskCommand(task))
	}
	rootCmd.AddCommand(newPublishCommand())
	rootCmd.AddCommand(newNotesCommand())

	return rootCmd
}

func newTaskCommand(task devtask.Task) *cobra.Command {
	return &cobra.Command{
		Use:   task.Name,
		Short: task.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			return task.Run(cmd.Context(), devtask.Env{
				Root:   root,
				Runner: shell.NewRunner(),
				Logger: devLogger(),
			})
		},
	}
}

func devLogger() *slog.Logger {
	logger, err := logging.New(logging.Options{Level: "info", Format: "pretty"})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}
