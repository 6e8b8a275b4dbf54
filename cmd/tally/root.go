package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var periodFlag string
	var verboseFlag bool

	cctx := newCommandContext(&configFlag, &periodFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "tally",
		Short:         "Personal finances from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := cctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "C", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&periodFlag, "period", "p", "", "Period to work on (default: current year)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newAddCommand(cctx))
	rootCmd.AddCommand(newGetCommand(cctx))
	rootCmd.AddCommand(newUpdateCommand(cctx))
	rootCmd.AddCommand(newRemoveCommand(cctx))
	rootCmd.AddCommand(newCopyCommand(cctx))
	rootCmd.AddCommand(newListCommand(cctx))
	rootCmd.AddCommand(newPeriodsCommand(cctx))
	rootCmd.AddCommand(newConfigCommand(cctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
