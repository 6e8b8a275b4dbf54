package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/release"
)

func newPublishCommand() *cobra.Command {
	var configPath, tag string
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Run the release pipeline for the current checkout",
		Long: `Run the release pipeline: verify the checked-out release tag, extract the
changelog notes, build and archive the binaries, create the source-control
release, upload the artifacts to the package index, and announce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initConfig {
				target := strings.TrimSpace(configPath)
				if target == "" {
					target = release.DefaultConfigName
				}
				if err := release.CreateSample(target); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample release config to %s\n", target)
				return nil
			}

			cfg, resolved, err := release.Load(configPath)
			if err != nil {
				return err
			}

			publisher := release.NewPublisher(cfg, filepath.Dir(resolved), devLogger())
			publisher.Tag = strings.TrimSpace(tag)
			return publisher.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Release settings file (default: release.toml)")
	cmd.Flags().StringVar(&tag, "tag", "", "Release tag to publish (default: the tag on HEAD)")
	cmd.Flags().BoolVar(&initConfig, "init", false, "Write a sample release settings file and exit")
	return cmd
}

func newNotesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Print the release notes for the newest changelog section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolved, err := release.Load(configPath)
			if err != nil {
				return err
			}

			publisher := release.NewPublisher(cfg, filepath.Dir(resolved), devLogger())
			notes, err := publisher.Notes()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notes)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Release settings file (default: release.toml)")
	return cmd
}
