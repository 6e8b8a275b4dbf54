package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/client"
	"tally/internal/listing"
)

func newGetCommand(cctx *commandContext) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "get EID",
		Short: "Show a single element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			period := cctx.period()
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				element, err := cl.Get(ctx, period, table, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), listing.Detail(element, cfg.Client.DateFormat))
				return nil
			}, nil)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Table to read from (standard or recurrent)")
	return cmd
}
