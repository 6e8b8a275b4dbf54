package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/client"
)

func newPeriodsCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the periods found in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				periods, err := cl.Periods(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, period := range periods {
					fmt.Fprintln(out, period)
				}
				return nil
			}, nil)
		},
	}
}
