package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/client"
	"tally/internal/offline"
)

func newRemoveCommand(cctx *commandContext) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:     "remove EID",
		Aliases: []string{"rm"},
		Short:   "Remove an element from the period",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			period := cctx.period()
			fallback := &offline.Request{
				Command: offline.CommandRemove,
				Period:  period,
				Table:   table,
				EntryID: id,
			}
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				if err := cl.Remove(ctx, period, table, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed element %d.\n", id)
				return nil
			}, fallback)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Table the element lives in")
	return cmd
}
