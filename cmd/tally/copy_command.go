package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/api"
	"tally/internal/client"
	"tally/internal/offline"
)

func newCopyCommand(cctx *commandContext) *cobra.Command {
	var source, destination, table string

	cmd := &cobra.Command{
		Use:   "copy EID",
		Short: "Copy an element from one period into another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			req := api.CopyRequest{
				SourcePeriod:      source,
				DestinationPeriod: destination,
				Table:             table,
				EntryID:           id,
			}
			fallback := &offline.Request{
				Command: offline.CommandCopy,
				Copy:    &req,
			}
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				copied, err := cl.Copy(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied element %d.\n", copied)
				return nil
			}, fallback)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Source period")
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "Destination period")
	cmd.Flags().StringVarP(&table, "table", "t", "", "Table the element lives in")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}
