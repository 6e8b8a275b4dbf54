package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/api"
	"tally/internal/client"
	"tally/internal/offline"
)

func newAddCommand(cctx *commandContext) *cobra.Command {
	var category, date, table, frequency, start, end string

	cmd := &cobra.Command{
		Use:   "add NAME VALUE",
		Short: "Add an entry to the period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			value, err := parseValue(args[1])
			if err != nil {
				return err
			}

			req := api.AddRequest{
				Table:     table,
				Name:      args[0],
				Value:     value,
				Category:  category,
				Frequency: frequency,
			}
			if req.Date, err = entryDate(date, cfg); err != nil {
				return err
			}
			if req.Start, err = entryDate(start, cfg); err != nil {
				return err
			}
			if req.End, err = entryDate(end, cfg); err != nil {
				return err
			}

			period := cctx.period()
			fallback := &offline.Request{
				Command: offline.CommandAdd,
				Period:  period,
				Add:     &req,
			}
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				id, err := cl.Add(ctx, period, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added element %d.\n", id)
				return nil
			}, fallback)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category of the entry")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date of the entry")
	cmd.Flags().StringVarP(&table, "table", "t", "", "Table to add to (standard or recurrent)")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "Recurrence frequency (recurrent table)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Recurrence start date (recurrent table)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Recurrence end date (recurrent table)")
	return cmd
}
