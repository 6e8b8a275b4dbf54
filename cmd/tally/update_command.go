package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/api"
	"tally/internal/client"
	"tally/internal/offline"
)

func newUpdateCommand(cctx *commandContext) *cobra.Command {
	var table string
	var name, category, date, frequency, start, end string
	var value float64

	cmd := &cobra.Command{
		Use:   "update EID",
		Short: "Update fields of an existing element",
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

			var req api.UpdateRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("value") {
				req.Value = &value
			}
			if flags.Changed("category") {
				req.Category = &category
			}
			if flags.Changed("frequency") {
				req.Frequency = &frequency
			}
			if flags.Changed("date") {
				canonical, err := entryDate(date, cfg)
				if err != nil {
					return err
				}
				req.Date = &canonical
			}
			if flags.Changed("start") {
				canonical, err := entryDate(start, cfg)
				if err != nil {
					return err
				}
				req.Start = &canonical
			}
			if flags.Changed("end") {
				canonical, err := entryDate(end, cfg)
				if err != nil {
					return err
				}
				req.End = &canonical
			}

			period := cctx.period()
			fallback := &offline.Request{
				Command: offline.CommandUpdate,
				Period:  period,
				Table:   table,
				EntryID: id,
				Update:  &req,
			}
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				if err := cl.Update(ctx, period, table, id, req); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated element %d.\n", id)
				return nil
			}, fallback)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "Table the element lives in")
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "New value")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "New date")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "New recurrence frequency")
	cmd.Flags().StringVarP(&start, "start", "s", "", "New recurrence start date")
	cmd.Flags().StringVarP(&end, "end", "e", "", "New recurrence end date")
	return cmd
}
