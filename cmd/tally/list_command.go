package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/client"
	"tally/internal/listing"
)

func newListCommand(cctx *commandContext) *cobra.Command {
	var filters []string
	var stacked bool
	var entrySort, categorySort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the entries of the period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkFilters(filters); err != nil {
				return err
			}

			period := cctx.period()
			return cctx.execute(cmd, func(ctx context.Context, cl client.Client) error {
				elements, err := cl.List(ctx, period, filters)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				rendered, err := listing.Render(period, elements, listing.Options{
					EntrySort:    entrySort,
					CategorySort: categorySort,
					DateLayout:   cfg.Client.DateFormat,
					Stacked:      stacked,
					Plain:        !listing.Terminal(out),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rendered)
				return nil
			}, nil)
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filters", "f", nil, "Restrict the listing to entries matching key=pattern")
	cmd.Flags().BoolVar(&stacked, "stacked-layout", false, "Show earnings and expenses stacked instead of side by side")
	cmd.Flags().StringVar(&entrySort, "entry-sort", "", "Sort entries by name, value, date, or id")
	cmd.Flags().StringVar(&categorySort, "category-sort", "", "Sort categories by name or value")
	return cmd
}
