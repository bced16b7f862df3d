package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHarvestCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "harvest <channel-id>",
		Short: "Collect a channel and warehouse it in one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc, err := ctx.newHarvester(store, logger)
			if err != nil {
				return err
			}
			result, err := svc.Harvest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Harvested %s: %d videos, %d comments\n",
				result.Collect.ChannelName, result.Collect.Videos, result.Collect.Comments)
			if result.Warehouse.Failed > 0 {
				fmt.Fprintf(out, "%d snapshots failed to warehouse\n", result.Warehouse.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
