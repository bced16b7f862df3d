package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "collect <channel-id>",
		Short: "Fetch a channel from the YouTube API and stage a snapshot",
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
			result, err := svc.Collect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Collected %s: %d videos, %d comments (snapshot %s)\n",
				result.ChannelName, result.Videos, result.Comments, result.SnapshotID)
			if result.CommentsDisabled > 0 {
				fmt.Fprintf(out, "%d videos have comments disabled\n", result.CommentsDisabled)
			}
			fmt.Fprintln(out, "Run `ytharvest warehouse` to load the snapshot into the warehouse.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
