package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWarehouseCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var retryFailed bool

	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Load staged snapshots into the warehouse tables",
		Args:  cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			if retryFailed {
				reset, err := store.RetryFailedSnapshots(cmd.Context())
				if err != nil {
					return err
				}
				if !jsonOut && reset > 0 {
					fmt.Fprintf(out, "Requeued %d failed snapshots\n", reset)
				}
			}

			svc, err := ctx.newHarvester(store, logger)
			if err != nil {
				return err
			}
			result, err := svc.Warehouse(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			if result.Processed == 0 && result.Failed == 0 {
				fmt.Fprintln(out, "No pending snapshots")
				return nil
			}
			fmt.Fprintf(out, "Warehoused %d snapshots (%d new comments)\n", result.Processed, result.Comments)
			if result.Failed > 0 {
				fmt.Fprintf(out, "%d snapshots failed; inspect with `ytharvest status` and retry with --retry-failed\n", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	cmd.Flags().BoolVar(&retryFailed, "retry-failed", false, "Requeue failed snapshots before warehousing")
	return cmd
}
