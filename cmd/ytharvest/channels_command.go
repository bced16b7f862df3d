package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ytharvest/internal/warehouse"
)

var countPrinter = message.NewPrinter(language.English)

// formatCount renders large counts with thousands separators.
func formatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List warehoused channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			channels, err := store.Channels(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, channels)
			}

			out := cmd.OutOrStdout()
			if len(channels) == 0 {
				fmt.Fprintln(out, "No channels harvested yet")
				return nil
			}
			fmt.Fprintln(out, renderChannelsTable(channels))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func renderChannelsTable(channels []warehouse.ChannelSummary) string {
	headers := []string{"Channel", "ID", "Subscribers", "Videos", "Harvested"}
	rows := make([][]string, 0, len(channels))
	for _, ch := range channels {
		harvested := ""
		if !ch.HarvestedAt.IsZero() {
			harvested = ch.HarvestedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			ch.Title,
			ch.ID,
			formatCount(ch.Subscribers),
			formatCount(ch.TotalVideos),
			harvested,
		})
	}
	return renderTable(headers, rows)
}
