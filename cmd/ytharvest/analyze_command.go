package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytharvest/internal/warehouse"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut   bool
		channelID string
		year      int
	)

	cmd := &cobra.Command{
		Use:   "analyze [query-name]",
		Short: "Run a canned analysis query against the warehouse",
		Long: "Run a canned analysis query against the warehouse.\n\n" +
			"Without arguments the available queries are listed. Most queries accept\n" +
			"--channel to restrict results to one channel; year-scoped queries accept --year.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listQueries(cmd, jsonOut)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			filter := warehouse.Filter{ChannelID: channelID, Year: year}
			result, err := store.RunAnalysis(cmd.Context(), args[0], filter)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Name    string     `json:"name"`
					Title   string     `json:"title"`
					Columns []string   `json:"columns"`
					Rows    [][]string `json:"rows"`
				}{result.Query.Name, result.Query.Title, result.Columns, result.Rows})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Query.Title)
			if len(result.Rows) == 0 {
				fmt.Fprintln(out, "No rows")
				return nil
			}
			fmt.Fprintln(out, renderTable(result.Columns, result.Rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	cmd.Flags().StringVar(&channelID, "channel", "", "Restrict results to one channel ID")
	cmd.Flags().IntVar(&year, "year", 0, "Year for year-scoped queries (default 2022)")
	return cmd
}

func listQueries(cmd *cobra.Command, jsonOut bool) error {
	queries := warehouse.Queries()
	if jsonOut {
		return writeJSON(cmd, queries)
	}
	rows := make([][]string, 0, len(queries))
	for _, q := range queries {
		rows = append(rows, []string{q.Name, q.Title, yesNo(q.NeedsYear)})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Description", "Year-Scoped"},
		rows,
	))
	return nil
}
