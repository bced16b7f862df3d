package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytharvest/internal/warehouse"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show warehouse contents and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			health, healthErr := store.CheckHealth(cmd.Context())

			if jsonOut {
				payload := struct {
					Stats  warehouse.Stats          `json:"stats"`
					Health warehouse.DatabaseHealth `json:"health"`
				}{stats, health}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			sections := []statusSection{
				warehouseSection(stats),
				databaseSection(health, healthErr),
			}

			var lines []string
			for i, section := range sections {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, section.render(colorize)...)
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func warehouseSection(stats warehouse.Stats) statusSection {
	return statusSection{
		title: "Warehouse",
		lines: []statusLine{
			{label: "Channels", kind: statusInfo, detail: formatCount(int64(stats.Channels))},
			{label: "Videos", kind: statusInfo, detail: formatCount(int64(stats.Videos))},
			{label: "Comments", kind: statusInfo, detail: formatCount(int64(stats.Comments))},
			{label: "Pending snapshots", kind: countKind(stats.PendingSnapshots, statusWarn),
				detail: fmt.Sprintf("%d", stats.PendingSnapshots)},
			{label: "Failed snapshots", kind: countKind(stats.FailedSnapshots, statusError),
				detail: fmt.Sprintf("%d", stats.FailedSnapshots)},
		},
	}
}

func databaseSection(health warehouse.DatabaseHealth, healthErr error) statusSection {
	section := statusSection{
		title: "Database",
		lines: []statusLine{
			{label: "Path", kind: statusInfo, detail: health.DBPath},
		},
	}

	var verdict statusLine
	switch {
	case healthErr != nil:
		verdict = statusLine{label: "Health", kind: statusError, detail: healthErr.Error()}
	case !health.DatabaseExists:
		verdict = statusLine{label: "Health", kind: statusWarn, detail: "database not created yet"}
	case len(health.MissingTables) > 0:
		verdict = statusLine{label: "Health", kind: statusError,
			detail: "missing tables: " + strings.Join(health.MissingTables, ", ")}
	case !health.IntegrityCheck:
		verdict = statusLine{label: "Health", kind: statusError, detail: "integrity check failed"}
	default:
		verdict = statusLine{label: "Health", kind: statusOK,
			detail: fmt.Sprintf("%d rows across %d tables", health.TotalRows, len(health.TablesPresent))}
	}
	section.lines = append(section.lines, verdict)
	return section
}
