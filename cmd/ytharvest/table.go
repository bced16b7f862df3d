package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable draws warehouse rows in the rounded style shared by every
// ytharvest listing. Alignment is a per-column policy decided here rather
// than by callers: cells that parse as numbers (thousands separators
// included) are right-aligned so counts line up, everything else stays
// left-aligned.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		tw.AppendRow(cells)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i, numeric := range detectNumericColumns(len(headers), rows) {
		align := text.AlignLeft
		if numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// detectNumericColumns samples the first non-empty cell of each column. Empty
// cells (missing harvest dates, NULL query results) do not decide alignment.
func detectNumericColumns(columns int, rows [][]string) []bool {
	numeric := make([]bool, columns)
	for col := 0; col < columns; col++ {
		for _, row := range rows {
			if col >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			numeric[col] = isNumericCell(cell)
			break
		}
	}
	return numeric
}

// isNumericCell accepts plain integers, decimals, and grouped counts such as
// the "1,234,567" subscriber totals the channels listing prints.
func isNumericCell(cell string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	return err == nil
}
