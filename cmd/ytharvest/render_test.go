package main

import (
	"strings"
	"testing"
	"time"

	"ytharvest/internal/warehouse"
)

func TestRenderChannelsTableFormatsCounts(t *testing.T) {
	channels := []warehouse.ChannelSummary{
		{
			ID:          "UC1",
			Title:       "Tech Channel",
			Subscribers: 1234567,
			TotalVideos: 321,
			HarvestedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	rendered := renderChannelsTable(channels)
	if !strings.Contains(rendered, "1,234,567") {
		t.Fatalf("expected thousands separators in output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Tech Channel") {
		t.Fatalf("expected channel title in output:\n%s", rendered)
	}
}

func TestDetectNumericColumns(t *testing.T) {
	rows := [][]string{
		{"Alpha", "1,234,567", "180.0", ""},
		{"Beta", "50", "60.0", "2026-08-01 12:00"},
	}
	numeric := detectNumericColumns(4, rows)
	if numeric[0] {
		t.Fatal("expected text column left-aligned")
	}
	if !numeric[1] || !numeric[2] {
		t.Fatalf("expected count and average columns right-aligned, got %v", numeric)
	}
	// Alignment for the last column comes from the first non-empty cell.
	if numeric[3] {
		t.Fatalf("expected date column left-aligned, got %v", numeric)
	}
}

func TestDetectNumericColumnsEmptyRows(t *testing.T) {
	numeric := detectNumericColumns(3, nil)
	for i, n := range numeric {
		if n {
			t.Fatalf("expected column %d left-aligned with no rows", i)
		}
	}
}

func TestStatusSectionRender(t *testing.T) {
	section := statusSection{
		title: "Warehouse",
		lines: []statusLine{
			{label: "Channels", kind: statusInfo, detail: "3"},
			{label: "Failed snapshots", kind: statusError, detail: "2"},
		},
	}

	plain := section.render(false)
	if len(plain) != 4 {
		t.Fatalf("expected header, rule and two lines, got %d: %q", len(plain), plain)
	}
	if plain[0] != "== Warehouse ==" {
		t.Fatalf("unexpected header: %q", plain[0])
	}
	if strings.Contains(strings.Join(plain, "\n"), ansiRed) {
		t.Fatalf("expected no color codes: %q", plain)
	}
	if !strings.Contains(plain[3], "Failed snapshots:") || !strings.Contains(plain[3], "[ERROR] 2") {
		t.Fatalf("unexpected failed line: %q", plain[3])
	}
	// Labels pad to the widest label so the kind markers line up.
	if strings.Index(plain[2], "[INFO]") != strings.Index(plain[3], "[ERROR]") {
		t.Fatalf("expected aligned kind markers:\n%q\n%q", plain[2], plain[3])
	}

	colored := section.render(true)
	if !strings.HasPrefix(colored[0], ansiBlue) {
		t.Fatalf("expected blue header: %q", colored[0])
	}
	if !strings.HasPrefix(colored[3], ansiRed) || !strings.HasSuffix(colored[3], ansiReset) {
		t.Fatalf("expected red error line: %q", colored[3])
	}
}

func TestCountKind(t *testing.T) {
	if got := countKind(0, statusError); got != statusOK {
		t.Fatalf("expected OK for zero count, got %v", got)
	}
	if got := countKind(2, statusWarn); got != statusWarn {
		t.Fatalf("expected WARN for nonzero count, got %v", got)
	}
}

func TestWarehouseSectionFlagsBacklog(t *testing.T) {
	section := warehouseSection(warehouse.Stats{
		Channels:         1,
		PendingSnapshots: 3,
		FailedSnapshots:  1,
	})
	rendered := strings.Join(section.render(false), "\n")
	if !strings.Contains(rendered, "[WARN] 3") {
		t.Fatalf("expected pending snapshots flagged:\n%s", rendered)
	}
	if !strings.Contains(rendered, "[ERROR] 1") {
		t.Fatalf("expected failed snapshots flagged:\n%s", rendered)
	}
}
