package warehouse_test

import (
	"context"
	"testing"
	"time"

	"ytharvest/internal/records"
	"ytharvest/internal/testsupport"
	"ytharvest/internal/warehouse"
)

func seedAnalysisFixture(t *testing.T, store *warehouse.Store) {
	t.Helper()

	seedChannel(t, store, "UCalpha", "Alpha")
	seedChannel(t, store, "UCbeta", "Beta")

	seedVideos(t, store, "UCalpha",
		records.Video{ID: "a1", Title: "Alpha One", Views: 100, Likes: 10, CommentCount: 5, DurationSeconds: 120,
			PublishedAt: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)},
		records.Video{ID: "a2", Title: "Alpha Two", Views: 300, Likes: 30, CommentCount: 1, DurationSeconds: 240,
			PublishedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
	)
	seedVideos(t, store, "UCbeta",
		records.Video{ID: "b1", Title: "Beta One", Views: 50, Likes: 2, CommentCount: 9, DurationSeconds: 60,
			PublishedAt: time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)},
	)
}

func TestQueriesCatalogIsStable(t *testing.T) {
	queries := warehouse.Queries()
	if len(queries) != 10 {
		t.Fatalf("expected 10 canned queries, got %d", len(queries))
	}
	seen := make(map[string]bool)
	for _, q := range queries {
		if q.Name == "" || q.Title == "" {
			t.Fatalf("query missing name or title: %#v", q)
		}
		if seen[q.Name] {
			t.Fatalf("duplicate query name %q", q.Name)
		}
		seen[q.Name] = true
	}
	if q, ok := warehouse.QueryByName("Channels-Active-In-Year"); !ok || !q.NeedsYear {
		t.Fatalf("lookup should be case-insensitive and year-scoped: %#v", q)
	}
}

func TestRunAnalysisUnknownQuery(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.RunAnalysis(context.Background(), "no-such-query", warehouse.Filter{}); err == nil {
		t.Fatal("expected error for unknown query")
	}
}

func TestRunAnalysisViewsPerChannel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedAnalysisFixture(t, store)

	result, err := store.RunAnalysis(context.Background(), "views-per-channel", warehouse.Filter{})
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 channel rows, got %d", len(result.Rows))
	}
	// Ordered by total views descending.
	if result.Rows[0][0] != "Alpha" || result.Rows[0][1] != "400" {
		t.Fatalf("unexpected first row: %v", result.Rows[0])
	}
	if result.Rows[1][0] != "Beta" || result.Rows[1][1] != "50" {
		t.Fatalf("unexpected second row: %v", result.Rows[1])
	}
}

func TestRunAnalysisChannelFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedAnalysisFixture(t, store)
	ctx := context.Background()

	all, err := store.RunAnalysis(ctx, "videos-with-channels", warehouse.Filter{})
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if len(all.Rows) != 3 {
		t.Fatalf("expected 3 videos unfiltered, got %d", len(all.Rows))
	}

	filtered, err := store.RunAnalysis(ctx, "videos-with-channels", warehouse.Filter{ChannelID: "UCbeta"})
	if err != nil {
		t.Fatalf("filtered RunAnalysis failed: %v", err)
	}
	if len(filtered.Rows) != 1 || filtered.Rows[0][0] != "Beta One" {
		t.Fatalf("unexpected filtered rows: %v", filtered.Rows)
	}
}

func TestRunAnalysisChannelsActiveInYear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedAnalysisFixture(t, store)
	ctx := context.Background()

	// Default year is 2022: both channels published then.
	result, err := store.RunAnalysis(ctx, "channels-active-in-year", warehouse.Filter{})
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 channels in 2022, got %v", result.Rows)
	}

	result, err = store.RunAnalysis(ctx, "channels-active-in-year", warehouse.Filter{Year: 2023})
	if err != nil {
		t.Fatalf("RunAnalysis for 2023 failed: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0][0] != "Alpha" {
		t.Fatalf("expected only Alpha in 2023, got %v", result.Rows)
	}
}

func TestRunAnalysisAverageDuration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	seedAnalysisFixture(t, store)

	result, err := store.RunAnalysis(context.Background(), "avg-duration-per-channel", warehouse.Filter{})
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0][0] != "Alpha" || result.Rows[0][1] != "180.0" {
		t.Fatalf("unexpected average duration row: %v", result.Rows[0])
	}
}

func TestRunAnalysisTopViewedLimitsToTen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seedChannel(t, store, "UC1", "Channel")
	var videos []records.Video
	for i := 0; i < 12; i++ {
		videos = append(videos, records.Video{
			ID:    string(rune('a'+i)) + "-video",
			Title: "Video",
			Views: int64(100 - i),
		})
	}
	seedVideos(t, store, "UC1", videos...)

	result, err := store.RunAnalysis(ctx, "top-viewed", warehouse.Filter{})
	if err != nil {
		t.Fatalf("RunAnalysis failed: %v", err)
	}
	if len(result.Rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(result.Rows))
	}
	if result.Rows[0][2] != "100" {
		t.Fatalf("expected highest view count first, got %v", result.Rows[0])
	}
}
