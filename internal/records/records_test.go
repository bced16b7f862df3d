package records

import (
	"testing"
	"time"

	"ytharvest/internal/youtube"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT15M", 900},
		{"PT2H", 7200},
		{"P1DT2H", 93600},
		{"P2D", 172800},
		{"", 0},
		{"garbage", 0},
		{"PT", 0},
	}
	for _, tt := range tests {
		if got := ParseISODuration(tt.in); got != tt.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromChannelParsesCounts(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := FromChannel(youtube.Channel{
		ID:                "UC1",
		Title:             "Channel",
		SubscriberCount:   "123456",
		VideoCount:        "789",
		UploadsPlaylistID: "UU1",
	}, at)

	if row.Subscribers != 123456 || row.TotalVideos != 789 {
		t.Fatalf("unexpected counts: %+v", row)
	}
	if !row.HarvestedAt.Equal(at) {
		t.Fatalf("harvested at = %v", row.HarvestedAt)
	}
}

func TestFromChannelMissingCountsBecomeZero(t *testing.T) {
	row := FromChannel(youtube.Channel{ID: "UC1"}, time.Now())
	if row.Subscribers != 0 || row.TotalVideos != 0 {
		t.Fatalf("expected zero counts, got %+v", row)
	}
}

func TestFromVideosParsesTimestampAndDuration(t *testing.T) {
	rows := FromVideos([]youtube.Video{
		{
			ID:           "v1",
			ChannelID:    "UC1",
			Title:        "First",
			PublishedAt:  "2022-03-04T10:30:00Z",
			ViewCount:    "1000",
			LikeCount:    "50",
			CommentCount: "7",
			Duration:     "PT10M30S",
		},
		{
			ID:          "v2",
			PublishedAt: "not-a-date",
			Duration:    "bogus",
		},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := time.Date(2022, 3, 4, 10, 30, 0, 0, time.UTC)
	if !rows[0].PublishedAt.Equal(want) {
		t.Fatalf("published at = %v", rows[0].PublishedAt)
	}
	if rows[0].DurationSeconds != 630 {
		t.Fatalf("duration = %d", rows[0].DurationSeconds)
	}
	if !rows[1].PublishedAt.IsZero() || rows[1].DurationSeconds != 0 {
		t.Fatalf("bad input should zero out: %+v", rows[1])
	}
}

func TestFromCommentsEmptyInput(t *testing.T) {
	if rows := FromComments(nil); rows != nil {
		t.Fatalf("expected nil, got %v", rows)
	}
}
