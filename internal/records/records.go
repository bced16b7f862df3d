package records

import (
	"strconv"
	"time"

	"ytharvest/internal/youtube"
)

// Channel is a warehouse row for the channels table.
type Channel struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Subscribers       int64     `json:"subscribers"`
	TotalVideos       int64     `json:"totalVideos"`
	UploadsPlaylistID string    `json:"uploadsPlaylistId"`
	HarvestedAt       time.Time `json:"harvestedAt"`
}

// Video is a warehouse row for the videos table.
type Video struct {
	ID              string    `json:"id"`
	ChannelID       string    `json:"channelId"`
	Title           string    `json:"title"`
	PublishedAt     time.Time `json:"publishedAt"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	CommentCount    int64     `json:"commentCount"`
	DurationSeconds int64     `json:"durationSeconds"`
}

// Comment is a warehouse row for the comments table.
type Comment struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"videoId"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Snapshot is a staged harvest for one channel: the raw API payloads captured
// by collect, consumed later by warehouse.
type Snapshot struct {
	Channel     youtube.Channel   `json:"channel"`
	Videos      []youtube.Video   `json:"videos"`
	Comments    []youtube.Comment `json:"comments"`
	CollectedAt time.Time         `json:"collectedAt"`
}

// FromChannel reshapes an API channel into a warehouse row.
func FromChannel(ch youtube.Channel, harvestedAt time.Time) Channel {
	return Channel{
		ID:                ch.ID,
		Title:             ch.Title,
		Subscribers:       parseCount(ch.SubscriberCount),
		TotalVideos:       parseCount(ch.VideoCount),
		UploadsPlaylistID: ch.UploadsPlaylistID,
		HarvestedAt:       harvestedAt.UTC(),
	}
}

// FromVideos reshapes API videos into warehouse rows.
func FromVideos(videos []youtube.Video) []Video {
	if len(videos) == 0 {
		return nil
	}
	rows := make([]Video, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, Video{
			ID:              v.ID,
			ChannelID:       v.ChannelID,
			Title:           v.Title,
			PublishedAt:     parseTimestamp(v.PublishedAt),
			Views:           parseCount(v.ViewCount),
			Likes:           parseCount(v.LikeCount),
			CommentCount:    parseCount(v.CommentCount),
			DurationSeconds: ParseISODuration(v.Duration),
		})
	}
	return rows
}

// FromComments reshapes API comments into warehouse rows.
func FromComments(comments []youtube.Comment) []Comment {
	if len(comments) == 0 {
		return nil
	}
	rows := make([]Comment, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, Comment{
			ID:          c.ID,
			VideoID:     c.VideoID,
			Author:      c.Author,
			Text:        c.Text,
			PublishedAt: parseTimestamp(c.PublishedAt),
		})
	}
	return rows
}

// parseCount converts an API statistics string to an integer. The API omits
// counts it hides (e.g. subscriber counts on some channels); those become 0.
func parseCount(value string) int64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
