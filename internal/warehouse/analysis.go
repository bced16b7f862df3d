package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Query is a canned analysis query offered by the dashboard.
//
// Every query accepts an optional channel filter bound as ?1 (empty string
// means no filter); queries with NeedsYear additionally bind the year as ?2.
// Filters are always bound parameters, never spliced into the SQL text.
type Query struct {
	Name      string
	Title     string
	NeedsYear bool
	sql       string
}

// DefaultAnalysisYear is used when a year-scoped query is run without an
// explicit year.
const DefaultAnalysisYear = 2022

var analysisQueries = []Query{
	{
		Name:  "videos-with-channels",
		Title: "Names of all videos and their corresponding channels",
		sql: `SELECT v.title AS video_title, c.channel_name
              FROM videos v
              JOIN channels c ON v.channel_id = c.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              ORDER BY c.channel_name COLLATE NOCASE, v.title COLLATE NOCASE`,
	},
	{
		Name:  "channels-by-video-count",
		Title: "Channels with the most videos",
		sql: `SELECT c.channel_name, c.total_videos
              FROM channels c
              WHERE (?1 = '' OR c.channel_id = ?1)
              ORDER BY c.total_videos DESC`,
	},
	{
		Name:  "top-viewed",
		Title: "Top 10 most viewed videos and their channels",
		sql: `SELECT v.title AS video_title, c.channel_name, v.views
              FROM videos v
              JOIN channels c ON v.channel_id = c.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              ORDER BY v.views DESC
              LIMIT 10`,
	},
	{
		Name:  "comments-per-video",
		Title: "Comment counts per video",
		sql: `SELECT v.title AS video_title, v.comment_count
              FROM videos v
              WHERE (?1 = '' OR v.channel_id = ?1)
              ORDER BY v.comment_count DESC`,
	},
	{
		Name:  "top-liked",
		Title: "Videos with the highest likes and their channels",
		sql: `SELECT v.title AS video_title, c.channel_name, v.likes
              FROM videos v
              JOIN channels c ON c.channel_id = v.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              ORDER BY v.likes DESC`,
	},
	{
		Name:  "likes-per-video",
		Title: "Total likes for each video",
		sql: `SELECT v.title AS video_title, v.likes
              FROM videos v
              WHERE (?1 = '' OR v.channel_id = ?1)
              ORDER BY v.title COLLATE NOCASE`,
	},
	{
		Name:  "views-per-channel",
		Title: "Total views per channel",
		sql: `SELECT c.channel_name, SUM(v.views) AS total_channel_views
              FROM channels c
              JOIN videos v ON c.channel_id = v.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              GROUP BY c.channel_name
              ORDER BY total_channel_views DESC`,
	},
	{
		Name:      "channels-active-in-year",
		Title:     "Channels with videos published in a given year",
		NeedsYear: true,
		sql: `SELECT DISTINCT c.channel_name
              FROM channels c
              JOIN videos v ON c.channel_id = v.channel_id
              WHERE strftime('%Y', v.published_at) = ?2
                AND (?1 = '' OR c.channel_id = ?1)
              ORDER BY c.channel_name COLLATE NOCASE`,
	},
	{
		Name:  "avg-duration-per-channel",
		Title: "Average video duration per channel (seconds)",
		sql: `SELECT c.channel_name, AVG(v.duration_seconds) AS average_duration_seconds
              FROM channels c
              JOIN videos v ON c.channel_id = v.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              GROUP BY c.channel_name
              ORDER BY c.channel_name COLLATE NOCASE`,
	},
	{
		Name:  "top-commented",
		Title: "Videos with the highest comment counts and their channels",
		sql: `SELECT v.title AS video_title, c.channel_name, v.comment_count
              FROM videos v
              JOIN channels c ON c.channel_id = v.channel_id
              WHERE (?1 = '' OR c.channel_id = ?1)
              ORDER BY v.comment_count DESC`,
	},
}

// Queries returns the canned analysis catalog in presentation order.
func Queries() []Query {
	out := make([]Query, len(analysisQueries))
	copy(out, analysisQueries)
	return out
}

// QueryByName looks up a canned query.
func QueryByName(name string) (Query, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, q := range analysisQueries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Filter narrows an analysis query. A zero value applies no filter.
type Filter struct {
	ChannelID string
	Year      int
}

// Result is a tabular analysis result.
type Result struct {
	Query   Query
	Columns []string
	Rows    [][]string
}

// RunAnalysis executes a canned query and returns its rows as strings ready
// for rendering.
func (s *Store) RunAnalysis(ctx context.Context, name string, filter Filter) (*Result, error) {
	query, ok := QueryByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown analysis query %q", name)
	}

	args := []any{strings.TrimSpace(filter.ChannelID)}
	if query.NeedsYear {
		year := filter.Year
		if year <= 0 {
			year = DefaultAnalysisYear
		}
		args = append(args, strconv.Itoa(year))
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query.sql, args...)
	if err != nil {
		return nil, fmt.Errorf("run analysis %s: %w", query.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("analysis columns: %w", err)
	}

	result := &Result{Query: query, Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		row := make([]string, len(columns))
		for i, value := range values {
			row[i] = formatCell(value)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
