package api

import "time"

// ChannelView is the JSON projection of a warehoused channel.
type ChannelView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subscribers int64     `json:"subscribers"`
	TotalVideos int64     `json:"totalVideos"`
	HarvestedAt time.Time `json:"harvestedAt,omitempty"`
}

// ChannelListResponse wraps the channel listing.
type ChannelListResponse struct {
	Channels []ChannelView `json:"channels"`
}

// QueryView describes one canned analysis query.
type QueryView struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	NeedsYear bool   `json:"needsYear"`
}

// QueryListResponse wraps the analysis catalog.
type QueryListResponse struct {
	Queries []QueryView `json:"queries"`
}

// QueryResultResponse carries the rows of one analysis run.
type QueryResultResponse struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// StatsResponse reports warehouse row counts.
type StatsResponse struct {
	Channels         int `json:"channels"`
	Videos           int `json:"videos"`
	Comments         int `json:"comments"`
	PendingSnapshots int `json:"pendingSnapshots"`
	FailedSnapshots  int `json:"failedSnapshots"`
}

// HealthResponse reports warehouse database diagnostics.
type HealthResponse struct {
	Healthy        bool     `json:"healthy"`
	DatabasePath   string   `json:"databasePath"`
	DatabaseExists bool     `json:"databaseExists"`
	TablesPresent  []string `json:"tablesPresent,omitempty"`
	MissingTables  []string `json:"missingTables,omitempty"`
	IntegrityCheck bool     `json:"integrityCheck"`
	TotalRows      int      `json:"totalRows"`
	Error          string   `json:"error,omitempty"`
}
