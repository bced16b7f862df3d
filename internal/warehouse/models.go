package warehouse

import "time"

// SnapshotStatus tracks a staged snapshot through the warehouse step.
type SnapshotStatus string

const (
	SnapshotPending    SnapshotStatus = "pending"
	SnapshotWarehoused SnapshotStatus = "warehoused"
	SnapshotFailed     SnapshotStatus = "failed"
)

// SnapshotRecord is a staged harvest awaiting (or finished with) warehousing.
type SnapshotRecord struct {
	ID           string
	ChannelID    string
	ChannelName  string
	Status       SnapshotStatus
	PayloadJSON  string
	ErrorMessage string
	CreatedAt    time.Time
	WarehousedAt time.Time
}

// ChannelSummary is the channel listing used by the CLI and dashboard API.
type ChannelSummary struct {
	ID          string
	Title       string
	Subscribers int64
	TotalVideos int64
	HarvestedAt time.Time
}

// Stats aggregates row counts for status output.
type Stats struct {
	Channels            int
	Videos              int
	Comments            int
	PendingSnapshots    int
	FailedSnapshots     int
	WarehousedSnapshots int
}

// DatabaseHealth captures diagnostic information about the warehouse database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	TotalRows        int
	Error            string
}
