package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ytharvest/internal/records"
)

// UpsertChannel inserts a channel row or updates its mutable fields.
func (s *Store) UpsertChannel(ctx context.Context, row records.Channel) error {
	if strings.TrimSpace(row.ID) == "" {
		return errors.New("channel id is empty")
	}
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO channels (channel_id, channel_name, subscribers, total_videos, uploads_playlist_id, harvested_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(channel_id) DO UPDATE SET
             channel_name = excluded.channel_name,
             subscribers = excluded.subscribers,
             total_videos = excluded.total_videos,
             uploads_playlist_id = excluded.uploads_playlist_id,
             harvested_at = excluded.harvested_at`,
		row.ID,
		row.Title,
		row.Subscribers,
		row.TotalVideos,
		nullableString(row.UploadsPlaylistID),
		row.HarvestedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert channel: %w", err)
	}
	return nil
}

// UpsertVideos inserts or updates video rows in a single transaction.
func (s *Store) UpsertVideos(ctx context.Context, rows []records.Video) error {
	if len(rows) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin videos tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO videos (video_id, channel_id, title, published_at, views, likes, comment_count, duration_seconds)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)
             ON CONFLICT(video_id) DO UPDATE SET
                 title = excluded.title,
                 published_at = excluded.published_at,
                 views = excluded.views,
                 likes = excluded.likes,
                 comment_count = excluded.comment_count,
                 duration_seconds = excluded.duration_seconds`)
		if err != nil {
			return fmt.Errorf("prepare video upsert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if strings.TrimSpace(row.ID) == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx,
				row.ID,
				row.ChannelID,
				row.Title,
				nullableTimeString(row.PublishedAt),
				row.Views,
				row.Likes,
				row.CommentCount,
				row.DurationSeconds,
			); err != nil {
				return fmt.Errorf("upsert video %s: %w", row.ID, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit videos: %w", err)
		}
		return nil
	})
}

// InsertComments inserts comment rows, skipping any that already exist.
// Comments never change after insert.
func (s *Store) InsertComments(ctx context.Context, rows []records.Comment) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	ctx = ensureContext(ctx)
	var inserted int64
	err := retryOnBusy(ctx, func() error {
		inserted = 0
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin comments tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO comments (comment_id, video_id, author, comment_text, published_at)
             VALUES (?, ?, ?, ?, ?)
             ON CONFLICT(comment_id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("prepare comment insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if strings.TrimSpace(row.ID) == "" {
				continue
			}
			res, err := stmt.ExecContext(ctx,
				row.ID,
				row.VideoID,
				nullableString(row.Author),
				nullableString(row.Text),
				nullableTimeString(row.PublishedAt),
			)
			if err != nil {
				return fmt.Errorf("insert comment %s: %w", row.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += n
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Channels returns every warehoused channel ordered by name.
func (s *Store) Channels(ctx context.Context) ([]ChannelSummary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT channel_id, channel_name, subscribers, total_videos, harvested_at
         FROM channels ORDER BY channel_name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []ChannelSummary
	for rows.Next() {
		var (
			summary     ChannelSummary
			harvestedAt sql.NullString
		)
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Subscribers, &summary.TotalVideos, &harvestedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		if harvestedAt.Valid {
			if t, err := parseTimeString(harvestedAt.String); err == nil {
				summary.HarvestedAt = t
			}
		}
		channels = append(channels, summary)
	}
	return channels, rows.Err()
}

// Stats returns row counts across warehouse tables.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	stats := Stats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(1) FROM channels", &stats.Channels},
		{"SELECT COUNT(1) FROM videos", &stats.Videos},
		{"SELECT COUNT(1) FROM comments", &stats.Comments},
		{"SELECT COUNT(1) FROM snapshots WHERE status = 'pending'", &stats.PendingSnapshots},
		{"SELECT COUNT(1) FROM snapshots WHERE status = 'failed'", &stats.FailedSnapshots},
		{"SELECT COUNT(1) FROM snapshots WHERE status = 'warehoused'", &stats.WarehousedSnapshots},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("warehouse stats: %w", err)
		}
	}
	return stats, nil
}

// CheckHealth returns diagnostic information about the warehouse database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("warehouse database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat warehouse database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("warehouse database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("warehouse database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping warehouse database: %w", err)
	}
	health.DatabaseReadable = true

	expected := []string{"channels", "videos", "comments", "snapshots"}
	present := make(map[string]struct{}, len(expected))
	tableRows, err := s.db.QueryContext(connCtx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("query table info: %w", err)
	}
	defer tableRows.Close()
	for tableRows.Next() {
		var name string
		if err := tableRows.Scan(&name); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("scan table info: %w", err)
		}
		present[name] = struct{}{}
	}
	if err := tableRows.Err(); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("iterate table info: %w", err)
	}

	for _, name := range expected {
		if _, ok := present[name]; ok {
			health.TablesPresent = append(health.TablesPresent, name)
		} else {
			health.MissingTables = append(health.MissingTables, name)
		}
	}

	if len(health.MissingTables) == 0 {
		for _, table := range expected[:3] {
			var count int
			if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
				health.Error = err.Error()
				return health, fmt.Errorf("count %s rows: %w", table, err)
			}
			health.TotalRows += count
		}
	}

	var integrityResult string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
