package warehouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ytharvest/internal/records"
)

// StageSnapshot stores a raw harvest for later warehousing and returns its ID.
func (s *Store) StageSnapshot(ctx context.Context, snap records.Snapshot) (string, error) {
	if snap.Channel.ID == "" {
		return "", errors.New("snapshot has no channel id")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO snapshots (id, channel_id, channel_name, status, payload_json, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		snap.Channel.ID,
		nullableString(snap.Channel.Title),
		SnapshotPending,
		string(payload),
		now,
	)
	if err != nil {
		return "", fmt.Errorf("stage snapshot: %w", err)
	}
	return id, nil
}

// PendingSnapshots returns staged snapshots that have not been warehoused,
// oldest first.
func (s *Store) PendingSnapshots(ctx context.Context) ([]SnapshotRecord, error) {
	return s.snapshotsByStatus(ctx, SnapshotPending)
}

// FailedSnapshots returns snapshots whose warehousing failed.
func (s *Store) FailedSnapshots(ctx context.Context) ([]SnapshotRecord, error) {
	return s.snapshotsByStatus(ctx, SnapshotFailed)
}

func (s *Store) snapshotsByStatus(ctx context.Context, status SnapshotStatus) ([]SnapshotRecord, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, channel_id, channel_name, status, payload_json, error_message, created_at, warehoused_at
         FROM snapshots WHERE status = ? ORDER BY created_at`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var result []SnapshotRecord
	for rows.Next() {
		record, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, rows.Err()
}

// MarkWarehoused marks a snapshot as successfully warehoused.
func (s *Store) MarkWarehoused(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(
		ctx,
		`UPDATE snapshots SET status = ?, warehoused_at = ?, error_message = NULL WHERE id = ?`,
		SnapshotWarehoused, now, id,
	)
	if err != nil {
		return fmt.Errorf("mark warehoused: %w", err)
	}
	return nil
}

// MarkFailed records a warehousing failure against a snapshot.
func (s *Store) MarkFailed(ctx context.Context, id string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	_, err := s.execWithRetry(
		ctx,
		`UPDATE snapshots SET status = ?, error_message = ? WHERE id = ?`,
		SnapshotFailed, nullableString(message), id,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// RetryFailedSnapshots moves failed snapshots back to pending. It returns the
// number of snapshots reset.
func (s *Store) RetryFailedSnapshots(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE snapshots SET status = ?, error_message = NULL WHERE status = ?`,
		SnapshotPending, SnapshotFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("retry failed snapshots: %w", err)
	}
	return res.RowsAffected()
}

// ClearSnapshots removes warehoused snapshots older than the cutoff. A zero
// cutoff removes all warehoused snapshots.
func (s *Store) ClearSnapshots(ctx context.Context, cutoff time.Time) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if cutoff.IsZero() {
		res, err = s.execWithRetry(ctx, `DELETE FROM snapshots WHERE status = ?`, SnapshotWarehoused)
	} else {
		res, err = s.execWithRetry(ctx,
			`DELETE FROM snapshots WHERE status = ? AND created_at < ?`,
			SnapshotWarehoused, cutoff.UTC().Format(time.RFC3339Nano),
		)
	}
	if err != nil {
		return 0, fmt.Errorf("clear snapshots: %w", err)
	}
	return res.RowsAffected()
}

// DecodeSnapshot unmarshals a staged payload back into a records.Snapshot.
func DecodeSnapshot(record SnapshotRecord) (records.Snapshot, error) {
	var snap records.Snapshot
	if err := json.Unmarshal([]byte(record.PayloadJSON), &snap); err != nil {
		return records.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", record.ID, err)
	}
	return snap, nil
}

func scanSnapshot(scanner interface{ Scan(dest ...any) error }) (*SnapshotRecord, error) {
	var (
		record       SnapshotRecord
		channelName  sql.NullString
		statusStr    string
		errorMessage sql.NullString
		createdRaw   sql.NullString
		warehousedAt sql.NullString
	)
	if err := scanner.Scan(
		&record.ID,
		&record.ChannelID,
		&channelName,
		&statusStr,
		&record.PayloadJSON,
		&errorMessage,
		&createdRaw,
		&warehousedAt,
	); err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	record.ChannelName = channelName.String
	record.Status = SnapshotStatus(statusStr)
	record.ErrorMessage = errorMessage.String
	if createdRaw.Valid {
		if t, err := parseTimeString(createdRaw.String); err == nil {
			record.CreatedAt = t
		}
	}
	if warehousedAt.Valid {
		if t, err := parseTimeString(warehousedAt.String); err == nil {
			record.WarehousedAt = t
		}
	}
	return &record, nil
}
