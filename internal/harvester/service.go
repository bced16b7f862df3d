package harvester

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"ytharvest/internal/config"
	"ytharvest/internal/logging"
	"ytharvest/internal/notifications"
	"ytharvest/internal/records"
	"ytharvest/internal/warehouse"
	"ytharvest/internal/youtube"
)

// ErrHarvestInProgress indicates another process holds the harvest lock.
var ErrHarvestInProgress = errors.New("another harvest is already running")

// Service orchestrates the two harvest phases: collect stages raw API
// snapshots, warehouse reshapes staged snapshots into warehouse rows.
type Service struct {
	cfg      *config.Config
	fetcher  youtube.Fetcher
	store    *warehouse.Store
	notifier notifications.Service
	logger   *slog.Logger
}

// NewService wires a harvester from its collaborators. A nil notifier or
// logger is replaced with a no-op.
func NewService(cfg *config.Config, fetcher youtube.Fetcher, store *warehouse.Store, notifier notifications.Service, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "harvester"),
	}
}

// CollectResult summarizes one staged harvest.
type CollectResult struct {
	SnapshotID       string
	ChannelID        string
	ChannelName      string
	Videos           int
	Comments         int
	CommentsDisabled int
}

// Collect fetches a channel's metadata, uploads, and comments from the API
// and stages the result as a snapshot for later warehousing.
func (s *Service) Collect(ctx context.Context, channelID string) (*CollectResult, error) {
	unlock, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	result, err := s.collect(ctx, channelID)
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "collect")
		return nil, err
	}
	_ = s.notifier.NotifyCollectCompleted(ctx, result.ChannelName, result.Videos, result.Comments)
	return result, nil
}

func (s *Service) collect(ctx context.Context, channelID string) (*CollectResult, error) {
	started := time.Now()
	s.logger.Info("collect started", logging.String("channel_id", channelID))

	channel, err := s.fetcher.ChannelDetails(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}

	var videoIDs []string
	if channel.UploadsPlaylistID != "" {
		videoIDs, err = s.fetcher.PlaylistVideoIDs(ctx, channel.UploadsPlaylistID)
		if err != nil {
			return nil, fmt.Errorf("fetch uploads for %s: %w", channelID, err)
		}
	} else {
		s.logger.Warn("channel has no uploads playlist", logging.String("channel_id", channelID))
	}

	var videos []youtube.Video
	if len(videoIDs) > 0 {
		videos, err = s.fetcher.VideoDetails(ctx, videoIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch videos for %s: %w", channelID, err)
		}
	}

	var (
		comments         []youtube.Comment
		commentsDisabled int
	)
	for _, video := range videos {
		batch, err := s.fetcher.VideoComments(ctx, video.ID, s.cfg.YouTube.MaxCommentsPerVideo)
		if err != nil {
			if errors.Is(err, youtube.ErrCommentsDisabled) {
				commentsDisabled++
				s.logger.Debug("comments disabled", logging.String("video_id", video.ID))
				continue
			}
			// A single video's comment failure should not sink the harvest.
			s.logger.Warn("fetch comments failed",
				logging.String("video_id", video.ID),
				logging.Error(err))
			continue
		}
		comments = append(comments, batch...)
	}

	snap := records.Snapshot{
		Channel:     *channel,
		Videos:      videos,
		Comments:    comments,
		CollectedAt: time.Now().UTC(),
	}
	snapshotID, err := s.store.StageSnapshot(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("stage snapshot: %w", err)
	}

	s.logger.Info("collect completed",
		logging.String("channel_id", channelID),
		logging.String("channel_name", channel.Title),
		logging.String("snapshot_id", snapshotID),
		logging.Int("videos", len(videos)),
		logging.Int("comments", len(comments)),
		logging.Int("comments_disabled", commentsDisabled),
		logging.Duration("elapsed", time.Since(started)))

	return &CollectResult{
		SnapshotID:       snapshotID,
		ChannelID:        channel.ID,
		ChannelName:      channel.Title,
		Videos:           len(videos),
		Comments:         len(comments),
		CommentsDisabled: commentsDisabled,
	}, nil
}

// WarehouseResult summarizes one warehouse pass over staged snapshots.
type WarehouseResult struct {
	Processed int
	Failed    int
	Comments  int64
}

// Warehouse reshapes every pending snapshot into warehouse rows. A snapshot
// that fails is marked failed and does not stop the pass.
func (s *Service) Warehouse(ctx context.Context) (*WarehouseResult, error) {
	unlock, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	started := time.Now()
	pending, err := s.store.PendingSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending snapshots: %w", err)
	}

	result := &WarehouseResult{}
	for _, record := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.warehouseSnapshot(ctx, record, result); err != nil {
			result.Failed++
			s.logger.Error("warehouse snapshot failed",
				logging.String("snapshot_id", record.ID),
				logging.String("channel_id", record.ChannelID),
				logging.Error(err))
			if markErr := s.store.MarkFailed(ctx, record.ID, err); markErr != nil {
				s.logger.Error("mark snapshot failed", logging.Error(markErr))
			}
			continue
		}
		result.Processed++
	}

	s.logger.Info("warehouse completed",
		logging.Int("processed", result.Processed),
		logging.Int("failed", result.Failed),
		logging.Int64("new_comments", result.Comments),
		logging.Duration("elapsed", time.Since(started)))

	if result.Processed > 0 || result.Failed > 0 {
		_ = s.notifier.NotifyWarehouseCompleted(ctx, result.Processed, result.Failed, time.Since(started))
	}
	if result.Failed > 0 {
		_ = s.notifier.NotifyError(ctx, fmt.Errorf("%d snapshots failed", result.Failed), "warehouse")
	}
	return result, nil
}

func (s *Service) warehouseSnapshot(ctx context.Context, record warehouse.SnapshotRecord, result *WarehouseResult) error {
	snap, err := warehouse.DecodeSnapshot(record)
	if err != nil {
		return err
	}

	harvestedAt := snap.CollectedAt
	if harvestedAt.IsZero() {
		harvestedAt = record.CreatedAt
	}

	if err := s.store.UpsertChannel(ctx, records.FromChannel(snap.Channel, harvestedAt)); err != nil {
		return err
	}
	if err := s.store.UpsertVideos(ctx, records.FromVideos(snap.Videos)); err != nil {
		return err
	}
	inserted, err := s.store.InsertComments(ctx, records.FromComments(snap.Comments))
	if err != nil {
		return err
	}
	result.Comments += inserted

	return s.store.MarkWarehoused(ctx, record.ID)
}

// HarvestResult combines the collect and warehouse phases for one channel.
type HarvestResult struct {
	Collect   CollectResult
	Warehouse WarehouseResult
}

// Harvest runs collect followed by warehouse for a single channel.
func (s *Service) Harvest(ctx context.Context, channelID string) (*HarvestResult, error) {
	collected, err := s.Collect(ctx, channelID)
	if err != nil {
		return nil, err
	}
	warehoused, err := s.Warehouse(ctx)
	if err != nil {
		return nil, err
	}
	return &HarvestResult{Collect: *collected, Warehouse: *warehoused}, nil
}

// acquireLock takes the harvest file lock, failing fast when another process
// holds it. The returned func releases the lock.
func (s *Service) acquireLock() (func(), error) {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(s.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire harvest lock: %w", err)
	}
	if !locked {
		return nil, ErrHarvestInProgress
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("release harvest lock", logging.Error(err))
		}
	}, nil
}
