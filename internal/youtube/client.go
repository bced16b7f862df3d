package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ytharvest/internal/logging"
)

// ErrChannelNotFound is returned when the API reports no channel for an ID.
var ErrChannelNotFound = errors.New("channel not found")

// ErrCommentsDisabled is returned when a video has comments turned off.
var ErrCommentsDisabled = errors.New("comments disabled")

const videoBatchSize = 50

// Fetcher defines the API operations the harvester depends on.
type Fetcher interface {
	ChannelDetails(ctx context.Context, channelID string) (*Channel, error)
	PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]Video, error)
	VideoComments(ctx context.Context, videoID string, maxComments int) ([]Comment, error)
}

// Client provides access to the YouTube Data API v3.
type Client struct {
	apiKey       string
	baseURL      string
	playlistPage int
	commentPage  int
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger used for batch-skip warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "youtube")
		}
	}
}

// WithPageSizes overrides the playlistItems and commentThreads page sizes.
// Values outside the API limits (50 and 100) are clamped.
func WithPageSizes(playlist, comments int) Option {
	return func(c *Client) {
		if playlist > 0 && playlist <= 50 {
			c.playlistPage = playlist
		}
		if comments > 0 && comments <= 100 {
			c.commentPage = comments
		}
	}
}

// New creates a YouTube Data API client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("youtube base url required")
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		playlistPage: 50,
		commentPage:  100,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ChannelDetails fetches snippet, statistics, and contentDetails for a channel.
func (c *Client) ChannelDetails(ctx context.Context, channelID string) (*Channel, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, errors.New("channel id must not be empty")
	}
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", channelID)

	var payload channelListResponse
	if err := c.get(ctx, "/channels", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	item := payload.Items[0]
	return &Channel{
		ID:                item.ID,
		Title:             item.Snippet.Title,
		Description:       item.Snippet.Description,
		Country:           item.Snippet.Country,
		SubscriberCount:   item.Statistics.SubscriberCount,
		VideoCount:        item.Statistics.VideoCount,
		ViewCount:         item.Statistics.ViewCount,
		UploadsPlaylistID: item.ContentDetails.RelatedPlaylists.Uploads,
	}, nil
}

// PlaylistVideoIDs walks a playlist and returns every video ID, following
// nextPageToken until the API stops returning one.
func (c *Client) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}

	var ids []string
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(c.playlistPage))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var payload playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", params, &payload); err != nil {
			return nil, err
		}
		for _, item := range payload.Items {
			if id := item.ContentDetails.VideoID; id != "" {
				ids = append(ids, id)
			}
		}
		// A server that echoes the same token back would loop forever.
		if payload.NextPageToken == "" || payload.NextPageToken == pageToken {
			break
		}
		pageToken = payload.NextPageToken
	}
	return ids, nil
}

// VideoDetails fetches details for the given IDs in batches of 50. A failed
// batch is logged and skipped; the remaining batches still run. An error is
// returned only when every batch fails.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	var (
		videos   []Video
		failures int
		lastErr  error
	)
	for start := 0; start < len(videoIDs); start += videoBatchSize {
		end := start + videoBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[start:end]

		params := url.Values{}
		params.Set("part", "snippet,statistics,contentDetails")
		params.Set("id", strings.Join(batch, ","))

		var payload videoListResponse
		if err := c.get(ctx, "/videos", params, &payload); err != nil {
			if ctx.Err() != nil {
				return videos, ctx.Err()
			}
			failures++
			lastErr = err
			c.logger.Warn("video details batch failed; skipping",
				logging.Int("batch_start", start),
				logging.Int("batch_size", len(batch)),
				logging.Error(err),
			)
			continue
		}
		for _, item := range payload.Items {
			videos = append(videos, Video{
				ID:           item.ID,
				ChannelID:    item.Snippet.ChannelID,
				Title:        item.Snippet.Title,
				PublishedAt:  item.Snippet.PublishedAt,
				ViewCount:    item.Statistics.ViewCount,
				LikeCount:    item.Statistics.LikeCount,
				CommentCount: item.Statistics.CommentCount,
				Duration:     item.ContentDetails.Duration,
			})
		}
	}

	if failures > 0 && len(videos) == 0 {
		return nil, fmt.Errorf("all video detail batches failed: %w", lastErr)
	}
	return videos, nil
}

// VideoComments fetches up to maxComments top-level comments for a video.
// Videos with comments disabled return ErrCommentsDisabled.
func (c *Client) VideoComments(ctx context.Context, videoID string, maxComments int) ([]Comment, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errors.New("video id must not be empty")
	}
	if maxComments <= 0 {
		return nil, nil
	}

	var comments []Comment
	pageToken := ""
	for len(comments) < maxComments {
		pageSize := c.commentPage
		if remaining := maxComments - len(comments); remaining < pageSize {
			pageSize = remaining
		}

		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("maxResults", strconv.Itoa(pageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var payload commentThreadsResponse
		if err := c.get(ctx, "/commentThreads", params, &payload); err != nil {
			return nil, err
		}
		for _, item := range payload.Items {
			comments = append(comments, Comment{
				ID:          item.ID,
				VideoID:     videoID,
				Author:      item.Snippet.TopLevelComment.Snippet.AuthorDisplayName,
				Text:        item.Snippet.TopLevelComment.Snippet.TextDisplay,
				PublishedAt: item.Snippet.TopLevelComment.Snippet.PublishedAt,
			})
			if len(comments) >= maxComments {
				break
			}
		}
		if payload.NextPageToken == "" || payload.NextPageToken == pageToken {
			break
		}
		pageToken = payload.NextPageToken
	}
	return comments, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse youtube url: %w", err)
	}
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(path, resp, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

func (c *Client) apiError(path string, resp *http.Response, latency time.Duration) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload apiErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, detail := range payload.Error.Errors {
			if resp.StatusCode == http.StatusForbidden && detail.Reason == "commentsDisabled" {
				return ErrCommentsDisabled
			}
		}
		if payload.Error.Message != "" {
			return fmt.Errorf("youtube %s returned %d: %s (latency=%v)", path, resp.StatusCode, payload.Error.Message, latency)
		}
	}
	return fmt.Errorf("youtube %s returned %d (latency=%v)", path, resp.StatusCode, latency)
}
