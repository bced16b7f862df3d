package youtube_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ytharvest/internal/youtube"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := youtube.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestChannelDetailsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "key" {
			t.Fatalf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("id") != "UC123" {
			t.Fatalf("expected channel id, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{
				"id": "UC123",
				"snippet": {"title": "Example Channel"},
				"statistics": {"subscriberCount": "1200", "videoCount": "34"},
				"contentDetails": {"relatedPlaylists": {"uploads": "UU123"}}
			}]
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	channel, err := client.ChannelDetails(context.Background(), "UC123")
	if err != nil {
		t.Fatalf("ChannelDetails returned error: %v", err)
	}
	if channel.Title != "Example Channel" || channel.UploadsPlaylistID != "UU123" {
		t.Fatalf("unexpected channel: %#v", channel)
	}
	if channel.SubscriberCount != "1200" {
		t.Fatalf("subscriber count = %q", channel.SubscriberCount)
	}
}

func TestChannelDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.ChannelDetails(context.Background(), "UCmissing")
	if !errors.Is(err, youtube.ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestPlaylistVideoIDsFollowsPageTokens(t *testing.T) {
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)
		w.Header().Set("Content-Type", "application/json")
		switch token {
		case "":
			_, _ = w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"a"}},{"contentDetails":{"videoId":"b"}}],"nextPageToken":"page2"}`))
		case "page2":
			_, _ = w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"c"}}]}`))
		default:
			t.Fatalf("unexpected page token %q", token)
		}
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ids, err := client.PlaylistVideoIDs(context.Background(), "UU123")
	if err != nil {
		t.Fatalf("PlaylistVideoIDs returned error: %v", err)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(tokens))
	}
}

func TestVideoDetailsBatchesFifty(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batchSizes = append(batchSizes, len(ids))
		w.Header().Set("Content-Type", "application/json")
		var sb strings.Builder
		sb.WriteString(`{"items":[`)
		for i, id := range ids {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"id":%q,"snippet":{"channelId":"UC1","title":"t"},"statistics":{"viewCount":"1"},"contentDetails":{"duration":"PT1M"}}`, id)
		}
		sb.WriteString(`]}`)
		_, _ = w.Write([]byte(sb.String()))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%03d", i)
	}
	videos, err := client.VideoDetails(context.Background(), ids)
	if err != nil {
		t.Fatalf("VideoDetails returned error: %v", err)
	}
	if len(videos) != 120 {
		t.Fatalf("expected 120 videos, got %d", len(videos))
	}
	want := []int{50, 50, 20}
	if len(batchSizes) != len(want) {
		t.Fatalf("batch sizes = %v", batchSizes)
	}
	for i, size := range want {
		if batchSizes[i] != size {
			t.Fatalf("batch %d size = %d, want %d", i, batchSizes[i], size)
		}
	}
}

func TestVideoDetailsSkipsFailedBatch(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"ok","snippet":{"channelId":"UC1"},"statistics":{},"contentDetails":{}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ids := make([]string, 60)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%02d", i)
	}
	videos, err := client.VideoDetails(context.Background(), ids)
	if err != nil {
		t.Fatalf("VideoDetails returned error: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "ok" {
		t.Fatalf("unexpected videos: %#v", videos)
	}
}

func TestVideoCommentsStopsAtMax(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var sb strings.Builder
		sb.WriteString(`{"items":[`)
		for i := 0; i < 100; i++ {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"id":"c%d","snippet":{"topLevelComment":{"snippet":{"authorDisplayName":"a","textDisplay":"hi","publishedAt":"2023-01-01T00:00:00Z"}}}}`, i)
		}
		sb.WriteString(`],"nextPageToken":"more"}`)
		_, _ = w.Write([]byte(sb.String()))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	comments, err := client.VideoComments(context.Background(), "vid", 150)
	if err != nil {
		t.Fatalf("VideoComments returned error: %v", err)
	}
	if len(comments) != 150 {
		t.Fatalf("expected 150 comments, got %d", len(comments))
	}
	if comments[0].VideoID != "vid" {
		t.Fatalf("comment video id = %q", comments[0].VideoID)
	}
}

func TestVideoCommentsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The video identified by the videoId parameter has disabled comments.","errors":[{"reason":"commentsDisabled"}]}}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.VideoComments(context.Background(), "vid", 10)
	if !errors.Is(err, youtube.ErrCommentsDisabled) {
		t.Fatalf("expected ErrCommentsDisabled, got %v", err)
	}
}

func TestAPIErrorIncludesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.ChannelDetails(context.Background(), "UC1")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected API message in error, got %v", err)
	}
}
