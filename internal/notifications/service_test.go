package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ytharvest/internal/config"
	"ytharvest/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyCollectCompleted(context.Background(), "Example", 10, 100); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "collect completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCollectCompleted(context.Background(), "Tech Channel", 42, 380)
			},
			expectTitle:   "ytharvest - Collect Complete",
			expectMessage: "Collected Tech Channel: 42 videos, 380 comments",
			expectTags:    "ytharvest,collect,completed",
		},
		{
			name: "warehouse completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyWarehouseCompleted(context.Background(), 3, 0, 42*time.Second)
			},
			expectTitle:   "ytharvest - Warehouse Complete",
			expectMessage: "Warehoused 3 snapshots in 42s",
			expectTags:    "ytharvest,warehouse,completed",
		},
		{
			name: "warehouse completed with failures",
			notify: func(svc notifications.Service) error {
				return svc.NotifyWarehouseCompleted(context.Background(), 2, 1, time.Minute)
			},
			expectTitle:   "ytharvest - Warehouse Complete (with errors)",
			expectMessage: "Warehoused 2 snapshots, 1 failed in 1m0s",
			expectTags:    "ytharvest,warehouse,completed",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("quota exceeded"), "collect")
			},
			expectTitle:    "ytharvest - Error",
			expectMessage:  "Error with collect: quota exceeded",
			expectTags:     "ytharvest,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Collect = false
	cfg.Notifications.Warehouse = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyCollectCompleted(ctx, "Channel", 1, 2); err != nil {
		t.Fatalf("disabled collect event returned error: %v", err)
	}
	if err := svc.NotifyWarehouseCompleted(ctx, 1, 0, time.Second); err != nil {
		t.Fatalf("disabled warehouse event returned error: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "collect"); err != nil {
		t.Fatalf("disabled error event returned error: %v", err)
	}
}

func TestNtfyServiceSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error from rejected notification")
	}
}
