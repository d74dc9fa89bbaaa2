package discord

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Post_SendsPayload(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL,
		WithIdentity("News Bot", "https://example.com/avatar.png"),
		WithRetryPolicy(1, 0))

	if err := client.Post(context.Background(), "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if received.Content != "hello" {
		t.Errorf("Expected content %q, got %q", "hello", received.Content)
	}
	if received.Username != "News Bot" {
		t.Errorf("Expected username to be set, got %q", received.Username)
	}
	if received.AvatarURL != "https://example.com/avatar.png" {
		t.Errorf("Expected avatar URL to be set, got %q", received.AvatarURL)
	}
}

func TestClient_Post_RetriesUntilSuccess(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryPolicy(3, time.Millisecond))

	if err := client.Post(context.Background(), "retry me"); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestClient_Post_ExhaustsRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryPolicy(3, time.Millisecond))

	err := client.Post(context.Background(), "doomed")
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}

	var whErr *WebhookError
	if !errors.As(err, &whErr) {
		t.Fatalf("Expected *WebhookError, got %T", err)
	}
	if whErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502 in error, got %d", whErr.StatusCode)
	}
}

func TestClient_PostEmbed(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryPolicy(1, 0))

	embed := Embed{
		Title:       "Video details",
		Description: "A description",
		Color:       16711680,
		Fields:      []EmbedField{{Name: "Duration", Value: "10:31", Inline: true}},
	}
	if err := client.PostEmbed(context.Background(), "detail", embed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(received.Embeds) != 1 {
		t.Fatalf("Expected 1 embed, got %d", len(received.Embeds))
	}
	if received.Embeds[0].Color != 16711680 {
		t.Errorf("Expected red embed color, got %d", received.Embeds[0].Color)
	}
	if len(received.Embeds[0].Fields) != 1 || received.Embeds[0].Fields[0].Value != "10:31" {
		t.Errorf("Embed fields did not round-trip: %+v", received.Embeds[0].Fields)
	}
}

func TestClient_Post_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetryPolicy(3, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.Post(ctx, "cancelled"); err == nil {
		t.Fatal("Expected error when context is cancelled")
	}
}
