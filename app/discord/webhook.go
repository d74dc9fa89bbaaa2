package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second
)

// WebhookError wraps delivery failures so callers can tell them apart
// from API or persistence failures.
type WebhookError struct {
	StatusCode int
	Err        error
}

func (e *WebhookError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webhook delivery failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook delivery failed: %v", e.Err)
}

func (e *WebhookError) Unwrap() error {
	return e.Err
}

// Message is the webhook payload. Content holds the plain text body;
// Embeds carries optional rich embeds.
type Message struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord rich embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedMedia struct {
	URL string `json:"url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Client posts messages to a single Discord webhook URL. Failed posts
// are retried on a fixed delay before giving up.
type Client struct {
	url         string
	username    string
	avatarURL   string
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
}

type Option func(*Client)

// WithIdentity overrides the webhook's display name and avatar.
func WithIdentity(username, avatarURL string) Option {
	return func(c *Client) {
		c.username = username
		c.avatarURL = avatarURL
	}
}

// WithRetryPolicy overrides the attempt count and delay between
// attempts. Used by tests to avoid real sleeps.
func WithRetryPolicy(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.retryDelay = delay
	}
}

// WithHTTPClient overrides the HTTP client used for delivery.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a webhook client for url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:         url,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post delivers a plain text message.
func (c *Client) Post(ctx context.Context, content string) error {
	return c.send(ctx, Message{Content: content})
}

// PostEmbed delivers a message carrying a rich embed alongside optional
// plain text content.
func (c *Client) PostEmbed(ctx context.Context, content string, embed Embed) error {
	return c.send(ctx, Message{Content: content, Embeds: []Embed{embed}})
}

func (c *Client) send(ctx context.Context, msg Message) error {
	msg.Username = c.username
	msg.AvatarURL = c.avatarURL

	body, err := json.Marshal(msg)
	if err != nil {
		return &WebhookError{Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	op := func() error {
		return c.post(ctx, body)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxAttempts-1)),
		ctx)

	if err := backoff.Retry(op, policy); err != nil {
		var whErr *WebhookError
		if errors.As(err, &whErr) {
			return whErr
		}
		return &WebhookError{Err: err}
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &WebhookError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &WebhookError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &WebhookError{StatusCode: resp.StatusCode}
	}
	return nil
}
