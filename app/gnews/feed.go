package gnews

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mmcdole/gofeed"
)

// FeedFetcher downloads and parses a Google News RSS feed. Transient
// failures are retried on a fixed delay; client errors abort
// immediately.
type FeedFetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	maxAttempts  int
	retryDelay   time.Duration
}

type FetcherOption func(*FeedFetcher)

// WithFetchRetryPolicy overrides the attempt count and delay between
// attempts. Used by tests to avoid real sleeps.
func WithFetchRetryPolicy(maxAttempts int, delay time.Duration) FetcherOption {
	return func(f *FeedFetcher) {
		f.maxAttempts = maxAttempts
		f.retryDelay = delay
	}
}

// WithFetchHTTPClient overrides the HTTP client used for downloads.
func WithFetchHTTPClient(hc *http.Client) FetcherOption {
	return func(f *FeedFetcher) {
		f.httpClient = hc
	}
}

func NewFeedFetcher(opts ...FetcherOption) *FeedFetcher {
	f := &FeedFetcher{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		gofeedParser: gofeed.NewParser(),
		maxAttempts:  3,
		retryDelay:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads and parses the feed at feedURL.
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	var data []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client errors will not recover on retry.
			return backoff.Permanent(fmt.Errorf("feed request returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("feed request returned status %d", resp.StatusCode)
		}

		data, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.retryDelay), uint64(f.maxAttempts-1)),
		ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}

	feed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}
