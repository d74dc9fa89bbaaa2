package gnews

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jkwoo/feedwire/app/urlx"
)

// URLResolver turns Google News redirect links into publisher URLs.
type URLResolver interface {
	OriginalURL(ctx context.Context, googleLink string) string
}

// LinkResolver resolves redirect links by decoding them, and falls back
// to following HTTP redirects when decoding leaves the URL unchanged.
// Resolution never fails: when everything is exhausted the canonicalized
// input is returned.
type LinkResolver struct {
	decoder    *Decoder
	httpClient *http.Client
	maxRetries int
	logger     *slog.Logger
}

type LinkResolverOption func(*LinkResolver)

// WithRedirectRetries overrides how many times the HTTP fallback is
// attempted.
func WithRedirectRetries(n int) LinkResolverOption {
	return func(r *LinkResolver) {
		r.maxRetries = n
	}
}

// WithLinkHTTPClient overrides the HTTP client used for the redirect
// fallback.
func WithLinkHTTPClient(hc *http.Client) LinkResolverOption {
	return func(r *LinkResolver) {
		r.httpClient = hc
	}
}

func NewLinkResolver(decoder *Decoder, logger *slog.Logger, opts ...LinkResolverOption) *LinkResolver {
	r := &LinkResolver{
		decoder:    decoder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 5,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OriginalURL returns the publisher URL behind googleLink.
func (r *LinkResolver) OriginalURL(ctx context.Context, googleLink string) string {
	decoded := r.decoder.Decode(ctx, googleLink)
	if decoded != googleLink {
		return decoded
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		final, err := r.followRedirects(ctx, googleLink)
		if err != nil {
			r.logger.Error("failed to follow redirect", "url", googleLink, "error", err)
			continue
		}
		if final != "" {
			return final
		}
	}

	r.logger.Warn("could not resolve original URL, using source link", "url", googleLink)
	return urlx.Canonicalize(googleLink)
}

func (r *LinkResolver) followRedirects(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		return urlx.Canonicalize(resp.Request.URL.String()), nil
	}
	return "", nil
}
