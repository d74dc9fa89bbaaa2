package gnews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const batchExecuteEndpoint = "https://news.google.com/_/DotsSplashUi/data/batchexecute?rpcids=Fbv4je"

// BatchExecuteResolver resolves AU_yqL redirect tokens through Google's
// batchexecute RPC endpoint.
type BatchExecuteResolver struct {
	endpoint   string
	httpClient *http.Client
}

type BatchExecuteOption func(*BatchExecuteResolver)

// WithEndpoint overrides the RPC endpoint. Used by tests.
func WithEndpoint(endpoint string) BatchExecuteOption {
	return func(r *BatchExecuteResolver) {
		r.endpoint = endpoint
	}
}

// WithResolverHTTPClient overrides the HTTP client.
func WithResolverHTTPClient(hc *http.Client) BatchExecuteOption {
	return func(r *BatchExecuteResolver) {
		r.httpClient = hc
	}
}

func NewBatchExecuteResolver(opts ...BatchExecuteOption) *BatchExecuteResolver {
	r := &BatchExecuteResolver{
		endpoint:   batchExecuteEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve posts a garturlreq RPC for the token and extracts the
// publisher URL from the garturlres marker in the response.
func (r *BatchExecuteResolver) Resolve(ctx context.Context, token string) (string, error) {
	payload := `[[["Fbv4je","[\"garturlreq\",[[\"en-US\",\"US\",[\"FINANCE_TOP_INDICES\",\"WEB_TEST_1_0_0\"],` +
		`null,null,1,1,\"US:en\",null,180,null,null,null,null,null,0,null,null,[1608992183,723341000]],` +
		`\"en-US\",\"US\",1,[2,3,4,8],1,0,\"655000234\",0,0,null,0],\"` +
		token +
		`\"]",null,"generic"]]]`

	form := url.Values{"f.req": {payload}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build batchexecute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Referer", "https://news.google.com/")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("batchexecute request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("batchexecute returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read batchexecute response: %w", err)
	}

	const (
		header = `[\"garturlres\",\"`
		footer = `\",`
	)
	text := string(body)
	start := strings.Index(text, header)
	if start == -1 {
		return "", fmt.Errorf("garturlres marker not found in response")
	}
	rest := text[start+len(header):]
	end := strings.Index(rest, footer)
	if end == -1 {
		return "", fmt.Errorf("unterminated garturlres payload in response")
	}
	return rest[:end], nil
}
