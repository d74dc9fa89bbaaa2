package gnews

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/jkwoo/feedwire/app/urlx"
)

// RemoteResolver resolves redirect tokens that cannot be decoded
// locally by asking Google's batchexecute endpoint.
type RemoteResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Decoder extracts publisher URLs from news.google.com redirect links.
// Tokens are tried against a chain of strategies: local payload
// extraction, remote resolution for AU_yqL tokens, and the legacy
// YouTube token layout. When every strategy fails the original URL is
// canonicalized and returned as-is.
type Decoder struct {
	resolver RemoteResolver
}

// NewDecoder creates a decoder. resolver may be nil, in which case
// AU_yqL tokens fall through to the remaining strategies.
func NewDecoder(resolver RemoteResolver) *Decoder {
	return &Decoder{resolver: resolver}
}

var (
	tokenPrefix = []byte{0x08, 0x13, 0x22}
	tokenSuffix = []byte{0xd2, 0x01, 0x00}

	youtubeMarker = []byte{0x08, 0x20, 0x22, 0x0b}
	youtubeTail   = []byte{0x98, 0x01, 0x01}

	embeddedURLRe = regexp.MustCompile(`https?://[^\s]+`)
)

// Decode returns the publisher URL behind a news.google.com article
// redirect. URLs that are not article redirects, and tokens no strategy
// can decode, come back canonicalized but otherwise untouched.
func (d *Decoder) Decode(ctx context.Context, sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() != "news.google.com" {
		return urlx.Canonicalize(sourceURL)
	}
	parts := strings.Split(u.Path, "/")
	if len(parts) < 2 || parts[len(parts)-2] != "articles" {
		return urlx.Canonicalize(sourceURL)
	}
	token := parts[len(parts)-1]

	if target, ok := d.decodePayload(ctx, token); ok {
		return target
	}
	if target, ok := decodeLegacy(token); ok {
		return target
	}

	return urlx.Canonicalize(sourceURL)
}

// decodePayload decodes the token's length-prefixed payload and either
// extracts an embedded URL or hands AU_yqL payloads to the remote
// resolver.
func (d *Decoder) decodePayload(ctx context.Context, token string) (string, bool) {
	raw, err := decodeBase64Token(token)
	if err != nil {
		return "", false
	}

	raw = bytes.TrimPrefix(raw, tokenPrefix)
	raw = bytes.TrimSuffix(raw, tokenSuffix)
	if len(raw) == 0 {
		return "", false
	}

	// The first byte is a length prefix. Values >= 0x80 indicate a
	// two-byte prefix with the payload starting one byte later.
	length := int(raw[0])
	start := 1
	if length >= 0x80 {
		start = 2
	}
	end := length + 1
	if end > len(raw) {
		end = len(raw)
	}
	if start >= end {
		return "", false
	}
	payload := raw[start:end]

	if bytes.HasPrefix(payload, []byte("AU_yqL")) {
		if d.resolver == nil {
			return "", false
		}
		// Remote resolution needs the full original token, not the
		// trimmed payload.
		resolved, err := d.resolver.Resolve(ctx, token)
		if err != nil {
			return "", false
		}
		return urlx.Canonicalize(resolved), true
	}

	if target, ok := extractEmbeddedURL(payload); ok {
		return urlx.Canonicalize(target), true
	}
	return "", false
}

// decodeLegacy handles the older token layout, which embeds either a
// YouTube video ID behind fixed marker bytes or a bare URL.
func decodeLegacy(token string) (string, bool) {
	raw, err := decodeBase64Token(token)
	if err != nil {
		return "", false
	}

	if id, ok := extractYouTubeID(raw); ok {
		return "https://www.youtube.com/watch?v=" + id, true
	}
	if target, ok := extractEmbeddedURL(raw); ok {
		return urlx.Canonicalize(target), true
	}
	return "", false
}

// decodeBase64Token decodes a URL-safe base64 token regardless of how
// much padding it carries.
func decodeBase64Token(token string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
}

// extractEmbeddedURL scans the printable runs of raw for an http(s)
// URL.
func extractEmbeddedURL(raw []byte) (string, bool) {
	for _, segment := range printableSegments(raw) {
		if match := embeddedURLRe.FindString(segment); match != "" {
			return match, true
		}
	}
	return "", false
}

// printableSegments splits raw on runs of bytes outside the printable
// ASCII range.
func printableSegments(raw []byte) []string {
	var segments []string
	var current []byte
	for _, b := range raw {
		if b >= 0x20 && b <= 0x7e {
			current = append(current, b)
			continue
		}
		if len(current) > 0 {
			segments = append(segments, string(current))
			current = nil
		}
	}
	if len(current) > 0 {
		segments = append(segments, string(current))
	}
	return segments
}

// extractYouTubeID finds an 11-character video ID wrapped in the legacy
// marker bytes.
func extractYouTubeID(raw []byte) (string, bool) {
	for i := 0; i+len(youtubeMarker)+11+len(youtubeTail) <= len(raw); i++ {
		if !bytes.Equal(raw[i:i+len(youtubeMarker)], youtubeMarker) {
			continue
		}
		id := raw[i+len(youtubeMarker) : i+len(youtubeMarker)+11]
		if !isVideoID(id) {
			continue
		}
		tail := raw[i+len(youtubeMarker)+11 : i+len(youtubeMarker)+11+len(youtubeTail)]
		if bytes.Equal(tail, youtubeTail) {
			return string(id), true
		}
	}
	return "", false
}

func isVideoID(id []byte) bool {
	for _, b := range id {
		switch {
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '_' || b == '-':
		default:
			return false
		}
	}
	return true
}
