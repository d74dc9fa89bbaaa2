// Package urlx normalizes article links recovered from aggregator feeds.
// Links arrive with literal \uXXXX escapes, stray backslashes and mixed
// percent-encoding, and have to be rebuilt into a stable canonical form.
package urlx

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// safeChars are never percent-encoded when rebuilding path and query,
// so the structural characters of the URL survive canonicalization.
const safeChars = "/:@&=+$,?#"

var unicodeEscapeRe = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// msnQueryAllow is the set of query keys kept on msn.com links.
var msnQueryAllow = map[string]bool{
	"id":      true,
	"article": true,
}

// Canonicalize returns the canonical form of a raw URL. The result is
// stable: Canonicalize(Canonicalize(u)) == Canonicalize(u).
func Canonicalize(raw string) string {
	s := UnescapeUnicode(raw)
	s = strings.ReplaceAll(s, `\`, "")
	s = unescapePercent(s)

	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	rawQuery := u.RawQuery
	if strings.HasSuffix(u.Hostname(), "msn.com") {
		u.Scheme = "https"
		rawQuery = filterMSNQuery(rawQuery)
	}

	return rebuild(u, quote(rawPath(u), safeChars), quote(rawQuery, safeChars))
}

// UnescapeUnicode resolves literal \uXXXX escape sequences to characters.
func UnescapeUnicode(s string) string {
	return unicodeEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

// rawPath returns the path exactly as it appeared in the parsed URL.
func rawPath(u *url.URL) string {
	if u.RawPath != "" {
		return u.RawPath
	}
	return u.Path
}

// filterMSNQuery keeps only the allow-listed query keys, first value each,
// in their original order. Values stay raw; quoting happens afterwards.
func filterMSNQuery(query string) string {
	if query == "" {
		return ""
	}
	seen := map[string]bool{}
	var kept []string
	for _, pair := range strings.Split(query, "&") {
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if !msnQueryAllow[key] || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

// unescapePercent decodes valid %XX sequences once, leaving malformed
// escapes untouched instead of failing on them.
func unescapePercent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			v, _ := strconv.ParseUint(s[i+1:i+3], 16, 8)
			b.WriteByte(byte(v))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// quote percent-encodes every byte outside the unreserved set and the
// provided safe set, using uppercase hex digits.
func quote(s, safe string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '.' || c == '-' || c == '~'
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// rebuild reassembles the URL from its quoted components.
func rebuild(u *url.URL, path, query string) string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	b.WriteString(u.Host)
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}
