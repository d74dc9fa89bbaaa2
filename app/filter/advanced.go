// Package filter implements the keyword and date predicates applied to
// fetched items before delivery.
package filter

import (
	"regexp"
	"strings"
)

// termRe tokenizes a query into optional polarity prefix plus either a
// double-quoted phrase or a bare word.
var termRe = regexp.MustCompile(`([+-]?)(?:"([^"]*)"|([^\s"]+))`)

type queryTerm struct {
	exclude bool
	text    string
}

// Query is a parsed include/exclude keyword query. Unprefixed and
// '+'-prefixed terms are required substrings, '-'-prefixed terms are
// forbidden substrings.
type Query struct {
	terms []queryTerm
}

// ParseQuery parses a free-text query string such as `+breaking -"press release"`.
func ParseQuery(s string) Query {
	var q Query
	for _, m := range termRe.FindAllStringSubmatch(s, -1) {
		text := m[2]
		if text == "" {
			text = m[3]
		}
		if text == "" {
			continue
		}
		q.terms = append(q.terms, queryTerm{
			exclude: m[1] == "-",
			text:    strings.ToLower(text),
		})
	}
	return q
}

// Match reports whether the joined texts satisfy the query: every
// required term is a substring and no forbidden term is. An empty query
// always matches.
func (q Query) Match(texts ...string) bool {
	if len(q.terms) == 0 {
		return true
	}

	text := strings.ToLower(strings.Join(texts, " "))
	for _, t := range q.terms {
		if t.exclude {
			// Multi-word exclusions match as a whole phrase with
			// normalized spacing.
			phrase := strings.Join(strings.Fields(t.text), " ")
			if strings.Contains(text, phrase) {
				return false
			}
			continue
		}
		if !strings.Contains(text, t.text) {
			return false
		}
	}
	return true
}
