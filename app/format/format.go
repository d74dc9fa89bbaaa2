// Package format holds text helpers shared by the message formatters.
package format

import "strings"

// bracket substitutions keep Discord from reading titles as markup.
var bracketSub = map[rune]rune{
	'[': '［',
	']': '］',
	'<': '〈',
	'>': '〉',
}

func isOpening(r rune) bool { return r == '［' || r == '〈' }
func isClosing(r rune) bool { return r == '］' || r == '〉' }

// EscapeBrackets substitutes square and angle brackets with their
// full-width counterparts and pads each substituted bracket with a
// single space, unless it sits at a string boundary or is already
// space-adjacent.
func EscapeBrackets(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if sub, ok := bracketSub[r]; ok {
			runes[i] = sub
		}
	}

	var b strings.Builder
	for i, r := range runes {
		if isOpening(r) && i > 0 && !isSpace(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		if isClosing(r) && i < len(runes)-1 && !isSpace(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Truncate limits s to max runes. Discord rejects embed descriptions
// over 4096 characters, so long fields are cut before delivery.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
