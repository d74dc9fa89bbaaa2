package filter

import (
	"regexp"
	"strconv"
	"time"
)

var (
	sinceRe = regexp.MustCompile(`since:(\d{4}-\d{2}-\d{2})`)
	untilRe = regexp.MustCompile(`until:(\d{4}-\d{2}-\d{2})`)
	pastRe  = regexp.MustCompile(`past:(\d+)([hdmy])`)
)

// DateFilter holds the parsed clauses of a date filter string. Since and
// Until are calendar dates at 00:00 UTC; PastStart is the lower bound of
// a relative window anchored at parse time.
type DateFilter struct {
	Since     *time.Time
	Until     *time.Time
	PastStart *time.Time
}

// ParseDateFilter parses clauses like `since:2024-01-01 until:2024-02-01`
// or `past:3h` out of a free-text string. Months and years use 30-day and
// 365-day approximations. Unrecognized text is ignored.
func ParseDateFilter(s string, now time.Time) DateFilter {
	var f DateFilter

	if m := sinceRe.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			f.Since = &t
		}
	}
	if m := untilRe.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			f.Until = &t
		}
	}
	if m := pastRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		var d time.Duration
		switch m[2] {
		case "h":
			d = time.Duration(n) * time.Hour
		case "d":
			d = time.Duration(n) * 24 * time.Hour
		case "m":
			d = time.Duration(n) * 30 * 24 * time.Hour
		case "y":
			d = time.Duration(n) * 365 * 24 * time.Hour
		}
		t := now.Add(-d)
		f.PastStart = &t
	}

	return f
}

// Empty reports whether no clause is configured.
func (f DateFilter) Empty() bool {
	return f.Since == nil && f.Until == nil && f.PastStart == nil
}

// MatchAll evaluates the filter with all-clauses-must-pass semantics,
// used for the news feed. A configured past window short-circuits and
// the since/until bounds are ignored. With no clauses set every
// timestamp passes.
func (f DateFilter) MatchAll(ts time.Time) bool {
	if f.PastStart != nil {
		return !ts.Before(*f.PastStart)
	}
	if f.Since != nil && ts.Before(*f.Since) {
		return false
	}
	if f.Until != nil && ts.After(*f.Until) {
		return false
	}
	return true
}

// MatchAny evaluates the filter with any-clause-can-admit semantics,
// used for the video feed. With no clauses set every timestamp is
// rejected, the opposite default of MatchAll.
func (f DateFilter) MatchAny(ts time.Time) bool {
	if f.PastStart != nil && !ts.Before(*f.PastStart) {
		return true
	}
	if f.Since != nil && !ts.Before(*f.Since) {
		return true
	}
	if f.Until != nil && !ts.After(*f.Until) {
		return true
	}
	return false
}
