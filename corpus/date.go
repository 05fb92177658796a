package corpus

import "time"

// dateLayouts are tried in order when parsing a source date string.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
}

// Date is a post date parsed from source text. A string that does not parse
// is kept as an invalid sentinel instead of dropping the post. An invalid
// Date compares equal to every other Date, so under a stable sort a post
// with a broken date holds its original position rather than migrating to
// either end of the list.
type Date struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// ParseDate parses s against the accepted layouts. On failure the returned
// Date preserves s and is marked invalid.
func ParseDate(s string) Date {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Raw: s, Time: t, Valid: true}
		}
	}
	return Date{Raw: s}
}

// Compare orders d against other, returning -1, 0 or +1. Any comparison
// involving an invalid Date is 0.
func (d Date) Compare(other Date) int {
	if !d.Valid || !other.Valid {
		return 0
	}
	switch {
	case d.Time.Before(other.Time):
		return -1
	case d.Time.After(other.Time):
		return 1
	}
	return 0
}

func (d Date) String() string { return d.Raw }

// Format renders the date with layout, falling back to the raw source text
// when the date is invalid.
func (d Date) Format(layout string) string {
	if !d.Valid {
		return d.Raw
	}
	return d.Time.Format(layout)
}
