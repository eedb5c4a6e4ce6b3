package core

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the stored form of event start times.
const TimestampLayout = "2006-01-02 15:04:05"

const monthLayout = "2006-01"

var dateLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// FormatTimestamp renders t with second precision. Sub-second parts are dropped.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp decodes a stored start time as a naive local timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrFormat, s, err)
	}
	return t, nil
}

// ParseDate accepts user-entered dates with dash or slash separators and an
// optional time of day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrFormat, s)
}

// MonthKey returns the "yyyy-MM" grouping key of t.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// DisplayMonth turns a "yyyy-MM" key into "yyyy/MM".
func DisplayMonth(key string) string {
	return strings.Replace(key, "-", "/", 1)
}
