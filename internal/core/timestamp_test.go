package core

import (
	"errors"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2018, 1, 10, 10, 0, 59, 999_000_000, time.Local)

	s := FormatTimestamp(in)
	if s != "2018-01-10 10:00:59" {
		t.Fatalf("sub-second part must be truncated, got %q", s)
	}

	out, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if !out.Equal(in.Truncate(time.Second)) {
		t.Fatalf("round trip mismatch: %v != %v", out, in.Truncate(time.Second))
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2018-01-10", "10/01/2018 10:00:00", "2018-13-01 00:00:00"} {
		if _, err := ParseTimestamp(s); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseTimestamp(%q) expected ErrFormat, got %v", s, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(1999, 12, 31, 0, 0, 0, 0, time.Local)
	for _, s := range []string{"1999-12-31", "1999/12/31", " 1999/12/31 ", "1999-12-31 00:00:00"} {
		got, err := ParseDate(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseDate("31.12.1999"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestMonthKeys(t *testing.T) {
	ts := time.Date(2018, 3, 5, 8, 0, 0, 0, time.Local)
	if MonthKey(ts) != "2018-03" {
		t.Fatalf("unexpected key %q", MonthKey(ts))
	}
	if DisplayMonth("2018-03") != "2018/03" {
		t.Fatalf("unexpected display %q", DisplayMonth("2018-03"))
	}
}
