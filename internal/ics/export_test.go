package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"homecal/internal/core"
)

func TestAllDaySpan(t *testing.T) {
	tests := []struct {
		minutes float64
		want    int
	}{
		{0, 1},
		{30, 1},
		{1440, 1},
		{1441, 2},
		{2880, 2},
		{4000, 3},
	}
	for _, tt := range tests {
		if got := allDaySpan(tt.minutes); got != tt.want {
			t.Errorf("allDaySpan(%v) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	categories := []core.Category{
		{ID: 1, Description: "Work", Type: core.TypeEvent},
		{ID: 2, Description: "Vacation", Type: core.TypeAllDayEvent},
	}
	start := time.Date(2018, time.January, 10, 10, 0, 0, 0, time.UTC)
	items := []core.CalendarItem{
		{EventID: 7, CategoryID: 1, Category: "Work", ShortDescription: "Retro", StartDateTime: start, DurationInMinutes: 90},
		{EventID: 8, CategoryID: 2, Category: "Vacation", StartDateTime: start, DurationInMinutes: 2 * 1440},
	}

	var buf bytes.Buffer
	if err := Export(&buf, items, categories); err != nil {
		t.Fatalf("export: %v", err)
	}

	cal, err := ical.ParseCalendar(&buf)
	if err != nil {
		t.Fatalf("parse exported calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	timed := events[0]
	if timed.Id() != "event-7@homecal" {
		t.Errorf("uid = %q", timed.Id())
	}
	if p := timed.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "Retro" {
		t.Errorf("summary = %v", p)
	}
	if p := timed.GetProperty(ical.ComponentPropertyCategories); p == nil || p.Value != "Work" {
		t.Errorf("categories = %v", p)
	}
	gotStart, err := timed.GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Errorf("start = %v err=%v, want %v", gotStart, err, start)
	}
	gotEnd, err := timed.GetEndAt()
	if err != nil || !gotEnd.Equal(start.Add(90*time.Minute)) {
		t.Errorf("end = %v err=%v", gotEnd, err)
	}

	allDay := events[1]
	dtStart := allDay.GetProperty(ical.ComponentPropertyDtStart)
	dtEnd := allDay.GetProperty(ical.ComponentPropertyDtEnd)
	if dtStart == nil || dtStart.Value != "20180110" {
		t.Errorf("all-day start = %v", dtStart)
	}
	if dtEnd == nil || dtEnd.Value != "20180112" {
		t.Errorf("all-day end = %v", dtEnd)
	}
	// No details: summary falls back to the category
	if p := allDay.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "Vacation" {
		t.Errorf("summary = %v", p)
	}
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, nil); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, productID) {
		t.Errorf("product id missing: %q", out)
	}
}
