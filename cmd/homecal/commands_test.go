package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"homecal/internal/core"
	"homecal/internal/services"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cal, err := services.Open(context.Background(), filepath.Join(t.TempDir(), "cal.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { cal.Close() })
	var out bytes.Buffer
	return &app{cal: cal, out: &out}, &out
}

func TestFilterFlagsSwapsReversedRange(t *testing.T) {
	ff := filterFlags{from: "2020-02-01", to: "2020/01/01", category: 3}
	f, err := ff.filter()
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if f.Start == nil || f.End == nil || !f.Start.Before(*f.End) {
		t.Fatalf("expected swapped bounds, got %v .. %v", f.Start, f.End)
	}
	if f.Start.Month() != time.January || f.CategoryID == nil || *f.CategoryID != 3 {
		t.Errorf("unexpected filter: start=%v category=%v", f.Start, f.CategoryID)
	}

	if f, _ := (&filterFlags{}).filter(); f.Start != nil || f.End != nil || f.CategoryID != nil {
		t.Errorf("empty flags should leave the filter open: %+v", f)
	}
	if _, err := (&filterFlags{from: "yesterday"}).filter(); !errors.Is(err, core.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestCommandsEndToEnd(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	steps := [][]string{
		{"add-category", "-desc", "Work"},
		{"add-event", "-start", "2018-01-11 10:15", "-category", "10", "-duration", "60", "-details", "Retro"},
		{"add-event", "-start", "2018-01-11 19:30", "-category", "10", "-duration", "15", "-details", "Meeting"},
		{"update-event", "-id", "2", "-duration", "20"},
	}
	for _, s := range steps {
		if err := a.dispatch(ctx, s[0], s[1:]); err != nil {
			t.Fatalf("%v: %v", s, err)
		}
	}

	out.Reset()
	if err := a.dispatch(ctx, "items", []string{"-by", "category", "-category", "10"}); err != nil {
		t.Fatalf("items: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Work", "total 1h 20m", "Retro", "Meeting"} {
		if !strings.Contains(got, want) {
			t.Errorf("items output missing %q:\n%s", want, got)
		}
	}

	if err := a.dispatch(ctx, "add-category", []string{"-desc", "work"}); !errors.Is(err, core.ErrConstraint) {
		t.Errorf("duplicate category: expected ErrConstraint, got %v", err)
	}
	if err := a.dispatch(ctx, "items", []string{"-by", "week"}); !errors.Is(err, errUsage) {
		t.Errorf("bad grouping: expected errUsage, got %v", err)
	}
	if err := a.dispatch(ctx, "frobnicate", nil); !errors.Is(err, errUsage) {
		t.Errorf("unknown command: expected errUsage, got %v", err)
	}
	if err := a.dispatch(ctx, "watch", nil); !errors.Is(err, errUsage) {
		t.Errorf("watch without broker: expected errUsage, got %v", err)
	}

	if err := a.dispatch(ctx, "delete-category", []string{"-id", "10"}); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	out.Reset()
	if err := a.dispatch(ctx, "items", nil); err != nil {
		t.Fatalf("items: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no items after cascade delete, got:\n%s", out.String())
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	if err := a.dispatch(ctx, "add-event", []string{"-start", "2022-08-01", "-category", "6", "-duration", "1440", "-details", "Lake"}); err != nil {
		t.Fatalf("add-event: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cal.ics")
	if err := a.dispatch(ctx, "export", []string{"-out", path}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), "1 events written") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
