package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCategoryTypeValidate(t *testing.T) {
	cases := []struct {
		t  CategoryType
		ok bool
	}{
		{TypeEvent, true},
		{TypeAllDayEvent, true},
		{TypeHoliday, true},
		{TypeAvailability, true},
		{0, false},
		{5, false},
	}
	for i, tc := range cases {
		err := tc.t.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidCategoryType) {
			t.Fatalf("case %d expected ErrInvalidCategoryType, got %v", i, err)
		}
	}
}

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		in   string
		want CategoryType
		ok   bool
	}{
		{"Event", TypeEvent, true},
		{"alldayevent", TypeAllDayEvent, true},
		{" HOLIDAY ", TypeHoliday, true},
		{"Availability", TypeAvailability, true},
		{"meeting", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategoryType(tt.in)
			if tt.ok {
				if err != nil || got != tt.want {
					t.Fatalf("ParseCategoryType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParseCategoryType(%q) expected error", tt.in)
			}
		})
	}
}

func TestCategoryTypeString(t *testing.T) {
	if TypeAllDayEvent.String() != "AllDayEvent" {
		t.Fatalf("unexpected name %q", TypeAllDayEvent.String())
	}
	if CategoryType(9).String() != "CategoryType(9)" {
		t.Fatalf("unexpected name for unknown type %q", CategoryType(9).String())
	}
	if !TypeHoliday.IsAllDay() || TypeEvent.IsAllDay() {
		t.Fatalf("unexpected all-day classification")
	}
}

func TestEventValidate(t *testing.T) {
	if err := (Event{DurationInMinutes: 0}).Validate(); err != nil {
		t.Fatalf("zero duration should be valid: %v", err)
	}
	if err := (Event{DurationInMinutes: -1}).Validate(); !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := (Event{DurationInMinutes: d}).Validate()
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("duration %v: expected ErrInvalidDuration, got %v", d, err)
		}
		if KindOf(err) != "constraint" {
			t.Fatalf("duration %v: expected constraint kind, got %q", d, KindOf(err))
		}
	}
}

func TestNewItemFilter(t *testing.T) {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.Local)

	f := NewItemFilter(&start, nil, false, 7)
	if f.CategoryID != nil {
		t.Fatalf("category filter should be off when flag is false")
	}
	from, to := f.Bounds()
	if !from.Equal(start) || !to.Equal(DefaultEnd) {
		t.Fatalf("unexpected bounds %v %v", from, to)
	}

	f = NewItemFilter(nil, nil, true, 7)
	if f.CategoryID == nil || *f.CategoryID != 7 {
		t.Fatalf("expected category filter 7, got %v", f.CategoryID)
	}
	from, to = f.Bounds()
	if !from.Equal(DefaultStart) || !to.Equal(DefaultEnd) {
		t.Fatalf("unexpected default bounds %v %v", from, to)
	}
}

func TestCategoryTotalsLookup(t *testing.T) {
	totals := CategoryTotals{Totals: []CategoryTotal{{Category: "Work", Total: 75}}}
	if v, ok := totals.Total("Work"); !ok || v != 75 {
		t.Fatalf("expected 75, got %v %v", v, ok)
	}
	if _, ok := totals.Total("Fun"); ok {
		t.Fatalf("unexpected total for Fun")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, "not_found"},
		{errors.Join(errors.New("ctx"), ErrConstraint), "constraint"},
		{ErrNegativeDuration, "constraint"},
		{ErrInvalidDuration, "constraint"},
		{ErrIO, "io"},
		{ErrClosed, "io"},
		{ErrFormat, "format"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
