package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	TypeEvent CategoryType = iota + 1
	TypeAllDayEvent
	TypeHoliday
	TypeAvailability
)

type (
	// CategoryType classifies a category. Values match the categoryTypes table ids.
	CategoryType int

	Category struct {
		ID          int64
		Description string
		Type        CategoryType
	}

	Event struct {
		ID                int64
		StartDateTime     time.Time
		DurationInMinutes float64
		Details           string
		CategoryID        int64
	}

	// CalendarItem is one event joined to its category. BusyTime is a running
	// total whose scope depends on the query that produced the item.
	CalendarItem struct {
		CategoryID        int64
		EventID           int64
		StartDateTime     time.Time
		Category          string
		ShortDescription  string
		DurationInMinutes float64
		BusyTime          float64
	}

	// ItemFilter restricts a calendar query. Nil bounds fall back to
	// DefaultStart and DefaultEnd; a nil CategoryID disables the category filter.
	ItemFilter struct {
		Start      *time.Time
		End        *time.Time
		CategoryID *int64
	}

	ChangeEntity    string
	ChangeOperation string

	// Change describes a committed write, used for outbound notifications.
	Change struct {
		Entity    ChangeEntity
		Operation ChangeOperation
		ID        int64
	}
)

const (
	EntityCategory ChangeEntity = "category"
	EntityEvent    ChangeEntity = "event"

	OpCreated ChangeOperation = "created"
	OpUpdated ChangeOperation = "updated"
	OpDeleted ChangeOperation = "deleted"
)

var (
	DefaultStart = time.Date(1900, 1, 1, 0, 0, 0, 0, time.Local)
	DefaultEnd   = time.Date(2500, 1, 1, 0, 0, 0, 0, time.Local)
)

var categoryTypeNames = map[CategoryType]string{
	TypeEvent:        "Event",
	TypeAllDayEvent:  "AllDayEvent",
	TypeHoliday:      "Holiday",
	TypeAvailability: "Availability",
}

// CategoryTypes returns every valid category type in id order.
func CategoryTypes() []CategoryType {
	return []CategoryType{TypeEvent, TypeAllDayEvent, TypeHoliday, TypeAvailability}
}

func (t CategoryType) String() string {
	if name, ok := categoryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CategoryType(%d)", int(t))
}

func (t CategoryType) Validate() error {
	if _, ok := categoryTypeNames[t]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidCategoryType, int(t))
	}
	return nil
}

// IsAllDay reports whether events of this type span whole days.
func (t CategoryType) IsAllDay() bool {
	return t == TypeAllDayEvent || t == TypeHoliday
}

// ParseCategoryType matches a type name case-insensitively.
func ParseCategoryType(s string) (CategoryType, error) {
	s = strings.TrimSpace(s)
	for _, t := range CategoryTypes() {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategoryType, s)
}

func (c Category) String() string {
	return c.Description
}

func (c Category) Validate() error {
	return c.Type.Validate()
}

// Validate rejects durations that cannot round-trip through the store.
func (e Event) Validate() error {
	d := e.DurationInMinutes
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	if d < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// NewItemFilter builds a filter from the presenter call shape: the category
// id only applies when filterFlag is set.
func NewItemFilter(start, end *time.Time, filterFlag bool, categoryID int64) ItemFilter {
	f := ItemFilter{Start: start, End: end}
	if filterFlag {
		id := categoryID
		f.CategoryID = &id
	}
	return f
}

// Bounds returns the inclusive range the filter covers.
func (f ItemFilter) Bounds() (time.Time, time.Time) {
	start, end := DefaultStart, DefaultEnd
	if f.Start != nil {
		start = *f.Start
	}
	if f.End != nil {
		end = *f.End
	}
	return start, end
}
