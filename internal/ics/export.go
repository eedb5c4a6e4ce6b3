// Package ics renders calendar items as an iCalendar document.
package ics

import (
	"fmt"
	"io"
	"math"
	"time"

	ical "github.com/arran4/golang-ical"

	"homecal/internal/core"
)

const productID = "-//homecal//calendar export//EN"

const minutesPerDay = 24 * 60

// UID returns the stable VEVENT UID of an event id.
func UID(eventID int64) string {
	return fmt.Sprintf("event-%d@homecal", eventID)
}

// Build converts items into a calendar. Items whose category is an all-day
// or holiday type become date-only events covering at least one day; the rest
// end start+duration later. Unknown category ids are treated as timed.
func Build(items []core.CalendarItem, categories []core.Category) *ical.Calendar {
	types := make(map[int64]core.CategoryType, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}

	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	stamp := time.Now()
	for _, it := range items {
		ev := cal.AddEvent(UID(it.EventID))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(summary(it))
		if it.ShortDescription != "" {
			ev.SetDescription(it.ShortDescription)
		}
		if it.Category != "" {
			ev.AddProperty(ical.ComponentPropertyCategories, it.Category)
		}

		if types[it.CategoryID].IsAllDay() {
			day := time.Date(it.StartDateTime.Year(), it.StartDateTime.Month(), it.StartDateTime.Day(), 0, 0, 0, 0, it.StartDateTime.Location())
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, allDaySpan(it.DurationInMinutes)))
			continue
		}

		ev.SetStartAt(it.StartDateTime)
		ev.SetEndAt(it.StartDateTime.Add(time.Duration(it.DurationInMinutes * float64(time.Minute))))
	}
	return cal
}

// Export writes the calendar built from items to w.
func Export(w io.Writer, items []core.CalendarItem, categories []core.Category) error {
	if _, err := io.WriteString(w, Build(items, categories).Serialize()); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

func summary(it core.CalendarItem) string {
	if it.ShortDescription != "" {
		return it.ShortDescription
	}
	return it.Category
}

// allDaySpan returns the number of whole days a duration covers, never less than one.
func allDaySpan(durationInMinutes float64) int {
	days := int(math.Ceil(durationInMinutes / minutesPerDay))
	if days < 1 {
		return 1
	}
	return days
}
