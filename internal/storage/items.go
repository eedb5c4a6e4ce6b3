package storage

import (
	"context"
	"database/sql"
	"fmt"

	"homecal/internal/core"
)

// CalendarItems runs the filtered join of events to categories. Rows come
// back in start order with BusyTime left at zero; folding is the caller's job.
func (s *Session) CalendarItems(ctx context.Context, f core.ItemFilter) ([]core.CalendarItem, error) {
	start, end := f.Bounds()
	params := ListCalendarItemsParams{
		Start: core.FormatTimestamp(start),
		End:   core.FormatTimestamp(end),
	}
	if f.CategoryID != nil {
		params.CategoryID = sql.NullInt64{Int64: *f.CategoryID, Valid: true}
	}

	rows, err := s.queries.ListCalendarItems(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list calendar items: %w", translateError(err))
	}

	items := make([]core.CalendarItem, 0, len(rows))
	for _, row := range rows {
		ts, err := core.ParseTimestamp(row.StartDateTime)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", row.EventID, err)
		}
		items = append(items, core.CalendarItem{
			CategoryID:        row.CategoryID,
			EventID:           row.EventID,
			StartDateTime:     ts,
			Category:          row.CategoryDescription,
			ShortDescription:  row.Details,
			DurationInMinutes: row.DurationInMinutes,
		})
	}
	return items, nil
}
