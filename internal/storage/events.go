package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homecal/internal/core"
)

// EventStore reads and writes event rows. It does not check category ids
// itself; the foreign key constraint rejects unknown ones.
type EventStore struct {
	queries *Queries
}

// Add inserts an event and returns its generated id.
func (s *EventStore) Add(ctx context.Context, start time.Time, categoryID int64, durationInMinutes float64, details string) (int64, error) {
	if err := (core.Event{DurationInMinutes: durationInMinutes}).Validate(); err != nil {
		return 0, err
	}

	id, err := s.queries.CreateEvent(ctx, CreateEventParams{
		StartDateTime:     core.FormatTimestamp(start),
		CategoryID:        categoryID,
		DurationInMinutes: durationInMinutes,
		Details:           details,
	})
	if err != nil {
		return 0, fmt.Errorf("create event: %w", translateError(err))
	}

	slog.InfoContext(ctx, "Event saved",
		"id", id,
		"start", core.FormatTimestamp(start),
		"category_id", categoryID,
		"duration_minutes", durationInMinutes)
	return id, nil
}

func (s *EventStore) GetByID(ctx context.Context, id int64) (core.Event, error) {
	row, err := s.queries.GetEvent(ctx, id)
	if err != nil {
		return core.Event{}, fmt.Errorf("get event %d: %w", id, translateError(err))
	}
	return toCoreEvent(row)
}

// List returns every event ordered by id. The slice is newly allocated.
func (s *EventStore) List(ctx context.Context) ([]core.Event, error) {
	rows, err := s.queries.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", translateError(err))
	}

	events := make([]core.Event, len(rows))
	for i, row := range rows {
		e, err := toCoreEvent(row)
		if err != nil {
			return nil, err
		}
		events[i] = e
	}
	return events, nil
}

// UpdateProperties replaces every field of an existing event except its id.
func (s *EventStore) UpdateProperties(ctx context.Context, id int64, start time.Time, durationInMinutes float64, details string, categoryID int64) error {
	if err := (core.Event{DurationInMinutes: durationInMinutes}).Validate(); err != nil {
		return err
	}

	n, err := s.queries.UpdateEvent(ctx, UpdateEventParams{
		StartDateTime:     core.FormatTimestamp(start),
		CategoryID:        categoryID,
		DurationInMinutes: durationInMinutes,
		Details:           details,
		ID:                id,
	})
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, translateError(err))
	}
	if n < 1 {
		return notFound("event", id)
	}

	slog.InfoContext(ctx, "Event updated", "id", id, "category_id", categoryID)
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, translateError(err))
	}
	if n < 1 {
		return notFound("event", id)
	}

	slog.InfoContext(ctx, "Event deleted", "id", id)
	return nil
}

func toCoreEvent(row Event) (core.Event, error) {
	start, err := core.ParseTimestamp(row.StartDateTime)
	if err != nil {
		return core.Event{}, fmt.Errorf("event %d: %w", row.ID, err)
	}
	return core.Event{
		ID:                row.ID,
		StartDateTime:     start,
		DurationInMinutes: row.DurationInMinutes,
		Details:           row.Details,
		CategoryID:        row.CategoryID,
	}, nil
}
