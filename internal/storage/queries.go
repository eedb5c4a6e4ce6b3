package storage

import (
	"context"
	"database/sql"
)

const createCategory = `
INSERT INTO categories (Description, TypeId) VALUES (?, ?)
RETURNING Id
`

type CreateCategoryParams struct {
	Description string
	TypeID      int64
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createCategory, arg.Description, arg.TypeID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getCategory = `
SELECT Id, COALESCE(Description, ''), TypeId FROM categories WHERE Id = ?
`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategory, id)
	var i Category
	err := row.Scan(&i.ID, &i.Description, &i.TypeID)
	return i, err
}

const listCategories = `
SELECT Id, COALESCE(Description, ''), TypeId FROM categories ORDER BY Id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Description, &i.TypeID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateCategory = `
UPDATE categories SET Description = ?, TypeId = ? WHERE Id = ?
`

type UpdateCategoryParams struct {
	Description string
	TypeID      int64
	ID          int64
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateCategory, arg.Description, arg.TypeID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteEventsByCategory = `
DELETE FROM events WHERE CategoryId = ?
`

func (q *Queries) DeleteEventsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEventsByCategory, categoryID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteCategory = `
DELETE FROM categories WHERE Id = ?
`

func (q *Queries) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCategory, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAllCategories = `
DELETE FROM categories
`

func (q *Queries) DeleteAllCategories(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllCategories)
	return err
}

const listCategoryTypes = `
SELECT Id, COALESCE(Description, '') FROM categoryTypes ORDER BY Id
`

func (q *Queries) ListCategoryTypes(ctx context.Context) ([]CategoryType, error) {
	rows, err := q.db.QueryContext(ctx, listCategoryTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryType
	for rows.Next() {
		var i CategoryType
		if err := rows.Scan(&i.ID, &i.Description); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createEvent = `
INSERT INTO events (StartDateTime, CategoryId, DurationInMinutes, Details) VALUES (?, ?, ?, ?)
RETURNING Id
`

type CreateEventParams struct {
	StartDateTime     string
	CategoryID        int64
	DurationInMinutes float64
	Details           string
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.StartDateTime,
		arg.CategoryID,
		arg.DurationInMinutes,
		arg.Details,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getEvent = `
SELECT Id, COALESCE(StartDateTime, ''), COALESCE(Details, ''), COALESCE(DurationInMinutes, 0), CategoryId
FROM events WHERE Id = ?
`

func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	row := q.db.QueryRowContext(ctx, getEvent, id)
	var i Event
	err := row.Scan(
		&i.ID,
		&i.StartDateTime,
		&i.Details,
		&i.DurationInMinutes,
		&i.CategoryID,
	)
	return i, err
}

const listEvents = `
SELECT Id, COALESCE(StartDateTime, ''), COALESCE(Details, ''), COALESCE(DurationInMinutes, 0), CategoryId
FROM events ORDER BY Id
`

func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Event
	for rows.Next() {
		var i Event
		if err := rows.Scan(
			&i.ID,
			&i.StartDateTime,
			&i.Details,
			&i.DurationInMinutes,
			&i.CategoryID,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateEvent = `
UPDATE events SET StartDateTime = ?, CategoryId = ?, DurationInMinutes = ?, Details = ? WHERE Id = ?
`

type UpdateEventParams struct {
	StartDateTime     string
	CategoryID        int64
	DurationInMinutes float64
	Details           string
	ID                int64
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateEvent,
		arg.StartDateTime,
		arg.CategoryID,
		arg.DurationInMinutes,
		arg.Details,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteEvent = `
DELETE FROM events WHERE Id = ?
`

func (q *Queries) DeleteEvent(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEvent, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Ordered by start then event id so equal timestamps keep insertion order.
const listCalendarItems = `
SELECT C.Id, COALESCE(C.Description, ''), E.Id, COALESCE(E.StartDateTime, ''), COALESCE(E.DurationInMinutes, 0), COALESCE(E.Details, '')
FROM categories C
INNER JOIN events E ON C.Id = E.CategoryId
WHERE E.StartDateTime >= ?1 AND E.StartDateTime <= ?2
  AND (?3 IS NULL OR E.CategoryId = ?3)
ORDER BY E.StartDateTime, E.Id
`

type ListCalendarItemsParams struct {
	Start      string
	End        string
	CategoryID sql.NullInt64
}

func (q *Queries) ListCalendarItems(ctx context.Context, arg ListCalendarItemsParams) ([]CalendarItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listCalendarItems, arg.Start, arg.End, arg.CategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CalendarItemRow
	for rows.Next() {
		var i CalendarItemRow
		if err := rows.Scan(
			&i.CategoryID,
			&i.CategoryDescription,
			&i.EventID,
			&i.StartDateTime,
			&i.DurationInMinutes,
			&i.Details,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
