package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"homecal/internal/core"
)

// CategoryStore reads and writes category rows.
type CategoryStore struct {
	db      *sql.DB
	queries *Queries
}

// DefaultCategories is the seed list written to a new store.
func DefaultCategories() []core.Category {
	return []core.Category{
		{Description: "School", Type: core.TypeEvent},
		{Description: "Personal", Type: core.TypeEvent},
		{Description: "VideoGames", Type: core.TypeEvent},
		{Description: "Medical", Type: core.TypeEvent},
		{Description: "Sleep", Type: core.TypeEvent},
		{Description: "Vacation", Type: core.TypeAllDayEvent},
		{Description: "Travel days", Type: core.TypeAllDayEvent},
		{Description: "Canadian Holidays", Type: core.TypeHoliday},
		{Description: "US Holidays", Type: core.TypeHoliday},
	}
}

// Add inserts a category and returns its generated id. Duplicate
// descriptions are allowed.
func (s *CategoryStore) Add(ctx context.Context, description string, t core.CategoryType) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := s.queries.CreateCategory(ctx, CreateCategoryParams{
		Description: description,
		TypeID:      int64(t),
	})
	if err != nil {
		return 0, fmt.Errorf("create category: %w", translateError(err))
	}

	slog.InfoContext(ctx, "Category saved", "id", id, "description", description, "type", t.String())
	return id, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (core.Category, error) {
	row, err := s.queries.GetCategory(ctx, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, translateError(err))
	}
	return toCoreCategory(row), nil
}

// List returns every category ordered by id. The slice is newly allocated.
func (s *CategoryStore) List(ctx context.Context) ([]core.Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", translateError(err))
	}

	categories := make([]core.Category, len(rows))
	for i, row := range rows {
		categories[i] = toCoreCategory(row)
	}
	return categories, nil
}

// UpdateProperties replaces the description and type of an existing category.
func (s *CategoryStore) UpdateProperties(ctx context.Context, id int64, description string, t core.CategoryType) error {
	if err := t.Validate(); err != nil {
		return err
	}

	n, err := s.queries.UpdateCategory(ctx, UpdateCategoryParams{
		Description: description,
		TypeID:      int64(t),
		ID:          id,
	})
	if err != nil {
		return fmt.Errorf("update category %d: %w", id, translateError(err))
	}
	if n < 1 {
		return notFound("category", id)
	}

	slog.InfoContext(ctx, "Category updated", "id", id, "description", description, "type", t.String())
	return nil
}

// Delete removes the category's events and then the category itself, as two
// separate statements. Events are gone even when the category row was missing.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	removed, err := s.queries.DeleteEventsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete events of category %d: %w", id, translateError(err))
	}

	n, err := s.queries.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, translateError(err))
	}
	if n < 1 {
		return notFound("category", id)
	}

	slog.InfoContext(ctx, "Category deleted", "id", id, "events_removed", removed)
	return nil
}

// SetToDefaults replaces every category with DefaultCategories in one
// transaction. It fails with ErrConstraint while any event still exists.
func (s *CategoryStore) SetToDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", translateError(err))
	}
	defer tx.Rollback()

	q := s.queries.WithTx(tx)
	if err := q.DeleteAllCategories(ctx); err != nil {
		return fmt.Errorf("clear categories: %w", translateError(err))
	}

	defaults := DefaultCategories()
	for _, c := range defaults {
		if _, err := q.CreateCategory(ctx, CreateCategoryParams{Description: c.Description, TypeID: int64(c.Type)}); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Description, translateError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit default categories: %w", translateError(err))
	}

	slog.InfoContext(ctx, "Default categories seeded", "count", len(defaults))
	return nil
}

func toCoreCategory(row Category) core.Category {
	return core.Category{
		ID:          row.ID,
		Description: row.Description,
		Type:        core.CategoryType(row.TypeID),
	}
}
