package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"homecal/internal/calendar"
	"homecal/internal/core"
	"homecal/internal/ics"
	"homecal/internal/log"
	"homecal/internal/storage"
)

// ChangeNotifier receives every committed write. amqp.Client satisfies it.
type ChangeNotifier interface {
	PublishChange(ctx context.Context, c core.Change) error
}

type options struct {
	fresh    bool
	logger   *log.Logger
	notifier ChangeNotifier
}

type Option func(*options)

// WithFreshDatabase discards any existing file and starts a new store.
func WithFreshDatabase() Option {
	return func(o *options) { o.fresh = true }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNotifier publishes a change message after each successful write.
func WithNotifier(n ChangeNotifier) Option {
	return func(o *options) { o.notifier = n }
}

// HomeCalendar owns one backing store session with its category and event
// stores and the aggregation engine over them. It is not safe for concurrent use.
type HomeCalendar struct {
	session    *storage.Session
	categories *storage.CategoryStore
	events     *storage.EventStore
	engine     *calendar.Engine

	logger   *log.Logger
	notifier ChangeNotifier
}

// Open opens the calendar stored at path. A store that did not exist yet is
// seeded with the default categories.
func Open(ctx context.Context, path string, opts ...Option) (*HomeCalendar, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}

	h := &HomeCalendar{
		logger:   o.logger.WithComponent(log.ComponentFacade),
		notifier: o.notifier,
	}
	if err := h.open(ctx, path, o.fresh); err != nil {
		return nil, err
	}
	return h, nil
}

var seedDefaults = func(ctx context.Context, categories *storage.CategoryStore) error {
	return categories.SetToDefaults(ctx)
}

func (h *HomeCalendar) open(ctx context.Context, path string, fresh bool) error {
	session, err := storage.Open(ctx, path, storage.OpenOptions{Fresh: fresh})
	if err != nil {
		return fmt.Errorf("open calendar %s: %w", path, err)
	}

	categories := session.Categories()
	if session.Created() {
		if err := seedDefaults(ctx, categories); err != nil {
			// Remove the file so the next Open seeds it.
			if rmErr := session.Remove(); rmErr != nil {
				h.logger.WarnContext(ctx, "Failed to remove unseeded calendar", log.FieldPath, path, log.FieldError, rmErr)
			}
			return fmt.Errorf("seed default categories: %w", err)
		}
	}

	h.session = session
	h.categories = categories
	h.events = session.Events()
	h.engine = calendar.NewEngine(session, categories).WithLogger(h.logger)

	h.logger.InfoContext(ctx, "Calendar opened", log.FieldPath, path, log.FieldCreated, session.Created())
	return nil
}

// SwitchFile releases the current store and opens the one at path. When the
// new store cannot be opened the calendar stays closed.
func (h *HomeCalendar) SwitchFile(ctx context.Context, path string, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		h.logger = o.logger.WithComponent(log.ComponentFacade)
	}
	if o.notifier != nil {
		h.notifier = o.notifier
	}

	if err := h.Close(); err != nil {
		return fmt.Errorf("release current calendar: %w", err)
	}
	return h.open(ctx, path, o.fresh)
}

// Path returns the file backing the calendar, or "" once closed.
func (h *HomeCalendar) Path() string {
	if h.session == nil {
		return ""
	}
	return h.session.Path()
}

// Close releases the backing store. Safe to call more than once.
func (h *HomeCalendar) Close() error {
	if h.session == nil {
		return nil
	}
	path := h.session.Path()
	err := h.session.Close()
	h.session, h.categories, h.events, h.engine = nil, nil, nil, nil
	if err != nil {
		return err
	}
	h.logger.Info("Calendar closed", log.FieldPath, path)
	return nil
}

func (h *HomeCalendar) ready() error {
	if h.session == nil {
		return core.ErrClosed
	}
	return nil
}

// Categories

func (h *HomeCalendar) AddCategory(ctx context.Context, description string, t core.CategoryType) (int64, error) {
	if err := h.ready(); err != nil {
		return 0, err
	}
	id, err := h.categories.Add(ctx, description, t)
	if err != nil {
		return 0, err
	}
	h.notify(ctx, core.EntityCategory, core.OpCreated, id)
	return id, nil
}

// AddCategoryUnique adds a category unless one with the same description,
// compared case-insensitively, already exists.
func (h *HomeCalendar) AddCategoryUnique(ctx context.Context, description string, t core.CategoryType) (int64, error) {
	if err := h.ready(); err != nil {
		return 0, err
	}
	existing, err := h.categories.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range existing {
		if strings.EqualFold(strings.TrimSpace(c.Description), strings.TrimSpace(description)) {
			return 0, fmt.Errorf("%w: category %q already exists with id %d", core.ErrConstraint, c.Description, c.ID)
		}
	}
	return h.AddCategory(ctx, description, t)
}

func (h *HomeCalendar) Category(ctx context.Context, id int64) (core.Category, error) {
	if err := h.ready(); err != nil {
		return core.Category{}, err
	}
	return h.categories.GetByID(ctx, id)
}

func (h *HomeCalendar) ListCategories(ctx context.Context) ([]core.Category, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.categories.List(ctx)
}

func (h *HomeCalendar) UpdateCategory(ctx context.Context, id int64, description string, t core.CategoryType) error {
	if err := h.ready(); err != nil {
		return err
	}
	if err := h.categories.UpdateProperties(ctx, id, description, t); err != nil {
		return err
	}
	h.notify(ctx, core.EntityCategory, core.OpUpdated, id)
	return nil
}

// DeleteCategory removes the category and every event filed under it.
func (h *HomeCalendar) DeleteCategory(ctx context.Context, id int64) error {
	if err := h.ready(); err != nil {
		return err
	}
	if err := h.categories.Delete(ctx, id); err != nil {
		return err
	}
	h.notify(ctx, core.EntityCategory, core.OpDeleted, id)
	return nil
}

// Events

func (h *HomeCalendar) AddEvent(ctx context.Context, start time.Time, categoryID int64, durationInMinutes float64, details string) (int64, error) {
	if err := h.ready(); err != nil {
		return 0, err
	}
	id, err := h.events.Add(ctx, start, categoryID, durationInMinutes, details)
	if err != nil {
		return 0, err
	}
	h.notify(ctx, core.EntityEvent, core.OpCreated, id)
	return id, nil
}

func (h *HomeCalendar) Event(ctx context.Context, id int64) (core.Event, error) {
	if err := h.ready(); err != nil {
		return core.Event{}, err
	}
	return h.events.GetByID(ctx, id)
}

func (h *HomeCalendar) ListEvents(ctx context.Context) ([]core.Event, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.events.List(ctx)
}

func (h *HomeCalendar) UpdateEvent(ctx context.Context, id int64, start time.Time, durationInMinutes float64, details string, categoryID int64) error {
	if err := h.ready(); err != nil {
		return err
	}
	if err := h.events.UpdateProperties(ctx, id, start, durationInMinutes, details, categoryID); err != nil {
		return err
	}
	h.notify(ctx, core.EntityEvent, core.OpUpdated, id)
	return nil
}

func (h *HomeCalendar) DeleteEvent(ctx context.Context, id int64) error {
	if err := h.ready(); err != nil {
		return err
	}
	if err := h.events.Delete(ctx, id); err != nil {
		return err
	}
	h.notify(ctx, core.EntityEvent, core.OpDeleted, id)
	return nil
}

// Queries

func (h *HomeCalendar) CalendarItems(ctx context.Context, f core.ItemFilter) ([]core.CalendarItem, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.engine.Items(ctx, f)
}

func (h *HomeCalendar) CalendarItemsByMonth(ctx context.Context, f core.ItemFilter) ([]core.CalendarItemsByMonth, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.engine.ItemsByMonth(ctx, f)
}

func (h *HomeCalendar) CalendarItemsByCategory(ctx context.Context, f core.ItemFilter) ([]core.CalendarItemsByCategory, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	return h.engine.ItemsByCategory(ctx, f)
}

func (h *HomeCalendar) CalendarByCategoryAndMonth(ctx context.Context, f core.ItemFilter) (core.CategoryMonthReport, error) {
	if err := h.ready(); err != nil {
		return core.CategoryMonthReport{}, err
	}
	return h.engine.ByCategoryAndMonth(ctx, f)
}

// ExportICS writes the filtered items as an iCalendar document and returns
// how many events it contains.
func (h *HomeCalendar) ExportICS(ctx context.Context, w io.Writer, f core.ItemFilter) (int, error) {
	if err := h.ready(); err != nil {
		return 0, err
	}
	items, err := h.engine.Items(ctx, f)
	if err != nil {
		return 0, err
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := ics.Export(w, items, categories); err != nil {
		return 0, fmt.Errorf("export calendar: %w", err)
	}
	h.logger.InfoContext(ctx, "Calendar exported", log.FieldOperation, log.OpExport, log.FieldRows, len(items))
	return len(items), nil
}

// notify never fails the write that triggered it: the change is already committed.
func (h *HomeCalendar) notify(ctx context.Context, entity core.ChangeEntity, op core.ChangeOperation, id int64) {
	if h.notifier == nil {
		return
	}
	err := h.notifier.PublishChange(ctx, core.Change{Entity: entity, Operation: op, ID: id})
	if err == nil {
		return
	}
	fields := log.NewFields().
		WithOperation(log.OpNotify).
		WithChange(string(entity), id).
		WithError(err, core.KindOf(err))
	if errors.Is(err, context.Canceled) {
		h.logger.DebugContext(ctx, "Change notification cancelled", fields.ToSlice()...)
		return
	}
	h.logger.ErrorContext(ctx, "Failed to publish change notification", fields.ToSlice()...)
}
