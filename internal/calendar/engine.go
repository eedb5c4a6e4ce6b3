// Package calendar folds the filtered event/category join into the four
// calendar views: a flat list, by month, by category, and by category within
// month.
package calendar

import (
	"cmp"
	"context"
	"slices"

	"homecal/internal/core"
	"homecal/internal/log"
)

// ItemSource runs the filtered join. Rows must come back ordered by start
// time with ties in insertion order.
type ItemSource interface {
	CalendarItems(ctx context.Context, f core.ItemFilter) ([]core.CalendarItem, error)
}

// CategoryLister provides the natural category order used for report totals.
type CategoryLister interface {
	List(ctx context.Context) ([]core.Category, error)
}

// Engine answers calendar queries. Every query issues exactly one join and
// folds the rows in memory.
type Engine struct {
	items      ItemSource
	categories CategoryLister
	logger     *log.Logger
}

func NewEngine(items ItemSource, categories CategoryLister) *Engine {
	return &Engine{
		items:      items,
		categories: categories,
		logger:     log.Discard(),
	}
}

// WithLogger sets the logger used for query diagnostics.
func (e *Engine) WithLogger(l *log.Logger) *Engine {
	if l != nil {
		e.logger = l.WithComponent(log.ComponentCalendar)
	}
	return e
}

// Items returns the filtered rows with BusyTime as a running total over the
// whole result.
func (e *Engine) Items(ctx context.Context, f core.ItemFilter) ([]core.CalendarItem, error) {
	items, err := e.items.CalendarItems(ctx, f)
	if err != nil {
		return nil, err
	}

	var busy float64
	for i := range items {
		busy += items[i].DurationInMinutes
		items[i].BusyTime = busy
	}

	e.logQuery(ctx, "items", len(items), len(items))
	return items, nil
}

// ItemsByMonth groups rows by start month in chronological order. BusyTime
// restarts at zero in every month.
func (e *Engine) ItemsByMonth(ctx context.Context, f core.ItemFilter) ([]core.CalendarItemsByMonth, error) {
	items, err := e.items.CalendarItems(ctx, f)
	if err != nil {
		return nil, err
	}

	groups := groupByMonth(items)
	e.logQuery(ctx, "by_month", len(items), len(groups))
	return groups, nil
}

// ItemsByCategory groups rows by category, ordered by description. BusyTime
// keeps accumulating from one group into the next while TotalBusyTime covers
// only the group's own items.
func (e *Engine) ItemsByCategory(ctx context.Context, f core.ItemFilter) ([]core.CalendarItemsByCategory, error) {
	items, err := e.items.CalendarItems(ctx, f)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		id    int64
		group core.CalendarItemsByCategory
	}
	var buckets []*bucket
	index := make(map[int64]*bucket)
	for _, it := range items {
		b, ok := index[it.CategoryID]
		if !ok {
			b = &bucket{id: it.CategoryID, group: core.CalendarItemsByCategory{Category: it.Category}}
			index[it.CategoryID] = b
			buckets = append(buckets, b)
		}
		b.group.Items = append(b.group.Items, it)
		b.group.TotalBusyTime += it.DurationInMinutes
	}

	slices.SortStableFunc(buckets, func(a, b *bucket) int {
		if c := cmp.Compare(a.group.Category, b.group.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	groups := make([]core.CalendarItemsByCategory, 0, len(buckets))
	var busy float64
	for _, b := range buckets {
		for i := range b.group.Items {
			busy += b.group.Items[i].DurationInMinutes
			b.group.Items[i].BusyTime = busy
		}
		groups = append(groups, b.group)
	}

	e.logQuery(ctx, "by_category", len(items), len(groups))
	return groups, nil
}

// ByCategoryAndMonth partitions every month by category description. Items
// carry the per-month BusyTime of ItemsByMonth. Totals list each category
// that matched at least once, in the category store's order.
func (e *Engine) ByCategoryAndMonth(ctx context.Context, f core.ItemFilter) (core.CategoryMonthReport, error) {
	items, err := e.items.CalendarItems(ctx, f)
	if err != nil {
		return core.CategoryMonthReport{}, err
	}

	months := groupByMonth(items)
	report := core.CategoryMonthReport{Months: make([]core.MonthSummary, 0, len(months))}
	grand := make(map[string]float64)

	for _, m := range months {
		summary := core.MonthSummary{Month: m.Month, TotalBusyTime: m.TotalBusyTime}
		index := make(map[string]int)
		for _, it := range m.Items {
			i, ok := index[it.Category]
			if !ok {
				i = len(summary.Categories)
				index[it.Category] = i
				summary.Categories = append(summary.Categories, core.CategorySubtotal{Category: it.Category})
			}
			summary.Categories[i].Items = append(summary.Categories[i].Items, it)
			summary.Categories[i].Subtotal += it.DurationInMinutes
			grand[it.Category] += it.DurationInMinutes
		}
		slices.SortStableFunc(summary.Categories, func(a, b core.CategorySubtotal) int {
			return cmp.Compare(a.Category, b.Category)
		})
		report.Months = append(report.Months, summary)
	}

	if len(grand) > 0 {
		cats, err := e.categories.List(ctx)
		if err != nil {
			return core.CategoryMonthReport{}, err
		}
		seen := make(map[string]bool, len(cats))
		for _, c := range cats {
			total, ok := grand[c.Description]
			if !ok || seen[c.Description] {
				continue
			}
			seen[c.Description] = true
			report.Totals.Totals = append(report.Totals.Totals, core.CategoryTotal{Category: c.Description, Total: total})
		}
	}

	e.logQuery(ctx, "by_category_and_month", len(items), len(report.Months))
	return report, nil
}

// groupByMonth buckets items by start month. Months are returned in
// chronological order; items keep their source order within a month.
func groupByMonth(items []core.CalendarItem) []core.CalendarItemsByMonth {
	index := make(map[string]int)
	var groups []core.CalendarItemsByMonth
	for _, it := range items {
		k := core.MonthKey(it.StartDateTime)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, core.CalendarItemsByMonth{Month: core.DisplayMonth(k)})
		}
		g := &groups[i]
		g.TotalBusyTime += it.DurationInMinutes
		it.BusyTime = g.TotalBusyTime
		g.Items = append(g.Items, it)
	}

	// "yyyy/MM" sorts chronologically as a string
	slices.SortStableFunc(groups, func(a, b core.CalendarItemsByMonth) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return groups
}

func (e *Engine) logQuery(ctx context.Context, shape string, rows, groups int) {
	e.logger.DebugContext(ctx, "Calendar query folded", log.NewFields().WithQuery(shape, rows, groups).ToSlice()...)
}
