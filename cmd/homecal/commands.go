package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"homecal/internal/amqp"
	"homecal/internal/core"
	"homecal/internal/services"
)

var errUsage = errors.New("invalid arguments")

type app struct {
	cal      *services.HomeCalendar
	out      io.Writer
	notifier *amqp.Client
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "items":
		return a.items(ctx, args)
	case "categories":
		return a.categories(ctx, args)
	case "add-category":
		return a.addCategory(ctx, args)
	case "update-category":
		return a.updateCategory(ctx, args)
	case "delete-category":
		return a.deleteCategory(ctx, args)
	case "add-event":
		return a.addEvent(ctx, args)
	case "update-event":
		return a.updateEvent(ctx, args)
	case "delete-event":
		return a.deleteEvent(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "watch":
		return a.watch(ctx, args)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// filterFlags are the range and category flags shared by item queries.
type filterFlags struct {
	from     string
	to       string
	category int64
}

func (ff *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&ff.from, "from", "", "Start date, inclusive (2006-01-02 or 2006/01/02)")
	fs.StringVar(&ff.to, "to", "", "End date, inclusive")
	fs.Int64Var(&ff.category, "category", 0, "Only items of this category id")
}

// filter parses the flags. Reversed bounds are swapped; the engine itself
// would treat them literally and match nothing.
func (ff *filterFlags) filter() (core.ItemFilter, error) {
	var start, end *time.Time
	if ff.from != "" {
		t, err := core.ParseDate(ff.from)
		if err != nil {
			return core.ItemFilter{}, err
		}
		start = &t
	}
	if ff.to != "" {
		t, err := core.ParseDate(ff.to)
		if err != nil {
			return core.ItemFilter{}, err
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		start, end = end, start
	}
	return core.NewItemFilter(start, end, ff.category != 0, ff.category), nil
}

func (a *app) items(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	var ff filterFlags
	ff.register(fs)
	by := fs.String("by", "none", "Grouping: none, month, category or both")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := ff.filter()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch *by {
	case "none":
		items, err := a.cal.CalendarItems(ctx, f)
		if err != nil {
			return err
		}
		writeItems(tw, items)
	case "month":
		months, err := a.cal.CalendarItemsByMonth(ctx, f)
		if err != nil {
			return err
		}
		for _, m := range months {
			fmt.Fprintf(tw, "%s\t\t\t\ttotal %s\n", m.Month, core.FormatMinutes(m.TotalBusyTime))
			writeItems(tw, m.Items)
		}
	case "category":
		groups, err := a.cal.CalendarItemsByCategory(ctx, f)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Fprintf(tw, "%s\t\t\t\ttotal %s\n", g.Category, core.FormatMinutes(g.TotalBusyTime))
			writeItems(tw, g.Items)
		}
	case "both":
		report, err := a.cal.CalendarByCategoryAndMonth(ctx, f)
		if err != nil {
			return err
		}
		for _, m := range report.Months {
			fmt.Fprintf(tw, "%s\t\t\t\ttotal %s\n", m.Month, core.FormatMinutes(m.TotalBusyTime))
			for _, c := range m.Categories {
				fmt.Fprintf(tw, "  %s\t\t\t\tsubtotal %s\n", c.Category, core.FormatMinutes(c.Subtotal))
			}
		}
		if len(report.Totals.Totals) > 0 {
			fmt.Fprintln(tw, "TOTALS\t\t\t\t")
			for _, ct := range report.Totals.Totals {
				fmt.Fprintf(tw, "  %s\t\t\t\t%s\n", ct.Category, core.FormatMinutes(ct.Total))
			}
		}
	default:
		return fmt.Errorf("%w: -by must be none, month, category or both", errUsage)
	}
	return nil
}

func writeItems(w io.Writer, items []core.CalendarItem) {
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.EventID,
			core.FormatTimestamp(it.StartDateTime),
			it.Category,
			it.ShortDescription,
			core.FormatMinutes(it.DurationInMinutes),
			core.FormatMinutes(it.BusyTime))
	}
}

func (a *app) categories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cats, err := a.cal.ListCategories(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Type, c.Description)
	}
	return nil
}

func (a *app) addCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-category", flag.ContinueOnError)
	desc := fs.String("desc", "", "Description (required)")
	typ := fs.String("type", "Event", "Event, AllDayEvent, Holiday or Availability")
	allowDup := fs.Bool("allow-duplicate", false, "Add even if a category with the same name exists")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *desc == "" {
		return fmt.Errorf("%w: -desc is required", errUsage)
	}
	t, err := core.ParseCategoryType(*typ)
	if err != nil {
		return err
	}

	add := a.cal.AddCategoryUnique
	if *allowDup {
		add = a.cal.AddCategory
	}
	id, err := add(ctx, *desc, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "category %d added\n", id)
	return nil
}

func (a *app) updateCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-category", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Category id (required)")
	desc := fs.String("desc", "", "New description")
	typ := fs.String("type", "", "New type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.cal.Category(ctx, *id)
	if err != nil {
		return err
	}
	if *desc != "" {
		c.Description = *desc
	}
	if *typ != "" {
		if c.Type, err = core.ParseCategoryType(*typ); err != nil {
			return err
		}
	}
	if err := a.cal.UpdateCategory(ctx, c.ID, c.Description, c.Type); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "category %d updated\n", c.ID)
	return nil
}

func (a *app) deleteCategory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-category", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Category id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.cal.DeleteCategory(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "category %d deleted with its events\n", *id)
	return nil
}

func (a *app) addEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-event", flag.ContinueOnError)
	start := fs.String("start", "", "Start, e.g. \"2018-01-10 10:00\" (required)")
	category := fs.Int64("category", 0, "Category id (required)")
	duration := fs.String("duration", "0", "Duration in minutes, decimals allowed")
	details := fs.String("details", "", "Short description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *start == "" || *category == 0 {
		return fmt.Errorf("%w: -start and -category are required", errUsage)
	}
	ts, err := core.ParseDate(*start)
	if err != nil {
		return err
	}
	mins, err := core.ParseMinutes(*duration)
	if err != nil {
		return err
	}
	id, err := a.cal.AddEvent(ctx, ts, *category, mins, *details)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "event %d added\n", id)
	return nil
}

func (a *app) updateEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-event", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Event id (required)")
	start := fs.String("start", "", "New start")
	category := fs.Int64("category", 0, "New category id")
	duration := fs.String("duration", "", "New duration in minutes")
	details := fs.String("details", "", "New short description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := a.cal.Event(ctx, *id)
	if err != nil {
		return err
	}
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		if parseErr != nil {
			return
		}
		switch f.Name {
		case "start":
			e.StartDateTime, parseErr = core.ParseDate(*start)
		case "category":
			e.CategoryID = *category
		case "duration":
			e.DurationInMinutes, parseErr = core.ParseMinutes(*duration)
		case "details":
			e.Details = *details
		}
	})
	if parseErr != nil {
		return parseErr
	}

	if err := a.cal.UpdateEvent(ctx, e.ID, e.StartDateTime, e.DurationInMinutes, e.Details, e.CategoryID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "event %d updated\n", e.ID)
	return nil
}

func (a *app) deleteEvent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-event", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Event id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.cal.DeleteEvent(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "event %d deleted\n", *id)
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var ff filterFlags
	ff.register(fs)
	out := fs.String("out", "-", "Output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := ff.filter()
	if err != nil {
		return err
	}

	w := a.out
	if *out != "-" {
		file, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	n, err := a.cal.ExportICS(ctx, w, f)
	if err != nil {
		return err
	}
	if *out != "-" {
		fmt.Fprintf(a.out, "%d events written to %s\n", n, *out)
	}
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.notifier == nil {
		return fmt.Errorf("%w: watch needs AMQP_URL to be set", errUsage)
	}

	err := a.notifier.ConsumeChanges(ctx, func(m *amqp.ChangeMessage) error {
		_, err := fmt.Fprintf(a.out, "%s\t%s %s %s\n",
			m.Timestamp.Local().Format(core.TimestampLayout), m.Entity, strconv.FormatInt(m.ID, 10), m.Operation)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
