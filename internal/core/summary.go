package core

// CalendarItemsByMonth groups items that start in the same month.
// Month is formatted "yyyy/MM".
type CalendarItemsByMonth struct {
	Month         string
	Items         []CalendarItem
	TotalBusyTime float64
}

// CalendarItemsByCategory groups items that share a category.
type CalendarItemsByCategory struct {
	Category      string
	Items         []CalendarItem
	TotalBusyTime float64
}

// CategorySubtotal is one category's slice of a month.
type CategorySubtotal struct {
	Category string
	Items    []CalendarItem
	Subtotal float64
}

// MonthSummary is a month with its items partitioned by category.
type MonthSummary struct {
	Month         string
	TotalBusyTime float64
	Categories    []CategorySubtotal
}

type CategoryTotal struct {
	Category string
	Total    float64
}

// CategoryTotals holds the grand total per category across all months.
type CategoryTotals struct {
	Totals []CategoryTotal
}

// CategoryMonthReport is the month by category summary plus its trailing totals.
type CategoryMonthReport struct {
	Months []MonthSummary
	Totals CategoryTotals
}

// Total returns the grand total for a category description.
func (t CategoryTotals) Total(category string) (float64, bool) {
	for _, ct := range t.Totals {
		if ct.Category == category {
			return ct.Total, true
		}
	}
	return 0, false
}
