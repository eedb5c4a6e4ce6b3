package storage

type Category struct {
	ID          int64
	Description string
	TypeID      int64
}

type CategoryType struct {
	ID          int64
	Description string
}

type Event struct {
	ID                int64
	StartDateTime     string
	Details           string
	DurationInMinutes float64
	CategoryID        int64
}

// CalendarItemRow is one row of the events to categories join.
type CalendarItemRow struct {
	CategoryID          int64
	CategoryDescription string
	EventID             int64
	StartDateTime       string
	DurationInMinutes   float64
	Details             string
}
