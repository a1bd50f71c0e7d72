package domain

// Reminder is a persisted rule describing when and for whom a weather
// notification should be sent. Rows are soft-deleted: IsActive=false is
// terminal, re-creating produces a new ID.
type Reminder struct {
	ID     int64
	UserID int64
	ChatID int64
	City   string
	// Time is wall-clock "HH:MM" interpreted in the process-local zone.
	Time string
	// Days is the stored day-specification: "everyday", "workdays",
	// "weekend" or a comma-separated list of ISO weekday numbers.
	Days     string
	IsActive bool
}
