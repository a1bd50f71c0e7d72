package store

import (
	"context"
	"errors"

	"github.com/Gdrag182/weather-bot/internal/domain"
)

// ErrInvalidTime is returned when a reminder is created with a time
// string that is not 24-hour HH:MM. The conversational flow
// pre-validates; the store re-checks defensively.
var ErrInvalidTime = errors.New("invalid reminder time, expected HH:MM")

// Repo defines storage operations for weather reminders.
//
// Row order in the list operations is implementation-defined; callers
// must not rely on delivery order within one dispatch cycle.
type Repo interface {
	// CreateReminder inserts one new active reminder. Empty days
	// defaults to "everyday".
	CreateReminder(ctx context.Context, userID, chatID int64, city, reminderTime, days string) error
	// ListActive returns every active reminder regardless of owner.
	ListActive(ctx context.Context) ([]domain.Reminder, error)
	// ListByUser returns one user's active reminders.
	ListByUser(ctx context.Context, userID int64) ([]domain.Reminder, error)
	// DeleteReminder soft-deletes by id. Deleting an inactive or
	// unknown id is a no-op.
	DeleteReminder(ctx context.Context, id int64) error
	Close() error
}
