package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Gdrag182/weather-bot/internal/domain"
	"github.com/Gdrag182/weather-bot/internal/store"
)

// Lookup resolves a city to formatted weather text.
// weather.Client implements this.
type Lookup interface {
	Current(ctx context.Context, city string) (string, error)
}

// Sender delivers a Markdown-formatted message to a chat.
// telegram.Router implements this.
type Sender interface {
	SendMarkdown(chatID int64, text string) error
}

// Dispatcher is the background loop that polls active reminders once a
// minute and fires weather notifications for those matching the
// current wall-clock time and day-specification.
//
// Delivery is best-effort: a reminder fires at most once per matching
// minute, and if a cycle slips past the next minute boundary that
// minute is skipped, never backfilled.
type Dispatcher struct {
	repo          store.Repo
	log           *zap.Logger
	lookup        Lookup
	sender        Sender
	interval      time.Duration
	lookupTimeout time.Duration
}

// New creates a Dispatcher with the fixed one-minute poll interval and
// a short per-lookup budget so a hung upstream cannot stall the loop.
func New(repo store.Repo, log *zap.Logger, lookup Lookup, sender Sender) *Dispatcher {
	return &Dispatcher{
		repo:          repo,
		log:           log,
		lookup:        lookup,
		sender:        sender,
		interval:      time.Minute,
		lookupTimeout: 10 * time.Second,
	}
}

// Run starts the loop until ctx is canceled. Failures inside a cycle
// never terminate the loop; the next tick is the retry.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("dispatcher started", zap.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("dispatcher stopping")
			return
		case <-ticker.C:
			d.tick(ctx, time.Now())
		}
	}
}

// tick performs one dispatch cycle against the sampled local time.
func (d *Dispatcher) tick(ctx context.Context, now time.Time) {
	current := now.Format("15:04")
	today := domain.ISOWeekday(now.Weekday())

	reminders, err := d.repo.ListActive(ctx)
	if err != nil {
		d.log.Error("list active reminders failed", zap.Error(err))
		return
	}

	for _, rem := range reminders {
		d.process(ctx, rem, current, today)
	}
}

// process handles a single reminder in isolation: any failure or panic
// here is logged and must never abort the cycle.
func (d *Dispatcher) process(ctx context.Context, rem domain.Reminder, current string, today int) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("reminder processing panicked",
				zap.Int64("reminderID", rem.ID),
				zap.String("tick", current),
				zap.Any("panic", r),
			)
		}
	}()

	if rem.Time != current || !domain.MatchesToday(rem.Days, today) {
		return
	}

	lctx, cancel := context.WithTimeout(ctx, d.lookupTimeout)
	defer cancel()

	body, err := d.lookup.Current(lctx, rem.City)
	if err != nil {
		// Best-effort policy: skip this cycle, no retry, nothing
		// surfaced to the user.
		d.log.Warn("weather lookup failed, reminder skipped",
			zap.Int64("reminderID", rem.ID),
			zap.String("city", rem.City),
			zap.Error(err),
		)
		return
	}

	text := fmt.Sprintf("🔔 *Напоминание о погоде в %s!*\n📅 *%s*\n\n%s",
		rem.City, domain.WeekdayLabel(today), body)

	if err := d.sender.SendMarkdown(rem.ChatID, text); err != nil {
		d.log.Error("reminder delivery failed",
			zap.Int64("reminderID", rem.ID),
			zap.Int64("chatID", rem.ChatID),
			zap.Error(err),
		)
	}
}
