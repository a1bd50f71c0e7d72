package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Gdrag182/weather-bot/internal/domain"
)

// fakeRepo serves a fixed set of reminders.
type fakeRepo struct {
	reminders []domain.Reminder
	listErr   error
}

func (f *fakeRepo) CreateReminder(context.Context, int64, int64, string, string, string) error {
	return nil
}
func (f *fakeRepo) ListActive(context.Context) ([]domain.Reminder, error) {
	return f.reminders, f.listErr
}
func (f *fakeRepo) ListByUser(context.Context, int64) ([]domain.Reminder, error) {
	return nil, nil
}
func (f *fakeRepo) DeleteReminder(context.Context, int64) error { return nil }
func (f *fakeRepo) Close() error                                { return nil }

// fakeLookup returns canned weather per city, or an error/panic.
type fakeLookup struct {
	err       error
	panicCity string
	calls     []string
}

func (f *fakeLookup) Current(_ context.Context, city string) (string, error) {
	f.calls = append(f.calls, city)
	if city == f.panicCity {
		panic("lookup exploded")
	}
	if f.err != nil {
		return "", f.err
	}
	return "погода в " + city, nil
}

// fakeSender records deliveries and can fail selectively.
type fakeSender struct {
	failChat int64
	sent     []sentMsg
}

type sentMsg struct {
	chatID int64
	text   string
}

func (f *fakeSender) SendMarkdown(chatID int64, text string) error {
	f.sent = append(f.sent, sentMsg{chatID, text})
	if chatID == f.failChat {
		return errors.New("blocked chat")
	}
	return nil
}

func newTestDispatcher(repo *fakeRepo, lookup *fakeLookup, sender *fakeSender) *Dispatcher {
	return New(repo, zap.NewNop(), lookup, sender)
}

func workdayReminder() domain.Reminder {
	return domain.Reminder{
		ID: 1, UserID: 1, ChatID: 100,
		City: "Москва", Time: "09:00", Days: "workdays", IsActive: true,
	}
}

// 2025-01-01 is a Wednesday, 2025-01-04 a Saturday.
var (
	wednesday0900 = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.Local)
	saturday0900  = time.Date(2025, time.January, 4, 9, 0, 0, 0, time.Local)
	wednesday0901 = time.Date(2025, time.January, 1, 9, 1, 0, 0, time.Local)
)

func TestTick_FiresMatchingReminderOnce(t *testing.T) {
	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder()}}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	if len(sender.sent) != 1 {
		t.Fatalf("want exactly 1 delivery, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.chatID != 100 {
		t.Fatalf("want chat 100, got %d", got.chatID)
	}
	if !strings.Contains(got.text, "Москва") || !strings.Contains(got.text, "Ср") {
		t.Fatalf("notification must carry city and weekday label, got %q", got.text)
	}
	if !strings.Contains(got.text, "погода в Москва") {
		t.Fatalf("notification must embed the weather body, got %q", got.text)
	}
}

func TestTick_DayFilterExcludesWeekend(t *testing.T) {
	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder()}}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), saturday0900)

	if len(sender.sent) != 0 {
		t.Fatalf("workdays reminder must not fire on saturday, got %d deliveries", len(sender.sent))
	}
	if len(lookup.calls) != 0 {
		t.Fatal("no lookup must happen for a non-matching day")
	}
}

func TestTick_TimeMismatchSkips(t *testing.T) {
	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder()}}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0901)

	if len(sender.sent) != 0 {
		t.Fatalf("09:00 reminder must not fire at 09:01, got %d deliveries", len(sender.sent))
	}
}

func TestTick_LookupFailureSkipsReminderButNotCycle(t *testing.T) {
	second := workdayReminder()
	second.ID, second.ChatID, second.City = 2, 200, "Кемерово"

	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder(), second}}
	lookup := &fakeLookup{err: errors.New("upstream down")}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	if len(sender.sent) != 0 {
		t.Fatalf("failed lookups must suppress delivery, got %d", len(sender.sent))
	}
	if len(lookup.calls) != 2 {
		t.Fatalf("both reminders must still be processed, got %d lookups", len(lookup.calls))
	}
}

func TestTick_TwoRemindersSameMinuteBothDeliver(t *testing.T) {
	second := workdayReminder()
	second.ID, second.ChatID, second.City = 2, 200, "Кемерово"

	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder(), second}}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	if len(sender.sent) != 2 {
		t.Fatalf("want 2 deliveries, got %d", len(sender.sent))
	}
}

func TestTick_FirstReminderFailureDoesNotBlockSecond(t *testing.T) {
	second := workdayReminder()
	second.ID, second.ChatID, second.City = 2, 200, "Кемерово"

	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder(), second}}
	lookup := &fakeLookup{panicCity: "Москва"}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	if len(sender.sent) != 1 {
		t.Fatalf("second reminder must deliver despite first panicking, got %d", len(sender.sent))
	}
	if sender.sent[0].chatID != 200 {
		t.Fatalf("delivery must be for the second reminder, got chat %d", sender.sent[0].chatID)
	}
}

func TestTick_DeliveryFailureIsNonFatal(t *testing.T) {
	second := workdayReminder()
	second.ID, second.ChatID, second.City = 2, 200, "Кемерово"

	repo := &fakeRepo{reminders: []domain.Reminder{workdayReminder(), second}}
	lookup := &fakeLookup{}
	sender := &fakeSender{failChat: 100}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	// Both sends attempted; the first one's error is swallowed.
	if len(sender.sent) != 2 {
		t.Fatalf("want 2 attempted deliveries, got %d", len(sender.sent))
	}
}

func TestTick_ListFailureEndsCycleQuietly(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db locked")}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	// Must not panic; the next tick is the retry.
	newTestDispatcher(repo, lookup, sender).tick(context.Background(), wednesday0900)

	if len(sender.sent) != 0 || len(lookup.calls) != 0 {
		t.Fatal("a failed list must end the cycle without processing")
	}
}

func TestTick_EverydayReminderFiresOnWeekend(t *testing.T) {
	rem := workdayReminder()
	rem.Days = "everyday"
	repo := &fakeRepo{reminders: []domain.Reminder{rem}}
	lookup := &fakeLookup{}
	sender := &fakeSender{}

	newTestDispatcher(repo, lookup, sender).tick(context.Background(), saturday0900)

	if len(sender.sent) != 1 {
		t.Fatalf("everyday reminder must fire on saturday, got %d deliveries", len(sender.sent))
	}
}
