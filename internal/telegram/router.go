package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Gdrag182/weather-bot/internal/store"
)

// WeatherService resolves a city to formatted weather text.
type WeatherService interface {
	Current(ctx context.Context, city string) (string, error)
}

// sessionState is the reminder-creation state machine:
// Idle → AwaitingTime → AwaitingDays → Idle.
type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitingTime
	stateAwaitingDays
)

// session carries one user's in-flight reminder-creation input.
// Non-persistent; a restart simply drops unfinished flows.
type session struct {
	state sessionState
	city  string
	time  string
}

// Router wires Telegram updates to handlers and holds per-user
// conversational sessions.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	repo    store.Repo
	weather WeatherService

	mu       sync.RWMutex
	sessions map[int64]session
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, weather WeatherService) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		repo:     repo,
		weather:  weather,
		sessions: make(map[int64]session),
	}
}

func (r *Router) getSession(userID int64) session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[userID]
}

func (r *Router) setSession(userID int64, s session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = s
}

func (r *Router) clearSession(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		r.handleMessage(ctx, upd.Message)
		return
	}
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.handleStart(msg)
	case text == btnWeather, text == btnRemind:
		r.sendMarkdownWithKeyboard(chatID, askCityText, citiesKeyboard())
	case text == btnPopular:
		r.sendMarkdownWithKeyboard(chatID, "🌆 *Выберите город:*", citiesKeyboard())
	case text == btnReminders:
		r.handleListReminders(ctx, userID, chatID)
	case text == btnAbout:
		r.sendMarkdownWithKeyboard(chatID, aboutText, mainKeyboard())
	case text == btnCreator:
		r.sendMarkdownWithKeyboard(chatID, creatorText, mainKeyboard())
	case text == btnHelp:
		r.sendMarkdownWithKeyboard(chatID, helpText, mainKeyboard())
	default:
		r.handleFreeForm(ctx, userID, chatID, text)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	switch {
	case strings.HasPrefix(data, "city:"):
		r.handleCityWeather(ctx, cb, strings.TrimPrefix(data, "city:"))
	case strings.HasPrefix(data, "remind:"):
		r.handleStartReminderFlow(cb, strings.TrimPrefix(data, "remind:"))
	case strings.HasPrefix(data, "time:"):
		r.handleTimeChosen(cb, strings.TrimPrefix(data, "time:"))
	case strings.HasPrefix(data, "days:"):
		r.handleDaysChosen(ctx, cb, strings.TrimPrefix(data, "days:"))
	case strings.HasPrefix(data, "delete:"):
		r.handleDeleteReminder(ctx, cb, strings.TrimPrefix(data, "delete:"))
	case data == "back_to_time":
		r.handleBackToTime(cb)
	case data == "other_city":
		r.answerCallback(cb.ID, "")
		r.sendMarkdown(chatID, "🏙 *Введите название города:*")
	case data == "show_popular":
		r.answerCallback(cb.ID, "")
		r.sendMarkdownWithKeyboard(chatID, "🌆 *Популярные города:*", citiesKeyboard())
	case data == "back_to_menu":
		r.answerCallback(cb.ID, "")
		r.clearSession(userID)
		r.sendMarkdownWithKeyboard(chatID, "🏠 *Главное меню*", mainKeyboard())
	default:
		// Unknown callback — ignore silently
		r.answerCallback(cb.ID, "")
	}
}

// --- Send helpers ---

// SendMarkdown sends a Markdown message to the given chat. This makes
// Router satisfy scheduler.Sender.
func (r *Router) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := r.bot.Send(msg)
	return err
}

func (r *Router) sendMarkdown(chatID int64, text string) {
	if err := r.SendMarkdown(chatID, text); err != nil {
		r.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) sendMarkdownWithKeyboard(chatID int64, text string, kb any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) editMarkdown(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.ReplyMarkup = kb
	if _, err := r.bot.Send(edit); err != nil {
		r.log.Error("edit failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) answerCallback(id, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		r.log.Debug("answer callback failed", zap.Error(err))
	}
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
