package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Gdrag182/weather-bot/internal/domain"
	"github.com/Gdrag182/weather-bot/internal/weather"
)

func (r *Router) handleStart(msg *tgbotapi.Message) {
	name := msg.From.FirstName
	r.sendMarkdownWithKeyboard(msg.Chat.ID, fmt.Sprintf(welcomeFmt, name), mainKeyboard())
}

// handleFreeForm handles text that is not a command or menu button:
// the custom time entry while a reminder flow awaits it, otherwise a
// city name to look up.
func (r *Router) handleFreeForm(ctx context.Context, userID, chatID int64, text string) {
	s := r.getSession(userID)
	if s.state == stateAwaitingTime {
		if !domain.IsValidTime(text) {
			r.sendMarkdown(chatID, badTimeText)
			return
		}
		r.setSession(userID, session{state: stateAwaitingDays, city: s.city, time: text})
		r.sendMarkdownWithKeyboard(chatID,
			fmt.Sprintf("⏰ *Выберите дни для %s в %s:*", s.city, text),
			daysKeyboard())
		return
	}

	r.replyWithWeather(ctx, chatID, text)
}

// replyWithWeather answers an interactive weather query. Unlike the
// dispatcher, lookup failures here are surfaced as a retryable hint.
func (r *Router) replyWithWeather(ctx context.Context, chatID int64, city string) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	_, _ = r.bot.Request(typing)

	msg, err := r.weather.Current(ctx, city)
	if err != nil {
		if !errors.Is(err, weather.ErrCityNotFound) {
			r.log.Warn("interactive weather lookup failed", zap.String("city", city), zap.Error(err))
		}
		r.sendMarkdown(chatID, fmt.Sprintf(cityNotFoundFmt, city))
		return
	}

	r.sendMarkdown(chatID, msg)
	r.sendMarkdownWithKeyboard(chatID, "👇 *Что дальше?*", afterWeatherKeyboard(city))
}

func (r *Router) handleCityWeather(ctx context.Context, cb *tgbotapi.CallbackQuery, city string) {
	r.answerCallback(cb.ID, "Ищем "+city+"...")
	r.replyWithWeather(ctx, cb.Message.Chat.ID, city)
}

// handleStartReminderFlow begins reminder creation for a city:
// Idle → AwaitingTime.
func (r *Router) handleStartReminderFlow(cb *tgbotapi.CallbackQuery, city string) {
	r.answerCallback(cb.ID, "")
	r.setSession(cb.From.ID, session{state: stateAwaitingTime, city: city})
	r.sendMarkdownWithKeyboard(cb.Message.Chat.ID,
		fmt.Sprintf("⏰ *Выберите время для %s:*", city),
		timeKeyboard())
}

// handleTimeChosen handles a time preset or the custom-time request:
// AwaitingTime → AwaitingDays.
func (r *Router) handleTimeChosen(cb *tgbotapi.CallbackQuery, value string) {
	r.answerCallback(cb.ID, "")
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	s := r.getSession(userID)
	if s.state != stateAwaitingTime {
		r.sendMarkdownWithKeyboard(chatID, "🏠 *Главное меню*", mainKeyboard())
		return
	}

	if value == "custom" {
		r.editMarkdown(chatID, cb.Message.MessageID,
			fmt.Sprintf("✏️ *Введите время для %s*\n\nФормат: ЧЧ:ММ (например, 14:30)", s.city), nil)
		return
	}
	if !domain.IsValidTime(value) {
		r.sendMarkdown(chatID, badTimeText)
		return
	}

	r.setSession(userID, session{state: stateAwaitingDays, city: s.city, time: value})
	kb := daysKeyboard()
	r.editMarkdown(chatID, cb.Message.MessageID,
		fmt.Sprintf("⏰ *Выберите дни для %s в %s:*", s.city, value), &kb)
}

// handleDaysChosen completes the flow and stores the reminder:
// AwaitingDays → Idle.
func (r *Router) handleDaysChosen(ctx context.Context, cb *tgbotapi.CallbackQuery, daysSpec string) {
	r.answerCallback(cb.ID, "")
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	s := r.getSession(userID)
	if s.state != stateAwaitingDays {
		r.sendMarkdownWithKeyboard(chatID, "🏠 *Главное меню*", mainKeyboard())
		return
	}

	if err := r.repo.CreateReminder(ctx, userID, chatID, s.city, s.time, daysSpec); err != nil {
		r.log.Error("create reminder failed",
			zap.Int64("userID", userID),
			zap.String("city", s.city),
			zap.Error(err))
		r.sendMarkdown(chatID, "❌ Не удалось создать напоминание. Попробуйте ещё раз.")
		return
	}
	r.clearSession(userID)

	daysText := domain.FormatDays(daysSpec)
	r.editMarkdown(chatID, cb.Message.MessageID,
		fmt.Sprintf("✅ *Напоминание создано!*\n\n📍 Город: %s\n⏰ Время: %s\n📅 Дни: %s",
			s.city, s.time, daysText), nil)
	r.sendMarkdownWithKeyboard(chatID, "👇 *Что дальше?*", mainKeyboard())
}

// handleBackToTime steps the flow back: AwaitingDays → AwaitingTime.
func (r *Router) handleBackToTime(cb *tgbotapi.CallbackQuery) {
	r.answerCallback(cb.ID, "")
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	s := r.getSession(userID)
	if s.city == "" {
		r.sendMarkdownWithKeyboard(chatID, "🏠 *Главное меню*", mainKeyboard())
		return
	}
	r.setSession(userID, session{state: stateAwaitingTime, city: s.city})
	kb := timeKeyboard()
	r.editMarkdown(chatID, cb.Message.MessageID,
		fmt.Sprintf("⏰ *Выберите время для %s:*", s.city), &kb)
}

func (r *Router) handleListReminders(ctx context.Context, userID, chatID int64) {
	reminders, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		r.log.Error("list reminders failed", zap.Int64("userID", userID), zap.Error(err))
		r.sendMarkdown(chatID, "❌ Не удалось загрузить напоминания.")
		return
	}
	if len(reminders) == 0 {
		r.sendMarkdownWithKeyboard(chatID, "📋 *У вас нет активных напоминаний*", mainKeyboard())
		return
	}
	r.sendMarkdownWithKeyboard(chatID,
		"📋 *Ваши напоминания:*\nНажмите для удаления",
		manageKeyboard(reminders))
}

func (r *Router) handleDeleteReminder(ctx context.Context, cb *tgbotapi.CallbackQuery, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		r.answerCallback(cb.ID, "")
		return
	}
	if err := r.repo.DeleteReminder(ctx, id); err != nil {
		r.log.Error("delete reminder failed", zap.Int64("id", id), zap.Error(err))
		r.answerCallback(cb.ID, "Ошибка удаления")
		return
	}
	r.answerCallback(cb.ID, "✅ Удалено!")

	chatID := cb.Message.Chat.ID
	reminders, err := r.repo.ListByUser(ctx, cb.From.ID)
	if err != nil {
		r.log.Error("list reminders failed", zap.Int64("userID", cb.From.ID), zap.Error(err))
		return
	}
	if len(reminders) == 0 {
		r.editMarkdown(chatID, cb.Message.MessageID, "📋 *Напоминаний больше нет*", nil)
		return
	}
	kb := manageKeyboard(reminders)
	r.editMarkdown(chatID, cb.Message.MessageID, "📋 *Ваши напоминания:*", &kb)
}
