package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Gdrag182/weather-bot/internal/domain"
)

// Main menu button labels. The router matches incoming text against
// these, so keyboard and dispatch must stay in sync.
const (
	btnWeather   = "🌤 Узнать погоду"
	btnPopular   = "🌟 Популярные города"
	btnRemind    = "⏰ Напомнить о погоде"
	btnReminders = "📋 Мои напоминания"
	btnAbout     = "ℹ️ О боте"
	btnHelp      = "📞 Помощь"
	btnCreator   = "👨‍💻 О разработчике"
)

const (
	creatorName     = "Pavel"
	creatorNickname = "@Gdrag182"
	botVersion      = "3.0"
)

const (
	welcomeFmt = "🌟 *Привет, %s!*\n\n" +
		"Я *WeatherBot* — твой помощник по погоде! 🌤\n\n" +
		"📌 *Что я умею:*\n" +
		"• Показывать погоду в любом городе\n" +
		"• Напоминания о погоде ⏰\n" +
		"• Красивые кнопки\n\n" +
		"👇 *Нажми кнопку ниже!*"

	askCityText = "🏙 *Введите название города*\n\nНапример: Москва, London, Париж"

	cityNotFoundFmt = "❌ Город '%s' не найден.\n" +
		"Попробуй:\n" +
		"• Проверить название\n" +
		"• Написать на английском (Moscow, London)\n" +
		"• Добавить страну (Moscow, RU)"

	badTimeText = "❌ Неверный формат. Используйте ЧЧ:ММ (например, 14:30)"

	aboutText = "🤖 *WeatherBot*\n\n" +
		"Версия: " + botVersion + "\n" +
		"Создатель: " + creatorName + "\n\n" +
		"📊 Функции:\n" +
		"• Погода в реальном времени\n" +
		"• Напоминания с выбором дней\n" +
		"• Удобные кнопки"

	creatorText = "👨‍💻 *О разработчике*\n\n" +
		"Создал: " + creatorName + "\n" +
		"Контакты: " + creatorNickname + "\n\n" +
		"Сделано с ❤️ на Go"

	helpText = "🔍 *Помощь*\n\n" +
		"1️⃣ Нажми «Узнать погоду»\n" +
		"2️⃣ Введи город\n" +
		"3️⃣ Получи прогноз\n\n" +
		"❓ Вопросы: " + creatorNickname
)

var popularCities = []string{
	"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург",
	"Кемерово", "Прокопьевск",
}

var timePresets = []string{"07:00", "09:00", "12:00", "15:00", "18:00", "20:00"}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeather),
			tgbotapi.NewKeyboardButton(btnPopular),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnRemind),
			tgbotapi.NewKeyboardButton(btnReminders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAbout),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCreator),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func citiesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(popularCities); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(popularCities[i], "city:"+popularCities[i]),
		}
		if i+1 < len(popularCities) {
			row = append(row,
				tgbotapi.NewInlineKeyboardButtonData(popularCities[i+1], "city:"+popularCities[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔍 Другой город", "other_city"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// afterWeatherKeyboard offers follow-up actions under a weather answer.
func afterWeatherKeyboard(city string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Другой город", "other_city"),
			tgbotapi.NewInlineKeyboardButtonData("🌟 Популярные", "show_popular"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Напомнить", "remind:"+city),
		),
	)
}

func timeKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(timePresets); i += 3 {
		var row []tgbotapi.InlineKeyboardButton
		for j := i; j < i+3 && j < len(timePresets); j++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(timePresets[j], "time:"+timePresets[j]))
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Своё время", "time:custom"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "back_to_menu"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func daysKeyboard() tgbotapi.InlineKeyboardMarkup {
	var dayRow []tgbotapi.InlineKeyboardButton
	for iso := 1; iso <= 7; iso++ {
		dayRow = append(dayRow, tgbotapi.NewInlineKeyboardButtonData(
			domain.WeekdayLabel(iso), "days:"+string(rune('0'+iso))))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		dayRow,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Ежедневно", "days:everyday"),
			tgbotapi.NewInlineKeyboardButtonData("💼 Будни", "days:workdays"),
			tgbotapi.NewInlineKeyboardButtonData("🎉 Выходные", "days:weekend"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "back_to_time"),
		),
	)
}

// manageKeyboard lists a user's reminders as delete buttons.
func manageKeyboard(reminders []domain.Reminder) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, rem := range reminders {
		label := "❌ " + rem.City + " в " + rem.Time + " (" + domain.FormatDays(rem.Days) + ")"
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "delete:"+itoa64(rem.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "back_to_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
