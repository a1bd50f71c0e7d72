package weather

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// conditionEmoji maps OpenWeatherMap condition groups to emoji.
var conditionEmoji = map[string]string{
	"clear":        "☀️",
	"clouds":       "☁️",
	"rain":         "🌧",
	"snow":         "❄️",
	"thunderstorm": "⛈",
	"mist":         "🌫",
	"fog":          "🌫",
	"drizzle":      "🌧",
}

// formatCurrent renders the Markdown weather card sent both as a
// direct answer and inside reminder notifications.
func formatCurrent(data *currentResponse, cityName, country string) string {
	var condMain, condDescr string
	if len(data.Weather) > 0 {
		condMain = strings.ToLower(data.Weather[0].Main)
		condDescr = data.Weather[0].Description
	}

	emoji, ok := conditionEmoji[condMain]
	if !ok {
		emoji = "🌡"
	}

	countryText := ""
	if country != "" {
		countryText = ", " + country
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏙 *%s%s*\n\n", cityName, countryText)
	fmt.Fprintf(&sb, "%s *%s*\n\n", emoji, capitalize(condDescr))
	fmt.Fprintf(&sb, "🌡 *Температура:* %.1f°C\n", data.Main.Temp)
	fmt.Fprintf(&sb, "🤔 *Ощущается как:* %.1f°C\n", data.Main.FeelsLike)
	fmt.Fprintf(&sb, "💧 *Влажность:* %d%%\n", data.Main.Humidity)
	fmt.Fprintf(&sb, "📊 *Давление:* %d гПа\n", data.Main.Pressure)
	fmt.Fprintf(&sb, "💨 *Ветер:* %g м/с\n\n", data.Wind.Speed)
	sb.WriteString("✨ Хорошего дня!")
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
