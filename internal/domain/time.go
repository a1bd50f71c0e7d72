package domain

import (
	"regexp"
	"strings"
	"time"
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTime reports whether s is a wall-clock time in 24-hour HH:MM
// form. A single-digit hour is allowed ("9:05"), a single-digit minute
// is not ("9:5").
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// NormalizeTime zero-pads a valid single-digit hour ("9:05" → "09:05")
// so stored times compare equal to the dispatcher's two-digit HH:MM
// sampling. Anything else is returned unchanged.
func NormalizeTime(s string) string {
	if len(s) == 4 && IsValidTime(s) {
		return "0" + s
	}
	return s
}

// ISOWeekday converts time.Weekday (Sunday=0) to ISO numbering
// (1=Monday .. 7=Sunday).
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

var weekdayLabels = map[int]string{
	1: "Пн", 2: "Вт", 3: "Ср", 4: "Чт", 5: "Пт", 6: "Сб", 7: "Вс",
}

// WeekdayLabel returns the short Russian label for an ISO weekday,
// or "" when out of range.
func WeekdayLabel(isoWeekday int) string {
	return weekdayLabels[isoWeekday]
}

// FormatDays renders a stored day-specification for list views:
// "ежедневно", "будни", "выходные" or "Пн, Ср, Пт". Unknown comma
// tokens are dropped.
func FormatDays(daysSpec string) string {
	switch daysSpec {
	case "", DaysEveryday:
		return "ежедневно"
	case DaysWorkdays:
		return "будни"
	case DaysWeekend:
		return "выходные"
	}
	var labels []string
	for _, tok := range strings.Split(daysSpec, ",") {
		if len(tok) == 1 && tok[0] >= '1' && tok[0] <= '7' {
			labels = append(labels, weekdayLabels[int(tok[0]-'0')])
		}
	}
	return strings.Join(labels, ", ")
}
