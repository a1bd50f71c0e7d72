package domain

import "strings"

// Stored keyword day-specifications.
const (
	DaysEveryday = "everyday"
	DaysWorkdays = "workdays"
	DaysWeekend  = "weekend"
)

// DaySpecKind discriminates the parsed day-specification variants.
type DaySpecKind int

const (
	Everyday DaySpecKind = iota
	Workdays
	Weekend
	Specific
)

// DaySpec is a parsed day-specification. For Specific, days holds the
// raw comma tokens; matching is exact string membership so a malformed
// token like "08" never matches weekday 8.
type DaySpec struct {
	Kind DaySpecKind
	days map[string]struct{}
}

// ParseDaySpec parses the stored string form once. Anything that is
// not a keyword becomes a Specific set of its comma tokens; an empty
// string therefore matches nothing (defaulting to "everyday" is the
// store's job at creation time).
func ParseDaySpec(s string) DaySpec {
	switch s {
	case DaysEveryday:
		return DaySpec{Kind: Everyday}
	case DaysWorkdays:
		return DaySpec{Kind: Workdays}
	case DaysWeekend:
		return DaySpec{Kind: Weekend}
	}
	set := make(map[string]struct{})
	for _, tok := range strings.Split(s, ",") {
		set[tok] = struct{}{}
	}
	return DaySpec{Kind: Specific, days: set}
}

// Matches reports whether the spec is active on the given ISO weekday
// (1=Monday .. 7=Sunday).
func (d DaySpec) Matches(isoWeekday int) bool {
	switch d.Kind {
	case Everyday:
		return true
	case Workdays:
		return isoWeekday <= 5
	case Weekend:
		return isoWeekday >= 6
	default:
		_, ok := d.days[itoaWeekday(isoWeekday)]
		return ok
	}
}

// MatchesToday is the string-level predicate over the stored form,
// usable by UI code to preview whether a reminder would fire today.
func MatchesToday(daysSpec string, isoWeekday int) bool {
	return ParseDaySpec(daysSpec).Matches(isoWeekday)
}

func itoaWeekday(d int) string {
	if d < 1 || d > 7 {
		return ""
	}
	return string(rune('0' + d))
}
