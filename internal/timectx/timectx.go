// Package timectx derives the time-of-day context used by risk scoring.
// The context is a pure function of a wall-clock instant plus optional
// holiday and festival calendars; nothing here is persisted.
package timectx

import "time"

// Season is the coarse season bucket derived from the month.
type Season string

const (
	SeasonSummer  Season = "Summer"
	SeasonMonsoon Season = "Monsoon"
	SeasonWinter  Season = "Winter"
)

// Calendar answers whether a given day is special. The zero value treats
// every day as ordinary, which matches deployments without a configured
// calendar.
type Calendar struct {
	Holidays  map[string]bool
	Festivals map[string]bool
}

const dayKeyLayout = "2006-01-02"

// IsHoliday reports whether the day of t is a configured holiday.
func (c Calendar) IsHoliday(t time.Time) bool {
	return c.Holidays[t.Format(dayKeyLayout)]
}

// IsFestival reports whether the day of t is a configured festival day.
func (c Calendar) IsFestival(t time.Time) bool {
	return c.Festivals[t.Format(dayKeyLayout)]
}

// Context captures the environmental time factors at one instant.
type Context struct {
	Hour       int
	DayOfWeek  time.Weekday
	IsWeekend  bool
	IsRushHour bool
	IsHoliday  bool
	IsFestival bool
	Season     Season
}

// From computes the context for the given instant.
func From(now time.Time, cal Calendar) Context {
	hour := now.Hour()
	day := now.Weekday()

	return Context{
		Hour:       hour,
		DayOfWeek:  day,
		IsWeekend:  day == time.Saturday || day == time.Sunday,
		IsRushHour: (hour >= 8 && hour <= 10) || (hour >= 17 && hour <= 19),
		IsHoliday:  cal.IsHoliday(now),
		IsFestival: cal.IsFestival(now),
		Season:     SeasonOf(now.Month()),
	}
}

// SeasonOf maps a month to its season bucket: June through September is
// Monsoon, November through February is Winter, the rest is Summer.
func SeasonOf(m time.Month) Season {
	switch {
	case m >= time.June && m <= time.September:
		return SeasonMonsoon
	case m >= time.November || m <= time.February:
		return SeasonWinter
	default:
		return SeasonSummer
	}
}
