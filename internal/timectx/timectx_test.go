package timectx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoneguard/zoneguard/internal/timectx"
)

func TestFrom_RushHour(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want bool
	}{
		{name: "morning rush start", hour: 8, want: true},
		{name: "morning rush end", hour: 10, want: true},
		{name: "before morning rush", hour: 7, want: false},
		{name: "midday", hour: 11, want: false},
		{name: "evening rush", hour: 18, want: true},
		{name: "after evening rush", hour: 20, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A Tuesday.
			now := time.Date(2025, time.March, 4, tt.hour, 0, 0, 0, time.UTC)
			ctx := timectx.From(now, timectx.Calendar{})
			assert.Equal(t, tt.want, ctx.IsRushHour)
		})
	}
}

func TestFrom_Weekend(t *testing.T) {
	saturday := time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, timectx.From(saturday, timectx.Calendar{}).IsWeekend)
	assert.False(t, timectx.From(monday, timectx.Calendar{}).IsWeekend)
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  timectx.Season
	}{
		{time.January, timectx.SeasonWinter},
		{time.February, timectx.SeasonWinter},
		{time.March, timectx.SeasonSummer},
		{time.May, timectx.SeasonSummer},
		{time.June, timectx.SeasonMonsoon},
		{time.September, timectx.SeasonMonsoon},
		{time.October, timectx.SeasonSummer},
		{time.November, timectx.SeasonWinter},
		{time.December, timectx.SeasonWinter},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, timectx.SeasonOf(tt.month), tt.month.String())
	}
}

func TestFrom_Calendars(t *testing.T) {
	day := time.Date(2025, time.August, 15, 9, 0, 0, 0, time.UTC)

	cal := timectx.Calendar{
		Holidays:  map[string]bool{"2025-08-15": true},
		Festivals: map[string]bool{"2025-08-15": true},
	}

	ctx := timectx.From(day, cal)
	assert.True(t, ctx.IsHoliday)
	assert.True(t, ctx.IsFestival)

	// Zero-value calendar marks nothing.
	ctx = timectx.From(day, timectx.Calendar{})
	assert.False(t, ctx.IsHoliday)
	assert.False(t, ctx.IsFestival)
}
