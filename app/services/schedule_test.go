package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyChargeDates(t *testing.T) {
	// Start on a Wednesday, charge every Monday.
	dates := WeeklyChargeDates(day(2025, time.January, 1), day(2025, time.January, 22), 0)
	require.Len(t, dates, 3)
	assert.Equal(t, day(2025, time.January, 6), dates[0])
	assert.Equal(t, day(2025, time.January, 13), dates[1])
	assert.Equal(t, day(2025, time.January, 20), dates[2])
}

func TestWeeklyChargeDatesStartOnAnchorDay(t *testing.T) {
	dates := WeeklyChargeDates(day(2025, time.January, 6), day(2025, time.January, 21), 0)
	require.Len(t, dates, 3)
	assert.Equal(t, day(2025, time.January, 6), dates[0], "a start date on the anchor day is itself a charge date")
}

func TestWeeklyChargeDatesEndDateExcluded(t *testing.T) {
	// 2025-01-20 is a Monday but coincides with the end date.
	dates := WeeklyChargeDates(day(2025, time.January, 6), day(2025, time.January, 20), 0)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.January, 13), dates[len(dates)-1])
}

func TestWeeklyChargeDatesFullYear(t *testing.T) {
	dates := WeeklyChargeDates(day(2025, time.January, 1), day(2025, time.December, 31), 0)
	require.Len(t, dates, 52)
	assert.Equal(t, day(2025, time.January, 6), dates[0])
	assert.Equal(t, day(2025, time.December, 29), dates[51])
	for _, d := range dates {
		assert.Equal(t, time.Monday, d.Weekday())
	}
}

func TestWeeklyChargeDatesSundayAnchor(t *testing.T) {
	dates := WeeklyChargeDates(day(2025, time.January, 1), day(2025, time.January, 13), 6)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.January, 5), dates[0])
	assert.Equal(t, day(2025, time.January, 12), dates[1])
}

func TestMonthlyChargeDates(t *testing.T) {
	// Start past the anchor day, so the first charge lands next month.
	dates := MonthlyChargeDates(day(2025, time.January, 15), day(2025, time.April, 10), 10)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.February, 10), dates[0])
	assert.Equal(t, day(2025, time.March, 10), dates[1])
}

func TestMonthlyChargeDatesStartBeforeAnchor(t *testing.T) {
	dates := MonthlyChargeDates(day(2025, time.January, 5), day(2025, time.March, 1), 10)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.January, 10), dates[0])
	assert.Equal(t, day(2025, time.February, 10), dates[1])
}

func TestMonthlyChargeDatesStartOnAnchorDay(t *testing.T) {
	dates := MonthlyChargeDates(day(2025, time.March, 10), day(2025, time.May, 1), 10)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.March, 10), dates[0])
}

func TestScheduleGenerationIsDeterministic(t *testing.T) {
	first := WeeklyChargeDates(day(2025, time.January, 1), day(2025, time.December, 31), 3)
	second := WeeklyChargeDates(day(2025, time.January, 1), day(2025, time.December, 31), 3)
	assert.Equal(t, first, second)
}
