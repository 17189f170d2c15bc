package policy

import (
	"testing"
	"time"

	settingsModel "library-backend/internal/domains/settings/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsWithFine(fine string) settingsModel.LibrarySettings {
	s := settingsModel.DefaultSettings()
	s.FinePerDay = decimal.RequireFromString(fine)
	return s
}

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestSameCalendarDay_NeverOverdue(t *testing.T) {
	settings := settingsWithFine("5")
	cases := []struct {
		name string
		due  time.Time
		now  time.Time
	}{
		{"due at midnight, now late evening", date(2024, 3, 10, 0, 0), date(2024, 3, 10, 23, 59)},
		{"due late evening, now early morning", date(2024, 3, 10, 23, 0), date(2024, 3, 10, 0, 1)},
		{"identical instants", date(2024, 3, 10, 12, 0), date(2024, 3, 10, 12, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, IsOverdue(tc.due, tc.now))
			assert.True(t, IsDueToday(tc.due, tc.now))
			assert.False(t, IsDueTomorrow(tc.due, tc.now))
			assert.Equal(t, 0, DaysUntilDue(tc.due, tc.now))
			assert.True(t, CalculateFine(tc.due, tc.now, settings).IsZero())
		})
	}
}

func TestDueTomorrow(t *testing.T) {
	now := date(2024, 3, 10, 23, 30)
	due := date(2024, 3, 11, 0, 15) // 45 phút nữa nhưng là ngày mai

	assert.True(t, IsDueTomorrow(due, now))
	assert.False(t, IsDueToday(due, now))
	assert.False(t, IsOverdue(due, now))
	assert.Equal(t, 1, DaysUntilDue(due, now))
	assert.True(t, IsDueSoon(due, now))
}

func TestDaysUntilDue_Signed(t *testing.T) {
	now := date(2024, 3, 10, 9, 0)

	assert.Equal(t, 5, DaysUntilDue(date(2024, 3, 15, 8, 0), now))
	assert.Equal(t, -3, DaysUntilDue(date(2024, 3, 7, 18, 0), now))
	assert.Equal(t, 3, DaysOverdue(date(2024, 3, 7, 18, 0), now))
	assert.Equal(t, 0, DaysOverdue(date(2024, 3, 15, 8, 0), now))
	assert.False(t, IsDueSoon(date(2024, 3, 12, 8, 0), now))
}

func TestDaysUntilDue_AcrossMonthAndLeapDay(t *testing.T) {
	now := date(2024, 3, 1, 1, 0)

	assert.Equal(t, -1, DaysUntilDue(date(2024, 2, 29, 23, 0), now))
	assert.Equal(t, -366, DaysUntilDue(date(2023, 3, 1, 0, 0), now))
}

func TestDaysUntilDue_CenturiesApart(t *testing.T) {
	now := date(2026, 10, 19, 12, 0)

	assert.Equal(t, -119069, DaysUntilDue(date(1700, 10, 19, 8, 0), now))
	assert.Equal(t, 119069, DaysUntilDue(now, date(1700, 10, 19, 8, 0)))
	assert.Equal(t, 365242, DaysUntilDue(date(3026, 10, 19, 0, 0), now))

	fine := CalculateFine(date(1700, 10, 19, 8, 0), now, settingsWithFine("0.10"))
	assert.Equal(t, "11906.90", fine.StringFixed(2))
}

func TestDaysUntilDue_ZeroDueDate(t *testing.T) {
	now := date(2026, 10, 19, 12, 0)

	// time.Time{} là 0001-01-01 UTC
	assert.Equal(t, -739907, DaysUntilDue(time.Time{}, now))
	assert.True(t, IsOverdue(time.Time{}, now))
	assert.Equal(t, "3699535.00", CalculateFine(time.Time{}, now, settingsWithFine("5")).StringFixed(2))
}

func TestDayNumber_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC ngày 10 = 01:30 ngày 11 theo giờ IST
	due := date(2024, 3, 10, 20, 0)
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, loc)

	assert.True(t, IsDueToday(due, now))
	assert.False(t, IsOverdue(due, now))
}

func TestCalculateFine_ThreeDaysAtTwoFifty(t *testing.T) {
	now := date(2024, 3, 10, 10, 0)
	due := now.AddDate(0, 0, -3)

	fine := CalculateFine(due, now, settingsWithFine("2.50"))

	assert.True(t, IsOverdue(due, now))
	assert.Equal(t, "7.50", fine.StringFixed(2))
}

func TestCalculateFine_IncreasesByRatePerDay(t *testing.T) {
	settings := settingsWithFine("1.75")
	due := date(2024, 1, 1, 15, 0)

	prev := CalculateFine(due, due, settings)
	require.True(t, prev.IsZero())

	for day := 1; day <= 30; day++ {
		now := due.AddDate(0, 0, day)
		fine := CalculateFine(due, now, settings)

		assert.True(t, fine.Sub(prev).Equal(settings.FinePerDay), "day %d: %s -> %s", day, prev, fine)
		prev = fine
	}
}

func TestCalculateFine_RoundsHalfAwayFromZero(t *testing.T) {
	now := date(2024, 3, 10, 10, 0)
	due := now.AddDate(0, 0, -1)

	assert.Equal(t, "0.13", CalculateFine(due, now, settingsWithFine("0.125")).StringFixed(2))
	assert.Equal(t, "0.38", CalculateFine(due.AddDate(0, 0, -2), now, settingsWithFine("0.125")).StringFixed(2))
}

func TestCalculateFine_NotOverdueIsZero(t *testing.T) {
	now := date(2024, 3, 10, 10, 0)

	assert.True(t, CalculateFine(now.AddDate(0, 0, 4), now, settingsWithFine("5")).IsZero())
}

func TestDueDateFor(t *testing.T) {
	borrowed := date(2024, 2, 20, 14, 0)
	settings := settingsModel.DefaultSettings()
	settings.BorrowPeriodDays = 14

	assert.Equal(t, date(2024, 3, 5, 14, 0), DueDateFor(borrowed, settings))
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount string
		symbol string
		want   string
	}{
		{"7.5", "₹", "₹7.50"},
		{"0", "$", "$0.00"},
		{"1234567.891", "€", "€1234567.89"},
		{"45", "", "45.00"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(decimal.RequireFromString(tc.amount), tc.symbol))
	}
}
