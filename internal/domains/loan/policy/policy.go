// Package policy holds the due-date and fine rules. Every function takes
// "now" explicitly and compares calendar days in now's location, so the
// time-of-day of either instant never changes the result.
package policy

import (
	"time"

	settingsModel "library-backend/internal/domains/settings/model"

	"github.com/shopspring/decimal"
)

const secondsPerDay = 24 * 60 * 60

// dayNumber returns t's date in loc as days since the Unix epoch. UTC
// midnights are exact multiples of a day (no DST drift), and int64 seconds
// cover every representable date, unlike time.Duration (~292 years).
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// DaysUntilDue is the signed number of calendar days from now to dueDate;
// negative once the loan is overdue.
func DaysUntilDue(dueDate, now time.Time) int {
	loc := now.Location()
	return int(dayNumber(dueDate, loc) - dayNumber(now, loc))
}

// DaysOverdue is max(0, -DaysUntilDue).
func DaysOverdue(dueDate, now time.Time) int {
	if d := -DaysUntilDue(dueDate, now); d > 0 {
		return d
	}
	return 0
}

// IsOverdue: due day strictly before today. Due today is not overdue.
func IsOverdue(dueDate, now time.Time) bool {
	return DaysUntilDue(dueDate, now) < 0
}

func IsDueToday(dueDate, now time.Time) bool {
	return DaysUntilDue(dueDate, now) == 0
}

func IsDueTomorrow(dueDate, now time.Time) bool {
	return DaysUntilDue(dueDate, now) == 1
}

// IsDueSoon: due today or tomorrow (drives reminders).
func IsDueSoon(dueDate, now time.Time) bool {
	d := DaysUntilDue(dueDate, now)
	return d == 0 || d == 1
}

// CalculateFine = daysOverdue × finePerDay rounded to cents, half away
// from zero. Zero when not overdue.
func CalculateFine(dueDate, now time.Time, settings settingsModel.LibrarySettings) decimal.Decimal {
	days := DaysOverdue(dueDate, now)
	if days <= 0 {
		return decimal.Zero
	}
	return settings.FinePerDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// DueDateFor computes the due date of a loan borrowed at borrowDate.
func DueDateFor(borrowDate time.Time, settings settingsModel.LibrarySettings) time.Time {
	return borrowDate.AddDate(0, 0, settings.BorrowPeriodDays)
}

// FormatCurrency concatenates the symbol with the amount fixed to two
// decimals. No grouping, no locale.
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}
