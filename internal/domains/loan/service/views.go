package service

import (
	"time"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/policy"
	settingsModel "library-backend/internal/domains/settings/model"

	"github.com/shopspring/decimal"
)

// EffectiveStatus: terminal statuses are returned as stored, otherwise the
// loan is overdue iff its due day is before today.
func EffectiveStatus(rec model.LoanRecord, now time.Time) model.Status {
	if rec.Status.IsTerminal() {
		return rec.Status
	}
	if policy.IsOverdue(rec.DueDate, now) {
		return model.StatusOverdue
	}
	return model.StatusBorrowed
}

// BuildView derives the read-time fields of rec. Active loans show the live
// fine, terminal ones the fine frozen at the transition.
func BuildView(rec model.LoanRecord, now time.Time, settings settingsModel.LibrarySettings) model.LoanView {
	status := EffectiveStatus(rec, now)
	active := !status.IsTerminal()

	fine := rec.FineAmount
	if active {
		fine = policy.CalculateFine(rec.DueDate, now, settings)
	}

	return model.LoanView{
		LoanRecord:           rec,
		EffectiveStatus:      status,
		IsOverdueNow:         status == model.StatusOverdue,
		IsDueToday:           active && policy.IsDueToday(rec.DueDate, now),
		IsDueTomorrow:        active && policy.IsDueTomorrow(rec.DueDate, now),
		DaysUntilDue:         policy.DaysUntilDue(rec.DueDate, now),
		CurrentFine:          fine,
		CurrentFineFormatted: policy.FormatCurrency(fine, settings.Currency),
	}
}

// ComputeStatistics gom số liệu dashboard trong một lượt duyệt.
//   - active: borrowed và chưa quá hạn
//   - overdue: quá hạn tại now, totalFines cộng fine live
//   - lost: totalLostValue cộng replacement cost của sách
//   - dueSoon: active và đến hạn hôm nay hoặc ngày mai
func ComputeStatistics(records []model.LoanRecord, now time.Time, settings settingsModel.LibrarySettings) model.Statistics {
	stats := model.Statistics{
		TotalFines:     decimal.Zero,
		TotalLostValue: decimal.Zero,
	}

	for _, rec := range records {
		switch EffectiveStatus(rec, now) {
		case model.StatusBorrowed:
			stats.ActiveCount++
			if policy.IsDueSoon(rec.DueDate, now) {
				stats.DueSoonCount++
			}
		case model.StatusOverdue:
			stats.OverdueCount++
			stats.TotalFines = stats.TotalFines.Add(policy.CalculateFine(rec.DueDate, now, settings))
		case model.StatusLost:
			stats.LostCount++
			stats.TotalLostValue = stats.TotalLostValue.Add(rec.Book.ReplacementCost)
		}
	}

	stats.TotalFinesFormatted = policy.FormatCurrency(stats.TotalFines, settings.Currency)
	stats.TotalLostValueFormatted = policy.FormatCurrency(stats.TotalLostValue, settings.Currency)
	return stats
}
