package model

import (
	"errors"
	"fmt"

	"library-backend/internal/shared"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ErrInvalidSettings is returned when a settings value fails validation.
var ErrInvalidSettings = fmt.Errorf("library settings: %w", shared.ErrValidation)

// LibrarySettings là cấu hình policy của thư viện, đọc bởi fine/due-date logic
type LibrarySettings struct {
	FinePerDay       decimal.Decimal `json:"finePerDay"`
	Currency         string          `json:"currency"`
	BorrowPeriodDays int             `json:"borrowPeriodDays"`
}

// DefaultSettings mirrors the policy shown on the library policy page.
func DefaultSettings() LibrarySettings {
	return LibrarySettings{
		FinePerDay:       decimal.NewFromInt(5),
		Currency:         "₹",
		BorrowPeriodDays: 14,
	}
}

func (s LibrarySettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.FinePerDay,
			validation.By(nonNegativeDecimal),
		),
		validation.Field(&s.Currency,
			validation.Required.Error("currency symbol is required"),
			validation.RuneLength(1, 5).Error("currency symbol must be 1-5 characters"),
		),
		validation.Field(&s.BorrowPeriodDays,
			validation.Required.Error("borrow period must be a positive number of days"),
			validation.Min(1).Error("borrow period must be a positive number of days"),
		),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal amount")
	}
	if d.IsNegative() {
		return errors.New("fine per day must not be negative")
	}
	return nil
}

// UpdateSettingsRequest - PUT /v1/settings, các field nil giữ nguyên giá trị cũ
type UpdateSettingsRequest struct {
	FinePerDay       *decimal.Decimal `json:"finePerDay,omitempty"`
	Currency         *string          `json:"currency,omitempty"`
	BorrowPeriodDays *int             `json:"borrowPeriodDays,omitempty"`
}

// Apply trả về bản copy của current với các field được set trong request
func (r UpdateSettingsRequest) Apply(current LibrarySettings) LibrarySettings {
	next := current
	if r.FinePerDay != nil {
		next.FinePerDay = *r.FinePerDay
	}
	if r.Currency != nil {
		next.Currency = *r.Currency
	}
	if r.BorrowPeriodDays != nil {
		next.BorrowPeriodDays = *r.BorrowPeriodDays
	}
	return next
}

// SettingsResponse bổ sung chuỗi hiển thị cho frontend
type SettingsResponse struct {
	LibrarySettings
	FinePerDayFormatted string `json:"finePerDayFormatted"`
}
