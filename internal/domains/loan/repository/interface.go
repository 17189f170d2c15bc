package repository

import (
	"context"

	"library-backend/internal/domains/loan/model"
)

// MutateFunc được gọi với bản copy của record đã lock. Trả error để huỷ thay đổi.
type MutateFunc func(record *model.LoanRecord) error

type Repository interface {
	// ListLoans trả về toàn bộ record theo thứ tự lưu trữ (insertion order)
	ListLoans(ctx context.Context) ([]model.LoanRecord, error)
	GetLoanByID(ctx context.Context, id string) (*model.LoanRecord, error)
	CreateLoan(ctx context.Context, record *model.LoanRecord) error
	// UpdateLoan applies mutate atomically. The store is unchanged when
	// mutate returns an error or the id is unknown.
	UpdateLoan(ctx context.Context, id string, mutate MutateFunc) (*model.LoanRecord, error)
}
