package service

import (
	"context"
	"time"

	"library-backend/internal/domains/loan/model"

	"github.com/xuri/excelize/v2"
)

// ServiceInterface: mọi thao tác nhận "now" từ caller, service không tự đọc clock
type ServiceInterface interface {
	ListAll(ctx context.Context, now time.Time) ([]model.LoanView, error)
	// FilterByStatus classifies by effective status at now; empty status returns all.
	FilterByStatus(ctx context.Context, status model.Status, now time.Time) ([]model.LoanView, error)
	Get(ctx context.Context, id string, now time.Time) (*model.LoanView, error)

	MarkReturned(ctx context.Context, id string, now time.Time) (*model.LoanView, error)
	MarkLost(ctx context.Context, id string, now time.Time) (*model.LoanView, error)
	Borrow(ctx context.Context, req model.BorrowRequest, now time.Time) (*model.LoanView, error)

	AggregateStatistics(ctx context.Context, now time.Time) (*model.Statistics, error)
	DueSoon(ctx context.Context, now time.Time) ([]model.LoanView, error)

	ExportExcel(ctx context.Context, now time.Time) (*excelize.File, error)
}
