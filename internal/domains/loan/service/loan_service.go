package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	catalogService "library-backend/internal/domains/catalog/service"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/policy"
	"library-backend/internal/domains/loan/repository"
	settingsService "library-backend/internal/domains/settings/service"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
)

type LoanService struct {
	repo     repository.Repository
	catalog  catalogService.ServiceInterface
	settings settingsService.Service
}

func NewService(
	repo repository.Repository,
	catalog catalogService.ServiceInterface,
	settings settingsService.Service,
) ServiceInterface {
	return &LoanService{
		repo:     repo,
		catalog:  catalog,
		settings: settings,
	}
}

// =====================================================================
// QUERIES
// =====================================================================

func (s *LoanService) ListAll(ctx context.Context, now time.Time) ([]model.LoanView, error) {
	return s.FilterByStatus(ctx, "", now)
}

func (s *LoanService) FilterByStatus(ctx context.Context, status model.Status, now time.Time) ([]model.LoanView, error) {
	if status != "" && !status.IsValid() {
		return nil, model.ErrInvalidStatus
	}

	records, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	views := make([]model.LoanView, 0, len(records))
	for _, rec := range records {
		view := BuildView(rec, now, settings)
		if status != "" && view.EffectiveStatus != status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *LoanService) Get(ctx context.Context, id string, now time.Time) (*model.LoanView, error) {
	rec, err := s.repo.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *rec, now)
}

// DueSoon không cache: kết quả phụ thuộc vào now
func (s *LoanService) DueSoon(ctx context.Context, now time.Time) ([]model.LoanView, error) {
	active, err := s.FilterByStatus(ctx, model.StatusBorrowed, now)
	if err != nil {
		return nil, err
	}

	out := make([]model.LoanView, 0)
	for _, v := range active {
		if v.IsDueToday || v.IsDueTomorrow {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *LoanService) AggregateStatistics(ctx context.Context, now time.Time) (*model.Statistics, error) {
	records, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	stats := ComputeStatistics(records, now, settings)
	return &stats, nil
}

// =====================================================================
// STATE TRANSITIONS
// =====================================================================

// MarkReturned: borrowed → returned, fine tại thời điểm trả được chốt lại
func (s *LoanService) MarkReturned(ctx context.Context, id string, now time.Time) (*model.LoanView, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	updated, err := s.repo.UpdateLoan(ctx, id, func(rec *model.LoanRecord) error {
		if err := ensureActive(rec); err != nil {
			return err
		}
		returnedAt := now
		rec.Status = model.StatusReturned
		rec.ReturnDate = &returnedAt
		rec.FineAmount = policy.CalculateFine(rec.DueDate, now, settings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Loan returned", map[string]interface{}{
		"loan_id":     updated.ID,
		"book_id":     updated.BookID,
		"borrower_id": updated.BorrowerID,
		"fine":        updated.FineAmount.StringFixed(2),
	})

	view := BuildView(*updated, now, settings)
	return &view, nil
}

// MarkLost: borrowed → lost, fineAmount = replacement cost của sách
func (s *LoanService) MarkLost(ctx context.Context, id string, now time.Time) (*model.LoanView, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	updated, err := s.repo.UpdateLoan(ctx, id, func(rec *model.LoanRecord) error {
		if err := ensureActive(rec); err != nil {
			return err
		}
		rec.Status = model.StatusLost
		rec.FineAmount = rec.Book.ReplacementCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Warn("Loan marked lost", map[string]interface{}{
		"loan_id":          updated.ID,
		"book_id":          updated.BookID,
		"borrower_id":      updated.BorrowerID,
		"replacement_cost": updated.FineAmount.StringFixed(2),
	})

	view := BuildView(*updated, now, settings)
	return &view, nil
}

// Borrow tạo loan mới cho một sách trong catalog. Số bản còn lại không bị trừ.
func (s *LoanService) Borrow(ctx context.Context, req model.BorrowRequest, now time.Time) (*model.LoanView, error) {
	req.BookID = strings.TrimSpace(req.BookID)
	req.BorrowerName = strings.TrimSpace(req.BorrowerName)
	req.BorrowerID = strings.TrimSpace(req.BorrowerID)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidBorrowInput, err)
	}

	book, err := s.catalog.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.IsAvailable() {
		return nil, model.ErrBookUnavailable
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	rec := model.LoanRecord{
		ID:           uuid.NewString(),
		BookID:       book.ID,
		Book:         *book,
		BorrowerName: req.BorrowerName,
		BorrowerID:   req.BorrowerID,
		BorrowDate:   now,
		DueDate:      policy.DueDateFor(now, settings),
		Status:       model.StatusBorrowed,
	}
	if err := s.repo.CreateLoan(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	logger.Info("Loan created", map[string]interface{}{
		"loan_id":     rec.ID,
		"book_id":     rec.BookID,
		"borrower_id": rec.BorrowerID,
		"due_date":    rec.DueDate.Format(time.DateOnly),
	})

	view := BuildView(rec, now, settings)
	return &view, nil
}

// =====================================================================
// HELPERS
// =====================================================================

func ensureActive(rec *model.LoanRecord) error {
	switch rec.Status {
	case model.StatusReturned:
		return model.ErrLoanAlreadyReturned
	case model.StatusLost:
		return model.ErrLoanAlreadyLost
	}
	return nil
}

func (s *LoanService) view(ctx context.Context, rec model.LoanRecord, now time.Time) (*model.LoanView, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	v := BuildView(rec, now, settings)
	return &v, nil
}
