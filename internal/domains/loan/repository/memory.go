package repository

import (
	"context"
	"sync"

	"library-backend/internal/domains/loan/model"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records []model.LoanRecord
	byID    map[string]int
}

// NewMemoryRepository seeds the store with records (copied, normalized).
// Duplicate ids keep the first occurrence.
func NewMemoryRepository(records []model.LoanRecord) Repository {
	r := &memoryRepository{
		records: make([]model.LoanRecord, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i := range records {
		rec := cloneRecord(records[i])
		rec.Normalize()
		if _, exists := r.byID[rec.ID]; exists {
			continue
		}
		r.byID[rec.ID] = len(r.records)
		r.records = append(r.records, rec)
	}
	return r
}

func (r *memoryRepository) ListLoans(ctx context.Context) ([]model.LoanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.LoanRecord, len(r.records))
	for i := range r.records {
		out[i] = cloneRecord(r.records[i])
	}
	return out, nil
}

func (r *memoryRepository) GetLoanByID(ctx context.Context, id string) (*model.LoanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, model.ErrLoanNotFound
	}
	rec := cloneRecord(r.records[idx])
	return &rec, nil
}

func (r *memoryRepository) CreateLoan(ctx context.Context, record *model.LoanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[record.ID]; exists {
		return model.ErrLoanAlreadyExists
	}
	rec := cloneRecord(*record)
	rec.Normalize()
	r.byID[rec.ID] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryRepository) UpdateLoan(ctx context.Context, id string, mutate MutateFunc) (*model.LoanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, model.ErrLoanNotFound
	}

	// mutate trên bản copy, chỉ commit khi không lỗi
	working := cloneRecord(r.records[idx])
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.ID = id
	r.records[idx] = working

	out := cloneRecord(working)
	return &out, nil
}

// cloneRecord deep-copies the ReturnDate pointer so callers never alias store state.
func cloneRecord(rec model.LoanRecord) model.LoanRecord {
	if rec.ReturnDate != nil {
		t := *rec.ReturnDate
		rec.ReturnDate = &t
	}
	return rec
}
