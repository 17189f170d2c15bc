package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	catalogRepo "library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func newSeededRepo(t *testing.T) Repository {
	t.Helper()
	return NewMemoryRepository(SeedLoans(testNow, catalogRepo.SeedBooks()))
}

func TestNewMemoryRepository_NormalizesStoredStatus(t *testing.T) {
	repo := NewMemoryRepository([]model.LoanRecord{
		{ID: "A", BookID: "1", Status: model.StatusOverdue, FineAmount: decimal.RequireFromString("12.5")},
		{ID: "B", BookID: "1", Status: model.StatusLost, FineAmount: decimal.RequireFromString("45")},
	})

	a, err := repo.GetLoanByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, model.StatusBorrowed, a.Status)
	assert.True(t, a.FineAmount.IsZero())

	b, err := repo.GetLoanByID(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, model.StatusLost, b.Status)
	assert.Equal(t, "45.00", b.FineAmount.StringFixed(2))
}

func TestListLoans_PreservesInsertionOrder(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateLoan(ctx, &model.LoanRecord{ID: "NEW", BookID: "1", Status: model.StatusBorrowed}))
	loans, err := repo.ListLoans(ctx)

	require.NoError(t, err)
	require.NotEmpty(t, loans)
	assert.Equal(t, "BB001", loans[0].ID)
	assert.Equal(t, "NEW", loans[len(loans)-1].ID)
}

func TestCreateLoan_DuplicateID(t *testing.T) {
	repo := newSeededRepo(t)

	err := repo.CreateLoan(context.Background(), &model.LoanRecord{ID: "BB001"})

	assert.ErrorIs(t, err, model.ErrLoanAlreadyExists)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestUpdateLoan_UnknownID(t *testing.T) {
	repo := newSeededRepo(t)
	called := false

	_, err := repo.UpdateLoan(context.Background(), "nope", func(*model.LoanRecord) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, model.ErrLoanNotFound)
	assert.False(t, called)
}

func TestUpdateLoan_ErrorDiscardsChanges(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()
	before, err := repo.ListLoans(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.UpdateLoan(ctx, "BB001", func(rec *model.LoanRecord) error {
		rec.Status = model.StatusLost
		rec.BorrowerName = "changed"
		return boom
	})

	assert.ErrorIs(t, err, boom)
	after, err := repo.ListLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGetLoanByID_ReturnsCopy(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	rec, err := repo.GetLoanByID(ctx, "BB004")
	require.NoError(t, err)
	require.NotNil(t, rec.ReturnDate)
	*rec.ReturnDate = time.Time{}
	rec.BorrowerName = "changed"

	again, err := repo.GetLoanByID(ctx, "BB004")
	require.NoError(t, err)
	assert.False(t, again.ReturnDate.IsZero())
	assert.NotEqual(t, "changed", again.BorrowerName)
}

func TestUpdateLoan_SerializesConcurrentTransitions(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	var ok int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateLoan(ctx, "BB001", func(rec *model.LoanRecord) error {
				if rec.Status.IsTerminal() {
					return model.ErrLoanAlreadyReturned
				}
				rec.Status = model.StatusReturned
				return nil
			})
			if err == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
}

func TestSeedLoans_SkipsUnknownBooks(t *testing.T) {
	loans := SeedLoans(testNow, nil)

	assert.Empty(t, loans)
}
