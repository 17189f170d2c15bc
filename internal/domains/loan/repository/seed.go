package repository

import (
	"time"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/loan/model"

	"github.com/shopspring/decimal"
)

// SeedLoans builds the demo loan list relative to now, so the dashboard
// always has something due today, due tomorrow, overdue, returned and lost.
// Loans whose book id is missing from books are skipped.
func SeedLoans(now time.Time, books []catalogModel.Book) []model.LoanRecord {
	byID := make(map[string]catalogModel.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	days := func(n int) time.Time { return now.AddDate(0, 0, n) }

	specs := []struct {
		id, bookID, name, studentID string
		borrowOffset, dueOffset     int
		returnOffset                *int
		status                      model.Status
		fine                        string
	}{
		{"BB001", "1", "Aarav Sharma", "CS2021001", -13, 1, nil, model.StatusBorrowed, "0"},
		{"BB002", "3", "Priya Patel", "EC2021045", -14, 0, nil, model.StatusBorrowed, "0"},
		{"BB003", "2", "Rohan Gupta", "CS2022012", -20, -6, nil, model.StatusOverdue, "0"},
		{"BB004", "4", "Ananya Iyer", "EE2020033", -30, -16, intPtr(-18), model.StatusReturned, "0"},
		{"BB005", "5", "Vikram Singh", "CE2021078", -40, -26, nil, model.StatusLost, "110.00"},
		{"BB006", "6", "Meera Nair", "ME2022009", -3, 11, nil, model.StatusBorrowed, "0"},
		{"BB007", "8", "Kabir Rao", "CS2020101", -17, -3, nil, model.StatusBorrowed, "0"},
	}

	out := make([]model.LoanRecord, 0, len(specs))
	for _, s := range specs {
		book, ok := byID[s.bookID]
		if !ok {
			continue
		}
		rec := model.LoanRecord{
			ID:           s.id,
			BookID:       book.ID,
			Book:         book,
			BorrowerName: s.name,
			BorrowerID:   s.studentID,
			BorrowDate:   days(s.borrowOffset),
			DueDate:      days(s.dueOffset),
			Status:       s.status,
			FineAmount:   decimal.RequireFromString(s.fine),
		}
		if s.returnOffset != nil {
			t := days(*s.returnOffset)
			rec.ReturnDate = &t
		}
		out = append(out, rec)
	}
	return out
}

func intPtr(v int) *int { return &v }
