package model

import (
	"strings"
	"time"

	catalogModel "library-backend/internal/domains/catalog/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Status của loan record.
//
// Stored statuses are borrowed, returned and lost. Overdue is derived at read
// time from the due date; a record is never written with StatusOverdue.
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
	StatusLost     Status = "lost"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBorrowed, StatusReturned, StatusOverdue, StatusLost:
		return true
	}
	return false
}

// IsTerminal: returned và lost không chuyển tiếp được nữa
func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusLost
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a query value; empty string is allowed and means "no filter".
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", nil
	}
	s := Status(strings.ToLower(raw))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// LoanRecord (borrowed book) - liên kết giữa book và người mượn
type LoanRecord struct {
	ID           string            `json:"id" db:"id"`
	BookID       string            `json:"bookId" db:"book_id"`
	Book         catalogModel.Book `json:"book"`
	BorrowerName string            `json:"borrowerName" db:"borrower_name"`
	BorrowerID   string            `json:"borrowerId" db:"borrower_id"`
	BorrowDate   time.Time         `json:"borrowDate" db:"borrow_date"`
	DueDate      time.Time         `json:"dueDate" db:"due_date"`
	ReturnDate   *time.Time        `json:"returnDate,omitempty" db:"return_date"`
	Status       Status            `json:"status" db:"status"`
	// FineAmount is frozen when the record reaches a terminal status
	// (fine at return, replacement cost at loss). Zero while active.
	FineAmount decimal.Decimal `json:"fineAmount" db:"fine_amount"`
}

// Normalize folds a stored "overdue" into "borrowed" and clears any fine
// carried by a non-terminal record.
func (r *LoanRecord) Normalize() {
	if r.Status == StatusOverdue || r.Status == "" {
		r.Status = StatusBorrowed
	}
	if !r.Status.IsTerminal() {
		r.FineAmount = decimal.Zero
	}
	if r.BookID == "" {
		r.BookID = r.Book.ID
	}
}

// LoanView là record kèm các giá trị dẫn xuất tại thời điểm "now"
type LoanView struct {
	LoanRecord
	EffectiveStatus      Status          `json:"effectiveStatus"`
	IsOverdueNow         bool            `json:"isOverdueNow"`
	IsDueToday           bool            `json:"isDueToday"`
	IsDueTomorrow        bool            `json:"isDueTomorrow"`
	DaysUntilDue         int             `json:"daysUntilDue"`
	CurrentFine          decimal.Decimal `json:"currentFine"`
	CurrentFineFormatted string          `json:"currentFineFormatted"`
}

// Statistics - số liệu tổng hợp cho dashboard mượn sách
type Statistics struct {
	ActiveCount             int             `json:"activeCount"`
	OverdueCount            int             `json:"overdueCount"`
	LostCount               int             `json:"lostCount"`
	DueSoonCount            int             `json:"dueSoonCount"`
	TotalFines              decimal.Decimal `json:"totalFines"`
	TotalLostValue          decimal.Decimal `json:"totalLostValue"`
	TotalFinesFormatted     string          `json:"totalFinesFormatted"`
	TotalLostValueFormatted string          `json:"totalLostValueFormatted"`
}

// BorrowRequest - POST /v1/loans
type BorrowRequest struct {
	BookID       string `json:"bookId"`
	BorrowerName string `json:"borrowerName"`
	BorrowerID   string `json:"borrowerId"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book id is required")),
		validation.Field(&r.BorrowerName,
			validation.Required.Error("borrower name is required"),
			validation.RuneLength(1, 200),
		),
		validation.Field(&r.BorrowerID,
			validation.Required.Error("borrower id is required"),
			validation.RuneLength(1, 100),
		),
	)
}
