package model

import (
	"github.com/shopspring/decimal"
)

// Department phân loại sách theo khoa (closed enum)
type Department string

const (
	DepartmentComputerScience Department = "Computer Science & IT"
	DepartmentElectronics     Department = "Electronics & ECE"
	DepartmentElectrical      Department = "Electrical"
	DepartmentCivil           Department = "Civil"
	DepartmentMechanical      Department = "Mechanical"
	DepartmentMathematics     Department = "Mathematics"
)

func (d Department) IsValid() bool {
	switch d {
	case DepartmentComputerScience, DepartmentElectronics, DepartmentElectrical,
		DepartmentCivil, DepartmentMechanical, DepartmentMathematics:
		return true
	}
	return false
}

func (d Department) String() string {
	return string(d)
}

// Book represents một đầu sách trong catalog. Seeded at startup, never
// mutated by loan operations.
type Book struct {
	ID              string          `json:"id" db:"id"`
	Title           string          `json:"title" db:"title"`
	Author          string          `json:"author" db:"author"`
	ISBN            string          `json:"isbn" db:"isbn"`
	TotalCopies     int             `json:"totalCopies" db:"total_copies"`
	AvailableCopies int             `json:"availableCopies" db:"available_copies"`
	ShelfLocation   string          `json:"shelfLocation" db:"shelf_location"`
	CoverColor      string          `json:"coverColor" db:"cover_color"`
	ReplacementCost decimal.Decimal `json:"replacementCost" db:"replacement_cost"`
	Department      Department      `json:"department" db:"department"`
}

// IsAvailable: còn ít nhất một bản có thể mượn
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// Availability là filter theo tình trạng còn sách
type Availability string

const (
	AvailabilityAll         Availability = "all"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAll, AvailabilityAvailable, AvailabilityUnavailable:
		return true
	}
	return false
}

// ParseAvailability maps a query value to an Availability; empty means all.
func ParseAvailability(raw string) (Availability, error) {
	if raw == "" {
		return AvailabilityAll, nil
	}
	a := Availability(raw)
	if !a.IsValid() {
		return "", ErrInvalidAvailability
	}
	return a, nil
}

// ListBooksRequest - GET /v1/books?search=&availability=
type ListBooksRequest struct {
	Search       string
	Availability Availability
}

// CatalogStats là số liệu tổng hợp hiển thị trên trang catalog
type CatalogStats struct {
	TotalTitles     int `json:"totalTitles"`
	AvailableTitles int `json:"availableTitles"`
	TotalCopies     int `json:"totalCopies"`
	AvailableCopies int `json:"availableCopies"`
}

// ComputeStats aggregates counts over books.
func ComputeStats(books []Book) CatalogStats {
	stats := CatalogStats{TotalTitles: len(books)}
	for _, b := range books {
		if b.IsAvailable() {
			stats.AvailableTitles++
		}
		stats.TotalCopies += b.TotalCopies
		stats.AvailableCopies += b.AvailableCopies
	}
	return stats
}
