package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/domains/loan/model"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Loans"

var exportHeaders = []string{
	"Loan ID",
	"Book ID",
	"Title",
	"Author",
	"Borrower",
	"Student ID",
	"Borrow Date",
	"Due Date",
	"Return Date",
	"Status",
	"Days Until Due",
	"Fine",
}

// ExportExcel - một dòng cho mỗi loan, status và fine tính tại now
func (s *LoanService) ExportExcel(ctx context.Context, now time.Time) (*excelize.File, error) {
	views, err := s.ListAll(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	f, err := buildLoansExcelFile(views)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildLoansExcelFile(views []model.LoanView) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	// Row 1: header
	for colIdx, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheetName, "A1", lastCell, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	// Data rows từ row 2
	for i, v := range views {
		rowNum := i + 2

		var returnDate interface{}
		if v.ReturnDate != nil {
			returnDate = v.ReturnDate.Format(time.DateOnly)
		}

		values := []interface{}{
			v.ID,
			v.BookID,
			v.Book.Title,
			v.Book.Author,
			v.BorrowerName,
			v.BorrowerID,
			v.BorrowDate.Format(time.DateOnly),
			v.DueDate.Format(time.DateOnly),
			returnDate,
			v.EffectiveStatus.String(),
			v.DaysUntilDue,
			v.CurrentFine.InexactFloat64(),
		}

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheetName, start, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
