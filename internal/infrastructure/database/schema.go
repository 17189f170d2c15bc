package database

import (
	"context"
	"fmt"

	catalogModel "library-backend/internal/domains/catalog/model"
	loanModel "library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS books (
    id               TEXT PRIMARY KEY,
    position         SERIAL,
    title            TEXT NOT NULL,
    author           TEXT NOT NULL,
    isbn             TEXT NOT NULL,
    total_copies     INTEGER NOT NULL CHECK (total_copies >= 0),
    available_copies INTEGER NOT NULL CHECK (available_copies >= 0 AND available_copies <= total_copies),
    shelf_location   TEXT NOT NULL,
    cover_color      TEXT NOT NULL DEFAULT '',
    replacement_cost NUMERIC(12,2) NOT NULL CHECK (replacement_cost >= 0),
    department       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id            TEXT PRIMARY KEY,
    position      BIGSERIAL,
    book_id       TEXT NOT NULL REFERENCES books(id),
    borrower_name TEXT NOT NULL,
    borrower_id   TEXT NOT NULL,
    borrow_date   TIMESTAMPTZ NOT NULL,
    due_date      TIMESTAMPTZ NOT NULL,
    return_date   TIMESTAMPTZ,
    status        TEXT NOT NULL CHECK (status IN ('borrowed', 'returned', 'lost')),
    fine_amount   NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status);
CREATE INDEX IF NOT EXISTS idx_loans_due_date ON loans(due_date);
`

// EnsureSchema tạo bảng books/loans nếu chưa tồn tại
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed inserts books and loans in one transaction. Existing ids are left
// untouched so restarting the api never duplicates the demo data.
func (db *PostgresDB) Seed(ctx context.Context, books []catalogModel.Book, loans []loanModel.LoanRecord) error {
	return database.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, b := range books {
			query, args, err := goqu.Dialect("postgres").
				Insert("books").
				Rows(goqu.Record{
					"id":               b.ID,
					"title":            b.Title,
					"author":           b.Author,
					"isbn":             b.ISBN,
					"total_copies":     b.TotalCopies,
					"available_copies": b.AvailableCopies,
					"shelf_location":   b.ShelfLocation,
					"cover_color":      b.CoverColor,
					"replacement_cost": b.ReplacementCost,
					"department":       string(b.Department),
				}).
				OnConflict(goqu.DoNothing()).
				Prepared(true).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build seed book query: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("seed book %s: %w", b.ID, err)
			}
		}

		for _, l := range loans {
			rec := l
			rec.Normalize()
			query, args, err := goqu.Dialect("postgres").
				Insert("loans").
				Rows(goqu.Record{
					"id":            rec.ID,
					"book_id":       rec.BookID,
					"borrower_name": rec.BorrowerName,
					"borrower_id":   rec.BorrowerID,
					"borrow_date":   rec.BorrowDate,
					"due_date":      rec.DueDate,
					"return_date":   rec.ReturnDate,
					"status":        string(rec.Status),
					"fine_amount":   rec.FineAmount,
				}).
				OnConflict(goqu.DoNothing()).
				Prepared(true).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build seed loan query: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("seed loan %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}
