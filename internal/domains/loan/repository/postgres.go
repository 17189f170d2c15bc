package repository

import (
	"context"
	"errors"
	"fmt"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"
	tableLoans      = "loans"
	tableBooks      = "books"

	pgUniqueViolation = "23505"
)

var loanSelectColumns = []interface{}{
	goqu.I("l.id"), goqu.I("l.book_id"), goqu.I("l.borrower_name"), goqu.I("l.borrower_id"),
	goqu.I("l.borrow_date"), goqu.I("l.due_date"), goqu.I("l.return_date"),
	goqu.I("l.status"), goqu.I("l.fine_amount"),
	goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.isbn"), goqu.I("b.total_copies"),
	goqu.I("b.available_copies"), goqu.I("b.shelf_location"), goqu.I("b.cover_color"),
	goqu.I("b.replacement_cost"), goqu.I("b.department"),
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func baseSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T(tableLoans).As("l")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("l.book_id").Eq(goqu.I("b.id")))).
		Select(loanSelectColumns...)
}

func (r *postgresRepository) ListLoans(ctx context.Context) ([]model.LoanRecord, error) {
	query, args, err := baseSelect().
		Order(goqu.I("l.position").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list loans query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	records := make([]model.LoanRecord, 0)
	for rows.Next() {
		rec, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return records, nil
}

func (r *postgresRepository) GetLoanByID(ctx context.Context, id string) (*model.LoanRecord, error) {
	return getLoan(ctx, r.pool, id, false)
}

func (r *postgresRepository) CreateLoan(ctx context.Context, record *model.LoanRecord) error {
	rec := *record
	rec.Normalize()

	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(tableLoans).
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
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert loan query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrLoanAlreadyExists
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// UpdateLoan: SELECT ... FOR UPDATE + mutate + UPDATE trong cùng transaction
func (r *postgresRepository) UpdateLoan(ctx context.Context, id string, mutate MutateFunc) (*model.LoanRecord, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.LoanRecord, error) {
		rec, err := getLoan(ctx, tx, id, true)
		if err != nil {
			return nil, err
		}

		if err := mutate(rec); err != nil {
			return nil, err
		}

		query, args, err := goqu.Dialect(dialectPostgres).
			Update(tableLoans).
			Set(goqu.Record{
				"return_date": rec.ReturnDate,
				"status":      string(rec.Status),
				"fine_amount": rec.FineAmount,
			}).
			Where(goqu.C("id").Eq(id)).
			Prepared(true).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build update loan query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("update loan: %w", err)
		}
		rec.ID = id
		return rec, nil
	})
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getLoan(ctx context.Context, q queryRower, id string, forUpdate bool) (*model.LoanRecord, error) {
	ds := baseSelect().Where(goqu.I("l.id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait, goqu.T("l"))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get loan query: %w", err)
	}

	rec, err := scanLoan(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, err
	}
	return rec, nil
}

func scanLoan(row pgx.Row) (*model.LoanRecord, error) {
	var rec model.LoanRecord
	var status, department string
	err := row.Scan(
		&rec.ID, &rec.BookID, &rec.BorrowerName, &rec.BorrowerID,
		&rec.BorrowDate, &rec.DueDate, &rec.ReturnDate,
		&status, &rec.FineAmount,
		&rec.Book.Title, &rec.Book.Author, &rec.Book.ISBN, &rec.Book.TotalCopies,
		&rec.Book.AvailableCopies, &rec.Book.ShelfLocation, &rec.Book.CoverColor,
		&rec.Book.ReplacementCost, &department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan loan: %w", err)
	}
	rec.Status = model.Status(status)
	rec.Book.ID = rec.BookID
	rec.Book.Department = catalogModel.Department(department)
	rec.Normalize()
	return &rec, nil
}
