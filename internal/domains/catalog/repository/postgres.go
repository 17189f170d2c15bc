package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-backend/internal/domains/catalog/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"
	tableBooks      = "books"
	colPosition     = "position"
)

var bookColumns = []interface{}{
	"id", "title", "author", "isbn", "total_copies", "available_copies",
	"shelf_location", "cover_color", "replacement_cost", "department",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	return r.SearchBooks(ctx, "", model.AvailabilityAll)
}

func (r *postgresRepository) SearchBooks(ctx context.Context, term string, availability model.Availability) ([]model.Book, error) {
	query, args, err := BuildSearchQuery(term, availability)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get book query: %w", err)
	}

	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

// BuildSearchQuery renders the same predicate as model.Search in SQL.
func BuildSearchQuery(term string, availability model.Availability) (string, []interface{}, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableBooks).
		Select(bookColumns...).
		Order(goqu.I(colPosition).Asc())

	if term != "" {
		pattern := "%" + escapeLike(term) + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
			goqu.C("isbn").Like(pattern),
			goqu.C("shelf_location").ILike(pattern),
		))
	}

	switch availability {
	case model.AvailabilityAll:
	case model.AvailabilityAvailable:
		ds = ds.Where(goqu.C("available_copies").Gt(0))
	case model.AvailabilityUnavailable:
		ds = ds.Where(goqu.C("available_copies").Eq(0))
	default:
		return "", nil, model.ErrInvalidAvailability
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build search query: %w", err)
	}
	return query, args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var department string
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies,
		&b.ShelfLocation, &b.CoverColor, &b.ReplacementCost, &department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	b.Department = model.Department(department)
	return &b, nil
}
