package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, description, price, stock, sales, created_at, updated_at"

// BookPG implements catalog.Store on Postgres.
type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout}
}

func (r *BookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// wrapStoreErr tags driver failures (connectivity, timeout) so callers can
// distinguish them from business outcomes.
func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
}

func (r *BookPG) Insert(ctx context.Context, b catalog.Book) (string, error) {
	const sql = `
		INSERT INTO books (id, title, author, description, price, stock, sales, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id`

	id := catalog.NewID()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, sql, id, b.Title, b.Author, b.Description, b.Price, b.Stock, b.Sales).Scan(&id); err != nil {
		return "", wrapStoreErr(err)
	}
	return id, nil
}

func (r *BookPG) FindByID(ctx context.Context, id string) (catalog.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE id = $1", bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Book{}, catalog.ErrNotFound
		}
		return catalog.Book{}, wrapStoreErr(err)
	}
	return b, nil
}

// buildSearchWhere compiles the optional search filters into a parameterized
// WHERE clause. Title and author are case-insensitive substring matches,
// price bounds are inclusive, all terms are ANDed. No filters yields "1=1".
func buildSearchWhere(f catalog.SearchFilters) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if f.Title != "" {
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", argn))
		args = append(args, "%"+f.Title+"%")
		argn++
	}

	if f.Author != "" {
		clauses = append(clauses, fmt.Sprintf("author ILIKE $%d", argn))
		args = append(args, "%"+f.Author+"%")
		argn++
	}

	if f.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", argn))
		args = append(args, *f.MinPrice)
		argn++
	}

	if f.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", argn))
		args = append(args, *f.MaxPrice)
		argn++
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *BookPG) Search(ctx context.Context, f catalog.SearchFilters) ([]catalog.Book, error) {
	where, args := buildSearchWhere(f)
	query := fmt.Sprintf("SELECT %s FROM books %s", bookColumns, where)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return books, nil
}

func (r *BookPG) Update(ctx context.Context, id string, p catalog.Patch) (catalog.Book, error) {
	sets := []string{}
	args := []any{}
	argn := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Author != nil {
		set("author", *p.Author)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Stock != nil {
		set("stock", *p.Stock)
	}
	if p.Sales != nil {
		set("sales", *p.Sales)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), argn, bookColumns)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Book{}, catalog.ErrNotFound
		}
		return catalog.Book{}, wrapStoreErr(err)
	}
	return b, nil
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return wrapStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Aggregate runs the three report facets inside one repeatable-read read-only
// transaction so they all observe the same snapshot.
func (r *BookPG) Aggregate(ctx context.Context, rankBy catalog.RankField) (catalog.Report, error) {
	rankColumn := "sales"
	if rankBy == catalog.RankByStock {
		rankColumn = "stock"
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(timeoutCtx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}
	defer tx.Rollback(timeoutCtx)

	var report catalog.Report
	if err := tx.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM books").Scan(&report.TotalBooks); err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}

	bestSQL := fmt.Sprintf("SELECT %s FROM books ORDER BY %s DESC LIMIT 5", bookColumns, rankColumn)
	rows, err := tx.Query(timeoutCtx, bestSQL)
	if err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}
	report.BestsellingBooks, err = collectBooks(rows)
	rows.Close()
	if err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}

	const authorsSQL = `
		SELECT author, COALESCE(SUM(stock), 0)
		FROM books
		GROUP BY author
		ORDER BY 2 DESC
		LIMIT 5`
	rows, err = tx.Query(timeoutCtx, authorsSQL)
	if err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}
	for rows.Next() {
		var a catalog.AuthorRank
		if err := rows.Scan(&a.Author, &a.TotalStock); err != nil {
			rows.Close()
			return catalog.Report{}, wrapStoreErr(err)
		}
		report.TopAuthors = append(report.TopAuthors, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return catalog.Report{}, wrapStoreErr(err)
	}
	return report, nil
}

func scanBook(row pgx.Row) (catalog.Book, error) {
	var b catalog.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.Stock, &b.Sales,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func collectBooks(rows pgx.Rows) ([]catalog.Book, error) {
	var out []catalog.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
