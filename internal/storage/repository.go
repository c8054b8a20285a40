// Package storage owns the expenses table. Every operation is a single
// statement; the sqlite engine serializes concurrent writers.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kharcha/internal/core"
	applog "kharcha/internal/log"

	_ "modernc.org/sqlite"
)

// createdAtLayout keeps timestamps lexicographically sortable in sqlite.
const createdAtLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateExpense inserts a row and re-reads it by the assigned id so the
// caller gets the canonical record, timestamp included. The repository,
// not the caller, assigns created_at.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error) {
	createdAt := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (amount, currency, category, description, merchant, original_input, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Amount, e.Currency, e.Category, e.Description, nullable(e.Merchant), e.OriginalInput,
		createdAt.Format(createdAtLayout),
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	created, err := r.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("read back expense %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Expense saved",
		applog.FieldExpenseID, created.ID,
		applog.FieldAmount, created.Amount,
		applog.FieldCurrency, created.Currency,
		applog.FieldCategory, created.Category)

	return created, nil
}

// GetExpense retrieves a single expense by id.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, amount, currency, category, description, merchant, original_input, created_at
		FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return e, nil
}

// ListExpenses returns every expense, newest first. A full scan is fine at
// single-user scale.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, currency, category, description, merchant, original_input, created_at
		FROM expenses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes a row by id and reports whether one existed.
// Deleting a missing id is not an error.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if affected > 0 {
		slog.InfoContext(ctx, "Expense deleted", applog.FieldExpenseID, id)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		merchant  sql.NullString
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.Amount, &e.Currency, &e.Category, &e.Description,
		&merchant, &e.OriginalInput, &createdAt); err != nil {
		return core.Expense{}, err
	}

	if merchant.Valid {
		e.Merchant = &merchant.String
	}

	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = ts

	return e, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
