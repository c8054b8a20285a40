package services

import (
	"context"

	"kharcha/internal/core"
)

// Ports for outbound adapters.
type (
	// Extractor turns free text into a structured expense via the
	// inference provider.
	Extractor interface {
		Extract(ctx context.Context, text string) (core.ParsedExpense, error)
	}

	// ExpenseStore is the persistence port backed by sqlite.
	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		DeleteExpense(ctx context.Context, id int64) (bool, error)
	}
)
