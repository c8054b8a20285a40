package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kharcha/internal/ai"
	"kharcha/internal/core"
	applog "kharcha/internal/log"
)

// ExpenseService orchestrates extraction and persistence. Gateway errors
// propagate unchanged; there is no retry or fallback categorization.
type ExpenseService struct {
	store     ExpenseStore
	extractor Extractor
}

func NewExpenseService(store ExpenseStore, extractor Extractor) *ExpenseService {
	return &ExpenseService{
		store:     store,
		extractor: extractor,
	}
}

// AddFromText extracts structured fields from text, merges them with the
// verbatim input and persists the result.
func (s *ExpenseService) AddFromText(ctx context.Context, text string) (core.Expense, error) {
	if strings.TrimSpace(text) == "" {
		return core.Expense{}, ai.ErrEmptyInput
	}

	parsed, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return core.Expense{}, err
	}

	expense := parsed.Merge(text)
	if err := expense.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}

	created, err := s.store.CreateExpense(ctx, expense)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense added from text",
		applog.FieldExpenseID, created.ID,
		applog.FieldCategory, created.Category,
		applog.FieldAmount, created.Amount)

	return created, nil
}

// List returns all expenses, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Remove deletes an expense by id. Removing a non-existent id reports
// false, not an error.
func (s *ExpenseService) Remove(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return deleted, nil
}
