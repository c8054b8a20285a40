package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills & Utilities"
	CategoryHealth        = "Health"
	CategoryTravel        = "Travel"
	CategoryOther         = "Other"
)

// DefaultCurrency is used when the extraction does not name one explicitly.
const DefaultCurrency = "INR"

type (
	// Expense is the persisted record. ID and CreatedAt are assigned by the
	// store on insertion and never change afterwards.
	Expense struct {
		ID            int64     `json:"id"`
		Amount        float64   `json:"amount"`
		Currency      string    `json:"currency"`
		Category      string    `json:"category"`
		Description   string    `json:"description"`
		Merchant      *string   `json:"merchant"`
		OriginalInput string    `json:"original_input"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// ParsedExpense is the transient output of the inference gateway. It only
	// exists to be merged with the verbatim input into an Expense.
	ParsedExpense struct {
		Amount      float64
		Currency    string
		Category    string
		Description string
		Merchant    *string
	}

	// NewExpense carries everything the store needs to insert a row.
	NewExpense struct {
		Amount        float64
		Currency      string
		Category      string
		Description   string
		Merchant      *string
		OriginalInput string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// Categories returns the closed category set, catch-all last.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealth,
		CategoryTravel,
		CategoryOther,
	}
}

// IsValidCategory reports whether name belongs to the closed category set.
func IsValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

func (e NewExpense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(e.Currency) != 3 {
		return ErrInvalidCurrency
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Merge combines an extraction result with the verbatim user input.
func (p ParsedExpense) Merge(originalInput string) NewExpense {
	return NewExpense{
		Amount:        p.Amount,
		Currency:      p.Currency,
		Category:      p.Category,
		Description:   p.Description,
		Merchant:      p.Merchant,
		OriginalInput: originalInput,
	}
}
