package services

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/ai"
	"kharcha/internal/core"
)

type fakeExtractor struct {
	result core.ParsedExpense
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) (core.ParsedExpense, error) {
	f.calls++
	if f.err != nil {
		return core.ParsedExpense{}, f.err
	}
	return f.result, nil
}

type fakeStore struct {
	created []core.NewExpense
	listed  []core.Expense
	err     error
	nextID  int64
}

func (f *fakeStore) CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error) {
	if f.err != nil {
		return core.Expense{}, f.err
	}
	f.created = append(f.created, e)
	f.nextID++
	return core.Expense{
		ID:            f.nextID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Category:      e.Category,
		Description:   e.Description,
		Merchant:      e.Merchant,
		OriginalInput: e.OriginalInput,
	}, nil
}

func (f *fakeStore) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed, nil
}

func (f *fakeStore) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return id == 1, nil
}

func parsedCoffee() core.ParsedExpense {
	return core.ParsedExpense{
		Amount:      250,
		Currency:    "INR",
		Category:    core.CategoryFood,
		Description: "Coffee",
	}
}

func TestAddFromText(t *testing.T) {
	extractor := &fakeExtractor{result: parsedCoffee()}
	store := &fakeStore{}
	svc := NewExpenseService(store, extractor)

	created, err := svc.AddFromText(context.Background(), "coffee 250")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected persisted record with assigned id")
	}
	if created.OriginalInput != "coffee 250" {
		t.Fatalf("original input not preserved verbatim: %q", created.OriginalInput)
	}
	if created.Amount != 250 || created.Category != core.CategoryFood {
		t.Fatalf("extraction fields not merged: %+v", created)
	}
}

func TestAddFromTextEmptyInput(t *testing.T) {
	extractor := &fakeExtractor{result: parsedCoffee()}
	svc := NewExpenseService(&fakeStore{}, extractor)

	for _, input := range []string{"", "   "} {
		_, err := svc.AddFromText(context.Background(), input)
		if !errors.Is(err, ai.ErrEmptyInput) {
			t.Fatalf("input %q: expected ErrEmptyInput, got %v", input, err)
		}
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor must not be called for empty input, got %d calls", extractor.calls)
	}
}

func TestAddFromTextGatewayErrorPropagates(t *testing.T) {
	gatewayErr := ai.ErrUnparseableInput
	svc := NewExpenseService(&fakeStore{}, &fakeExtractor{err: gatewayErr})

	_, err := svc.AddFromText(context.Background(), "hello")
	if !errors.Is(err, gatewayErr) {
		t.Fatalf("expected gateway error to propagate unchanged, got %v", err)
	}
}

func TestAddFromTextStoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	svc := NewExpenseService(&fakeStore{err: storeErr}, &fakeExtractor{result: parsedCoffee()})

	_, err := svc.AddFromText(context.Background(), "coffee 250")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if ai.IsExtractionError(err) {
		t.Fatal("store failure must not classify as an extraction error")
	}
}

func TestAddFromTextRejectsContractViolations(t *testing.T) {
	// A result that skips the category violates the extraction contract
	// shape and must not reach the store.
	bad := parsedCoffee()
	bad.Category = ""
	store := &fakeStore{}
	svc := NewExpenseService(store, &fakeExtractor{result: bad})

	_, err := svc.AddFromText(context.Background(), "coffee 250")
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("invalid record must not be persisted")
	}
}

func TestList(t *testing.T) {
	store := &fakeStore{listed: []core.Expense{{ID: 2}, {ID: 1}}}
	svc := NewExpenseService(store, &fakeExtractor{})

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("store order not preserved: %+v", list)
	}
}

func TestRemove(t *testing.T) {
	svc := NewExpenseService(&fakeStore{}, &fakeExtractor{})

	deleted, err := svc.Remove(context.Background(), 1)
	if err != nil || !deleted {
		t.Fatalf("expected true for existing id, got %v (%v)", deleted, err)
	}

	deleted, err = svc.Remove(context.Background(), 42)
	if err != nil {
		t.Fatalf("remove missing id must not error: %v", err)
	}
	if deleted {
		t.Fatal("expected false for never-inserted id")
	}
}
