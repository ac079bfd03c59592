package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budget/internal/adapter/http/dto"
	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/usecase"
)

type entryServiceStub struct {
	recordFn func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error)
	listFn   func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error)
}

func (s *entryServiceStub) RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
	return s.recordFn(ctx, input)
}

func (s *entryServiceStub) GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
	return s.listFn(ctx, input)
}

func TestEntryHandler_Create_Success(t *testing.T) {
	entry := &domain.Entry{
		ID:           "ent-1",
		AccountID:    "acc-1",
		Amount:       decimal.NewFromInt(-50),
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Category:     "food",
		CategoryType: domain.CategoryTypeExpense,
	}

	var captured usecase.RecordEntryInput
	handler := NewEntryHandler(&entryServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
			captured = input
			return entry, nil
		},
		listFn: func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{
		Amount:       "50",
		Date:         "2025-01-15",
		Category:     "food",
		CategoryType: "EXPENSE",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/entries", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountID != "acc-1" || captured.CategoryType != domain.CategoryTypeExpense {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Amount.Equal(decimal.NewFromInt(-50)) {
		t.Fatalf("expected stored amount -50, got %s", resp.Amount)
	}
}

func TestEntryHandler_Create_InsufficientFunds(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
			return nil, domain.ErrInsufficientFunds
		},
		listFn: func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{Amount: "500", Category: "rent", CategoryType: "EXPENSE"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/entries", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidCategoryType(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
			t.Fatal("RecordEntry should not be called for invalid category type")
			return nil, nil
		},
		listFn: func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{Amount: "10", Category: "misc", CategoryType: "SPLURGE"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/entries", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_AccountNotFound(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
			return nil, domain.ErrAccountNotFound
		},
		listFn: func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{Amount: "10", Category: "misc"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/missing/entries", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_ListByAccount(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*domain.Entry, error) {
			return nil, nil
		},
		listFn: func(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
			if input.AccountID != "acc-1" {
				t.Fatalf("expected account acc-1, got %s", input.AccountID)
			}
			return []*domain.Entry{
				{ID: "ent-1", AccountID: "acc-1", Amount: decimal.NewFromInt(-10)},
				{ID: "ent-2", AccountID: "acc-1", Amount: decimal.NewFromInt(20)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/entries", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp))
	}
}
