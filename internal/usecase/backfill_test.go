package usecase

import (
	"context"
	"errors"
	"testing"

	"StockPulse/internal/domain/models"
)

type memStore struct {
	stored []models.Candle
	err    error
}

func (s *memStore) StoreCandles(_ context.Context, c []models.Candle) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, c...)
	return nil
}

func TestBackfill(t *testing.T) {
	store := &memStore{}
	uc := NewBackfillUseCase(&stubPrices{candles: flatCandles(5, 10)}, store, nil)

	n, err := uc.Run(context.Background(), []string{"AAPL", "MSFT"}, 30)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 || len(store.stored) != 10 {
		t.Fatalf("got n=%d stored=%d, want 2 and 10", n, len(store.stored))
	}
}

func TestBackfillStopsOnFailure(t *testing.T) {
	uc := NewBackfillUseCase(&stubPrices{}, &memStore{}, nil)
	n, err := uc.Run(context.Background(), []string{"NOPE"}, 30)
	if !errors.Is(err, ErrNoPriceData) || n != 0 {
		t.Fatalf("got n=%d err=%v", n, err)
	}

	uc = NewBackfillUseCase(&stubPrices{candles: flatCandles(5, 10)}, &memStore{err: errors.New("ch down")}, nil)
	if _, err := uc.Run(context.Background(), []string{"AAPL"}, 30); err == nil {
		t.Fatalf("expected store error")
	}
}
