package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"screener_backend/internal/domain/entity"
)

// mockAlertRepository is a mock implementation of the AlertRepository interface.
type mockAlertRepository struct {
	ResolveScreenerFunc   func(ctx context.Context, slug, name, source string) (entity.Screener, error)
	ResolveSymbolFunc     func(ctx context.Context, ticker string) (entity.Symbol, error)
	AppendEventFunc       func(ctx context.Context, ev *entity.ScreenerEvent) error
	UpsertDailyStatusFunc func(ctx context.Context, symbolID, screenerID uint, tradeDate datatypes.Date, now time.Time) error

	ResolveScreenerCalls int
	AppendedEvents       []entity.ScreenerEvent
	UpsertedStatusKeys   [][2]uint
	TransactCalls        int
}

func (m *mockAlertRepository) ResolveScreener(ctx context.Context, slug, name, source string) (entity.Screener, error) {
	m.ResolveScreenerCalls++
	if m.ResolveScreenerFunc != nil {
		return m.ResolveScreenerFunc(ctx, slug, name, source)
	}
	return entity.Screener{ID: 1, Slug: slug, Name: name, Source: source, Active: true}, nil
}

func (m *mockAlertRepository) ResolveSymbol(ctx context.Context, ticker string) (entity.Symbol, error) {
	if m.ResolveSymbolFunc != nil {
		return m.ResolveSymbolFunc(ctx, ticker)
	}
	return entity.Symbol{ID: uint(len(ticker)), Ticker: ticker, Name: ticker}, nil
}

func (m *mockAlertRepository) AppendEvent(ctx context.Context, ev *entity.ScreenerEvent) error {
	if m.AppendEventFunc != nil {
		return m.AppendEventFunc(ctx, ev)
	}
	m.AppendedEvents = append(m.AppendedEvents, *ev)
	return nil
}

func (m *mockAlertRepository) UpsertDailyStatus(ctx context.Context, symbolID, screenerID uint, tradeDate datatypes.Date, now time.Time) error {
	if m.UpsertDailyStatusFunc != nil {
		return m.UpsertDailyStatusFunc(ctx, symbolID, screenerID, tradeDate, now)
	}
	m.UpsertedStatusKeys = append(m.UpsertedStatusKeys, [2]uint{symbolID, screenerID})
	return nil
}

func (m *mockAlertRepository) Transact(ctx context.Context, fn func(AlertRepository) error) error {
	m.TransactCalls++
	return fn(m)
}

func TestWebhookUsecase_IngestAlert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	basePayload := AlertPayload{
		Stocks:        "TCS, INFY",
		TriggerPrices: "100.5,200",
		TriggeredAt:   "2:34 pm",
		ScanName:      "Breakout",
		ScanURL:       "breakout-scan",
		AlertName:     "Alert for Breakout",
		WebhookURL:    "https://example.com/webhooks/chartink",
	}

	t.Run("success: two symbols with aligned prices", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		result, err := uc.IngestAlert(ctx, basePayload)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Events, "one event per symbol")
		assert.Equal(t, 1, repo.ResolveScreenerCalls, "screener resolved once per payload")
		assert.Equal(t, 1, repo.TransactCalls, "whole payload in one transaction")
		require.Len(t, repo.AppendedEvents, 2)
		require.Len(t, repo.UpsertedStatusKeys, 2)

		first := repo.AppendedEvents[0]
		assert.True(t, first.TriggerPrice.Valid)
		assert.Equal(t, 100.5, first.TriggerPrice.Float64)
		assert.Equal(t, "14:34:00", first.TriggeredAtTime.String)
		assert.Equal(t, "breakout-scan", first.RawPayload["scan_url"], "raw payload kept for audit")

		second := repo.AppendedEvents[1]
		assert.Equal(t, 200.0, second.TriggerPrice.Float64)
	})

	t.Run("success: absent price list means null for every symbol", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		payload := basePayload
		payload.TriggerPrices = ""

		result, err := uc.IngestAlert(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Events)
		for _, ev := range repo.AppendedEvents {
			assert.False(t, ev.TriggerPrice.Valid, "price should be null")
		}
	})

	t.Run("success: non-numeric price entry stored as null, payload accepted", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		payload := basePayload
		payload.TriggerPrices = "abc,200"

		result, err := uc.IngestAlert(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Events)

		require.Len(t, repo.AppendedEvents, 2)
		assert.False(t, repo.AppendedEvents[0].TriggerPrice.Valid, "unparseable entry becomes null")
		assert.True(t, repo.AppendedEvents[1].TriggerPrice.Valid)
		assert.Equal(t, 200.0, repo.AppendedEvents[1].TriggerPrice.Float64)
	})

	t.Run("success: malformed trigger time stored as null, not an error", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		payload := basePayload
		payload.TriggeredAt = "around lunch"

		_, err := uc.IngestAlert(ctx, payload)
		require.NoError(t, err)
		for _, ev := range repo.AppendedEvents {
			assert.False(t, ev.TriggeredAtTime.Valid)
		}
	})

	t.Run("failure: empty symbol list after trimming", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		payload := basePayload
		payload.Stocks = " , ,"
		payload.TriggerPrices = ""

		_, err := uc.IngestAlert(ctx, payload)
		assert.ErrorIs(t, err, ErrNoSymbols)
		assert.Equal(t, 0, repo.TransactCalls, "no transaction for rejected payload")
	})

	t.Run("failure: price count mismatch rejects whole payload", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{}
		uc := NewWebhookUsecase(repo)

		payload := basePayload
		payload.TriggerPrices = "100.5"

		_, err := uc.IngestAlert(ctx, payload)
		assert.ErrorIs(t, err, ErrPriceCountMismatch)
		assert.Equal(t, 0, repo.TransactCalls)
	})

	t.Run("failure: symbol resolve error aborts the batch", func(t *testing.T) {
		t.Parallel()
		repo := &mockAlertRepository{
			ResolveSymbolFunc: func(ctx context.Context, ticker string) (entity.Symbol, error) {
				return entity.Symbol{}, errors.New("db gone")
			},
		}
		uc := NewWebhookUsecase(repo)

		_, err := uc.IngestAlert(ctx, basePayload)
		assert.Error(t, err)
		assert.Empty(t, repo.AppendedEvents)
	})
}

func TestParseTriggerTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		valid    bool
	}{
		{name: "afternoon", input: "2:34 pm", expected: "14:34:00", valid: true},
		{name: "morning with padding", input: "  9:05 AM ", expected: "09:05:00", valid: true},
		{name: "noon", input: "12:00 PM", expected: "12:00:00", valid: true},
		{name: "midnight", input: "12:00 AM", expected: "00:00:00", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "free text", input: "after close", valid: false},
		{name: "24 hour format", input: "14:34", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseTriggerTime(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.expected, got.String)
			}
		})
	}
}
