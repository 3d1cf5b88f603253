package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"screener_backend/internal/feature/dashboard/usecase"
)

// mockDashboardQuery はテスト用のDashboardQueryモック実装です。
type mockDashboardQuery struct {
	getFn func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error)
}

// GetDashboard はモックのGetDashboard関数を呼び出します。
func (m *mockDashboardQuery) GetDashboard(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, indexName, tradeDate)
	}
	return usecase.DashboardView{}, nil
}

var testTradeDate = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// TestNewCachingDashboardQuery_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingDashboardQuery_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       time.Minute,
			expectedNamespace: "dashboard",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       time.Minute,
			expectedNamespace: "dashboard",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := NewCachingDashboardQuery(nil, tt.ttl, &mockDashboardQuery{}, tt.namespace)

			if q.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, q.ttl)
			}
			if q.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, q.namespace)
			}
		})
	}
}

// TestCachingDashboardQuery_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部クエリを直接呼び出すことを検証します。
func TestCachingDashboardQuery_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockDashboardQuery{
		getFn: func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
			return usecase.DashboardView{Index: indexName, Date: "2024-03-04"}, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	q := NewCachingDashboardQuery(nil, time.Minute, inner, "dashboard")

	view, err := q.GetDashboard(context.Background(), "NIFTY50", testTradeDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Index != "NIFTY50" {
		t.Errorf("expected index NIFTY50, got %q", view.Index)
	}
}

// TestCachingDashboardQuery_CacheHit はキャッシュヒット時にRedisからデータを返し、内部クエリを呼ばないことを検証します。
func TestCachingDashboardQuery_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedView := usecase.DashboardView{Index: "NIFTY50", Date: "2024-03-04"}
	cachedJSON, _ := json.Marshal(cachedView)

	mock.ExpectGet("dashboard:NIFTY50:2024-03-04").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockDashboardQuery{
		getFn: func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
			innerCalled = true
			return usecase.DashboardView{}, nil
		},
	}

	q := NewCachingDashboardQuery(rdb, time.Minute, inner, "dashboard")
	view, err := q.GetDashboard(context.Background(), "NIFTY50", testTradeDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner query should not be called on cache hit")
	}
	if view.Index != "NIFTY50" {
		t.Errorf("expected index NIFTY50, got %q", view.Index)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingDashboardQuery_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingDashboardQuery_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedView := usecase.DashboardView{Index: "NIFTY50", Date: "2024-03-04"}
	expectedJSON, _ := json.Marshal(expectedView)

	// Cache miss
	mock.ExpectGet("dashboard:NIFTY50:2024-03-04").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("dashboard:NIFTY50:2024-03-04", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockDashboardQuery{
		getFn: func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
			return expectedView, nil
		},
	}

	q := NewCachingDashboardQuery(rdb, time.Minute, inner, "dashboard")
	view, err := q.GetDashboard(context.Background(), "NIFTY50", testTradeDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Index != "NIFTY50" {
		t.Errorf("expected index NIFTY50, got %q", view.Index)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingDashboardQuery_InnerError は内部クエリがエラーを返した場合にそのエラーが伝播されることを検証します。
func TestCachingDashboardQuery_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("dashboard:NIFTY50:2024-03-04").RedisNil()

	inner := &mockDashboardQuery{
		getFn: func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
			return usecase.DashboardView{}, expectedErr
		},
	}

	q := NewCachingDashboardQuery(rdb, time.Minute, inner, "dashboard")
	_, err := q.GetDashboard(context.Background(), "NIFTY50", testTradeDate)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingDashboardQuery_CorruptedCache は破損したキャッシュを検出・削除し、DBにフォールバックすることを検証します。
func TestCachingDashboardQuery_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedView := usecase.DashboardView{Index: "NIFTY50", Date: "2024-03-04"}
	expectedJSON, _ := json.Marshal(expectedView)

	// Return invalid JSON from cache
	mock.ExpectGet("dashboard:NIFTY50:2024-03-04").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("dashboard:NIFTY50:2024-03-04").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("dashboard:NIFTY50:2024-03-04", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockDashboardQuery{
		getFn: func(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
			return expectedView, nil
		},
	}

	q := NewCachingDashboardQuery(rdb, time.Minute, inner, "dashboard")
	view, err := q.GetDashboard(context.Background(), "NIFTY50", testTradeDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Index != "NIFTY50" {
		t.Errorf("expected index NIFTY50, got %q", view.Index)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingDashboardQuery_KeyUsesDateOnly はキャッシュキーに時刻成分が含まれないことを検証します。
func TestCachingDashboardQuery_KeyUsesDateOnly(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedView := usecase.DashboardView{Index: "NIFTY50", Date: "2024-03-04"}
	cachedJSON, _ := json.Marshal(cachedView)

	// Same key regardless of intraday timestamp
	mock.ExpectGet("dashboard:NIFTY50:2024-03-04").SetVal(string(cachedJSON))

	q := NewCachingDashboardQuery(rdb, time.Minute, &mockDashboardQuery{}, "dashboard")
	midday := time.Date(2024, 3, 4, 15, 30, 45, 0, time.UTC)
	if _, err := q.GetDashboard(context.Background(), "NIFTY50", midday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
