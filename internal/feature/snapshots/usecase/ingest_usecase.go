// Package usecase implements the business logic for EOD snapshot ingestion.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"

	domain "screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/snapshots/domain/entity"
	"screener_backend/internal/shared/ratelimiter"
)

// QuoteProvider は1銘柄のEOD指標を提供する外部データソースのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	FetchEODQuote(ctx context.Context, symbol string) (entity.EODQuote, error)
}

// SymbolCatalog resolves the target symbol set for an ingestion run.
type SymbolCatalog interface {
	ListSymbols(ctx context.Context) ([]domain.Symbol, error)
	FindSymbolsByTickers(ctx context.Context, tickers []string) ([]domain.Symbol, error)
}

// SnapshotRepository persists one ingestion run as a single batch.
type SnapshotRepository interface {
	UpsertBatch(ctx context.Context, snaps []domain.DailySymbolSnapshot) error
}

// IngestResult は1回のスナップショット取り込みの結果です。
// Requested=0 は「対象銘柄なし」を意味し、取得失敗による Ingested=0 とは区別されます。
type IngestResult struct {
	Requested int
	Ingested  int
}

// IngestUsecase は外部プロバイダからEODデータを取得し、
// DailySymbolSnapshotとして永続化するユースケースを定義します。
type IngestUsecase struct {
	catalog     SymbolCatalog
	provider    QuoteProvider
	snapshots   SnapshotRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(catalog SymbolCatalog, provider QuoteProvider, snapshots SnapshotRepository,
	rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{catalog: catalog, provider: provider, snapshots: snapshots, rateLimiter: rateLimiter}
}

// IngestEOD は対象銘柄のEOD指標を1銘柄ずつ取得し、スナップショットとして保存します。
//   - tickersが空の場合はカタログ内の全銘柄が対象
//   - プロバイダのレートリミットを尊重するため、取得ループは意図的に逐次実行
//   - 1銘柄の失敗はログに出力してスキップし、実行全体は止めない
//   - 永続化はすべての取得が終わった後に1バッチで行う
func (u *IngestUsecase) IngestEOD(ctx context.Context, tradeDate time.Time, tickers []string) (IngestResult, error) {
	symbols, err := u.resolveSymbols(ctx, tickers)
	if err != nil {
		return IngestResult{}, err
	}
	if len(symbols) == 0 {
		slog.Warn("no symbols found for snapshot ingestion")
		return IngestResult{}, nil
	}

	date := domain.TradeDateOf(tradeDate)

	snaps := make([]domain.DailySymbolSnapshot, 0, len(symbols))
	for _, sym := range symbols {
		u.rateLimiter.WaitIfNeeded()

		quote, err := u.provider.FetchEODQuote(ctx, sym.Ticker)
		if err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ進む
			slog.Error("failed to fetch EOD quote", "symbol", sym.Ticker, "error", err)
			continue
		}
		snaps = append(snaps, buildSnapshot(sym.ID, date, quote))
	}

	result := IngestResult{Requested: len(symbols)}
	if len(snaps) == 0 {
		slog.Warn("provider returned no data", "requested", result.Requested)
		return result, nil
	}

	if err := u.snapshots.UpsertBatch(ctx, snaps); err != nil {
		return result, err
	}
	result.Ingested = len(snaps)
	return result, nil
}

func (u *IngestUsecase) resolveSymbols(ctx context.Context, tickers []string) ([]domain.Symbol, error) {
	if len(tickers) == 0 {
		return u.catalog.ListSymbols(ctx)
	}
	return u.catalog.FindSymbolsByTickers(ctx, tickers)
}

// buildSnapshot はEODQuoteをスナップショット行に変換します。
// 拡張フィールドはextra_dataとしてまとめ、再取り込み時には丸ごと置き換えられます。
func buildSnapshot(symbolID uint, date datatypes.Date, q entity.EODQuote) domain.DailySymbolSnapshot {
	return domain.DailySymbolSnapshot{
		SymbolID:   symbolID,
		TradeDate:  date,
		ClosePrice: null.FloatFrom(q.Close),
		ChangePct:  null.FloatFrom(q.DayChangePct),
		Volume:     null.IntFrom(int64(q.TotalVolume)),
		ExtraData: datatypes.JSONMap{
			"year_high":       q.YearHigh,
			"year_low":        q.YearLow,
			"delivery_volume": q.DeliveryVolume,
			"delivery_pct":    q.DeliveryPct,
		},
	}
}
