package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"

	"screener_backend/internal/domain/entity"
)

// screenerSource はWebhook経由で作成されるスクリーナーのソースタグです。
const screenerSource = "chartink"

// AlertRepository abstracts the persistence layer for alert ingestion.
// Transact runs fn against a transaction-scoped repository; any error rolls
// the whole batch back.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AlertRepository interface {
	ResolveScreener(ctx context.Context, slug, name, source string) (entity.Screener, error)
	ResolveSymbol(ctx context.Context, ticker string) (entity.Symbol, error)
	AppendEvent(ctx context.Context, ev *entity.ScreenerEvent) error
	UpsertDailyStatus(ctx context.Context, symbolID, screenerID uint, tradeDate datatypes.Date, now time.Time) error
	Transact(ctx context.Context, fn func(AlertRepository) error) error
}

// AlertPayload は外部スクリーナーからのアラート通知です。
// Stocks と TriggerPrices はカンマ区切り、TriggeredAt は "HH:MM AM/PM" 形式の自由文です。
type AlertPayload struct {
	Stocks        string
	TriggerPrices string
	TriggeredAt   string
	ScanName      string
	ScanURL       string
	AlertName     string
	WebhookURL    string
}

// AlertResult はアラート1件の取り込み結果です。
type AlertResult struct {
	ScreenerID uint
	Events     int
}

// WebhookUsecase はスクリーナーアラートの取り込みを実装します。
type WebhookUsecase struct {
	repo AlertRepository
}

// NewWebhookUsecase は新しい WebhookUsecase を作成します。
func NewWebhookUsecase(repo AlertRepository) *WebhookUsecase {
	return &WebhookUsecase{repo: repo}
}

// IngestAlert は1件のアラートを取り込みます。
//  1. slugでスクリーナーをresolve-or-create
//  2. 各銘柄をresolve-or-createし、ScreenerEventを1行追加
//  3. (銘柄, スクリーナー, 当日) のDailyScreenerStatusを冪等にupsert
//
// すべての書き込みは1トランザクションで行い、途中で失敗した場合は
// ペイロード全体をロールバックします（部分適用は発生しません）。
func (u *WebhookUsecase) IngestAlert(ctx context.Context, payload AlertPayload) (AlertResult, error) {
	symbols := splitTrimmed(payload.Stocks)
	if len(symbols) == 0 {
		return AlertResult{}, ErrNoSymbols
	}

	prices, err := parseTriggerPrices(payload.TriggerPrices, len(symbols))
	if err != nil {
		return AlertResult{}, err
	}

	// 不正な時刻文字列はnull扱い。リクエストは失敗させない
	triggerTime := ParseTriggerTime(payload.TriggeredAt)

	now := time.Now().UTC()
	tradeDate := entity.TradeDateOf(now)
	raw := rawPayload(payload)

	var result AlertResult
	err = u.repo.Transact(ctx, func(r AlertRepository) error {
		screener, err := r.ResolveScreener(ctx, payload.ScanURL, payload.ScanName, screenerSource)
		if err != nil {
			return err
		}
		result.ScreenerID = screener.ID

		for i, ticker := range symbols {
			symbol, err := r.ResolveSymbol(ctx, ticker)
			if err != nil {
				return err
			}

			ev := &entity.ScreenerEvent{
				ScreenerID:      screener.ID,
				SymbolID:        symbol.ID,
				TriggerPrice:    prices[i],
				TriggeredAtTime: triggerTime,
				TradeDate:       tradeDate,
				RawPayload:      raw,
			}
			if err := r.AppendEvent(ctx, ev); err != nil {
				return err
			}

			if err := r.UpsertDailyStatus(ctx, symbol.ID, screener.ID, tradeDate, now); err != nil {
				return err
			}
			result.Events++
		}
		return nil
	})
	if err != nil {
		return AlertResult{}, err
	}
	return result, nil
}

// splitTrimmed splits a comma separated list, trimming whitespace and dropping
// empty entries.
func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseTriggerPrices parses the optional comma separated price list. An absent
// list means every symbol gets a null price; a present list must align
// positionally with the symbols. Entries that fail to parse become null.
func parseTriggerPrices(s string, symbolCount int) ([]null.Float, error) {
	prices := make([]null.Float, symbolCount)
	if strings.TrimSpace(s) == "" {
		return prices, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != symbolCount {
		return nil, ErrPriceCountMismatch
	}
	for i, part := range parts {
		if f, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
			prices[i] = null.FloatFrom(f)
		}
	}
	return prices, nil
}

// ParseTriggerTime parses a 12-hour "HH:MM AM/PM" time-of-day string.
// Unparseable input yields null rather than an error.
func ParseTriggerTime(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	t, err := time.Parse("3:04 PM", strings.ToUpper(s))
	if err != nil {
		return null.String{}
	}
	return null.StringFrom(t.Format("15:04:05"))
}

// rawPayload はペイロード全体を監査用のopaqueなJSONドキュメントに変換します。
func rawPayload(p AlertPayload) datatypes.JSONMap {
	return datatypes.JSONMap{
		"stocks":         p.Stocks,
		"trigger_prices": p.TriggerPrices,
		"triggered_at":   p.TriggeredAt,
		"scan_name":      p.ScanName,
		"scan_url":       p.ScanURL,
		"alert_name":     p.AlertName,
		"webhook_url":    p.WebhookURL,
	}
}
