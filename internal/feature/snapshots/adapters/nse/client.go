package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"screener_backend/internal/feature/snapshots/adapters/nse/dto"
	"screener_backend/internal/feature/snapshots/domain/entity"
)

const apiPath = "/api/NextApi/apiClient/GetQuoteApi"

// Client はNSEクオートAPIのクライアントです。
// NSEはブラウザ相当のヘッダーとセッションCookieを要求するため、
// 初回リクエストの前にトップページへのwarmupアクセスを行います。
// http.Client にCookie Jarが設定されている必要があります。
type Client struct {
	cfg    Config
	client *http.Client

	mu     sync.Mutex
	warmed bool
}

// NewClient は新しいNSEクライアントを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// warmUp はセッションCookieを取得するためにトップページへアクセスします。
// 成功は1度だけ記録され、以降の呼び出しは即座に返ります。
func (c *Client) warmUp(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warmed {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return err
	}
	setBaseHeaders(req)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("nse warmup failed: %w", &StatusError{Code: res.StatusCode})
	}

	c.warmed = true
	return nil
}

// FetchEODQuote は1銘柄のEOD指標を取得します。
// HTTPエラーは *StatusError、レスポンス形の不一致は *SchemaError を返します。
func (c *Client) FetchEODQuote(ctx context.Context, symbol string) (entity.EODQuote, error) {
	if err := c.warmUp(ctx); err != nil {
		return entity.EODQuote{}, err
	}

	q := url.Values{}
	q.Set("functionName", "getSymbolData")
	q.Set("marketType", "N")
	q.Set("series", "EQ")
	q.Set("symbol", symbol)

	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, apiPath, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.EODQuote{}, err
	}
	setBaseHeaders(req)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Referer", fmt.Sprintf("%s/get-quote/equity/%s", c.cfg.BaseURL, symbol))

	res, err := c.client.Do(req)
	if err != nil {
		return entity.EODQuote{}, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return entity.EODQuote{}, &StatusError{Code: res.StatusCode}
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.EODQuote{}, fmt.Errorf("decode nse quote for %s: %w", symbol, err)
	}
	if len(body.EquityResponse) == 0 {
		return entity.EODQuote{}, &SchemaError{Field: "equityResponse"}
	}

	eq := body.EquityResponse[0]
	return entity.EODQuote{
		Close:          eq.MetaData.ClosePrice,
		DayChangePct:   eq.MetaData.PChange,
		YearHigh:       eq.PriceInfo.YearHigh,
		YearLow:        eq.PriceInfo.YearLow,
		TotalVolume:    eq.TradeInfo.QuantityTraded,
		DeliveryVolume: eq.TradeInfo.DeliveryQuantity,
		DeliveryPct:    eq.TradeInfo.DeliveryToTradedQuantity,
	}, nil
}

// setBaseHeaders はNSEが要求するブラウザ相当の共通ヘッダーを設定します。
func setBaseHeaders(req *http.Request) {
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
