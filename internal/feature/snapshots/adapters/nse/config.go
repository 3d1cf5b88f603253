// Package nse はNSE (National Stock Exchange of India) の非公式クオートAPIクライアントです。
package nse

import (
	"os"
	"strconv"
	"time"

	"screener_backend/internal/shared/ratelimiter"
)

// Config はNSEクライアントの設定です。
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewConfigFromEnv は環境変数からNSEクライアント設定を生成します。
//   - NSE_BASE_URL: デフォルト https://www.nseindia.com
//   - NSE_TIMEOUT_SECONDS: デフォルト 10
func NewConfigFromEnv() Config {
	cfg := Config{
		BaseURL: "https://www.nseindia.com",
		Timeout: 10 * time.Second,
	}
	if v := os.Getenv("NSE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("NSE_TIMEOUT_SECONDS"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.Timeout = time.Duration(sec) * time.Second
		}
	}
	return cfg
}

// LimiterFromEnv は環境変数からNSE向けのレートリミッターを生成します。
//   - NSE_MAX_CALLS_PER_MINUTE: 設定時は1分窓での回数制限
//   - NSE_DELAY_MS: リクエスト間の固定ディレイ（デフォルト 500ms）
func LimiterFromEnv() ratelimiter.RateLimiterInterface {
	if v := os.Getenv("NSE_MAX_CALLS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return ratelimiter.NewRateLimiter(n, time.Minute)
		}
	}
	delay := 500 * time.Millisecond
	if v := os.Getenv("NSE_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}
	return ratelimiter.NewFixedDelay(delay)
}
