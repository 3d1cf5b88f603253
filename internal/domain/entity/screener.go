package entity

import (
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"
)

// Screener は外部スクリーナー（Chartinkのスキャン）を表します。
// scan_url をslugとして一意に識別し、未知のslugを含むWebhookを
// 受信した時点で自動的に作成されます。
type Screener struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Source    string    `gorm:"size:32;not null;default:chartink" json:"source"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Screener) TableName() string {
	return "screeners"
}

// ScreenerEvent is the append-only audit fact: one row per (screener, symbol,
// alert occurrence). RawPayload keeps the original webhook body verbatim for
// replay; the typed columns are what queries actually use. Rows are never
// updated or deleted.
type ScreenerEvent struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	ScreenerID      uint              `gorm:"not null;index" json:"screener_id"`
	SymbolID        uint              `gorm:"not null;index" json:"symbol_id"`
	TriggerPrice    null.Float        `json:"trigger_price"`
	TriggeredAtTime null.String       `gorm:"size:8" json:"triggered_at_time"`
	TradeDate       datatypes.Date    `gorm:"not null;index" json:"trade_date"`
	RawPayload      datatypes.JSONMap `json:"raw_payload"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (ScreenerEvent) TableName() string {
	return "screener_events"
}

// DailyScreenerStatus is the per-day aggregate derived from ScreenerEvent:
// at most one row per (symbol, screener, trade_date). Idempotency is handled
// in ingestion code, NOT via DB constraints — the table deliberately carries
// no unique index.
type DailyScreenerStatus struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	SymbolID         uint           `gorm:"not null;index" json:"symbol_id"`
	ScreenerID       uint           `gorm:"not null;index" json:"screener_id"`
	TradeDate        datatypes.Date `gorm:"not null;index" json:"trade_date"`
	Triggered        bool           `gorm:"not null;default:true" json:"triggered"`
	TriggerCount     int            `gorm:"not null;default:1" json:"trigger_count"`
	FirstTriggeredAt null.Time      `json:"first_triggered_at"`
	LastTriggeredAt  null.Time      `json:"last_triggered_at"`
}

func (DailyScreenerStatus) TableName() string {
	return "daily_screener_statuses"
}
