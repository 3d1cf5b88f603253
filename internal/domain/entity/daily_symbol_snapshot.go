package entity

import (
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"
)

// DailySymbolSnapshot holds the EOD market metrics for one symbol on one
// trading date: one row per (symbol_id, trade_date). Re-running ingestion for
// the same date overwrites the row in place (last-write-wins), and ExtraData
// is replaced wholesale, never merged.
type DailySymbolSnapshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SymbolID  uint           `gorm:"not null;index" json:"symbol_id"`
	TradeDate datatypes.Date `gorm:"not null;index" json:"trade_date"`

	ClosePrice null.Float `json:"close_price"`
	ChangePct  null.Float `json:"change_pct"`
	Volume     null.Int   `json:"volume"`

	// Provider-specific fields (year high/low, delivery stats, etc.)
	ExtraData datatypes.JSONMap `json:"extra_data"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DailySymbolSnapshot) TableName() string {
	return "daily_symbol_snapshots"
}
