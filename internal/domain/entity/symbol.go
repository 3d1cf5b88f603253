// Package entity defines the shared domain models for the screener backend.
// Symbol, Index and Screener rows may be created by any of the writer paths
// (webhook ingestion, snapshot ingestion, catalog loader), so the models live
// in one shared package instead of per-feature entity packages.
package entity

// Symbol represents one tradable security, identified by its ticker.
// A symbol is created on first reference and never deleted.
type Symbol struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Ticker   string `gorm:"size:32;not null;uniqueIndex" json:"ticker"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Exchange string `gorm:"size:16;not null;default:NSE" json:"exchange"`
}

func (Symbol) TableName() string {
	return "symbols"
}
