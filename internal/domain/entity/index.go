package entity

import "github.com/guregu/null/v6"

// Index は銘柄インデックス（NIFTY50など）を表します。
type Index struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Description null.String `gorm:"size:255" json:"description"`
}

func (Index) TableName() string {
	return "indices"
}

// IndexConstituent はインデックスと銘柄の所属関係です。
// (index_id, symbol_id) の一意性はDB制約ではなくローダー側でチェックします。
type IndexConstituent struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	IndexID   uint       `gorm:"not null;index" json:"index_id"`
	SymbolID  uint       `gorm:"not null;index" json:"symbol_id"`
	Weightage null.Float `json:"weightage"`
}

func (IndexConstituent) TableName() string {
	return "index_constituents"
}
