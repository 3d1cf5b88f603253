// Package adapters はsnapshotsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/snapshots/usecase"
)

// snapshotMySQL はSnapshotRepository/SymbolCatalogインターフェースのMySQL実装です。
type snapshotMySQL struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotMySQL)(nil)
var _ usecase.SymbolCatalog = (*snapshotMySQL)(nil)

// NewSnapshotRepository は指定されたDB接続でsnapshotMySQLリポジトリの新しいインスタンスを生成します。
func NewSnapshotRepository(db *gorm.DB) *snapshotMySQL {
	return &snapshotMySQL{db: db}
}

// ListSymbols はカタログ内の全銘柄をティッカー順に返します。
func (r *snapshotMySQL) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Order("ticker ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// FindSymbolsByTickers は指定ティッカーに一致する銘柄を返します。
// カタログに存在しないティッカーは黙って無視されます。
func (r *snapshotMySQL) FindSymbolsByTickers(ctx context.Context, tickers []string) ([]entity.Symbol, error) {
	normalized := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			normalized = append(normalized, t)
		}
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("ticker IN ?", normalized).
		Order("ticker ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// UpsertBatch は1回の取り込みで集めたスナップショットを1トランザクションで永続化します。
// 既存行は上書き（last-write-wins）で、extra_dataはマージせず丸ごと置き換えます。
func (r *snapshotMySQL) UpsertBatch(ctx context.Context, snaps []entity.DailySymbolSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range snaps {
			if err := upsertOne(tx, &snaps[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertOne(tx *gorm.DB, snap *entity.DailySymbolSnapshot) error {
	var existing entity.DailySymbolSnapshot
	err := tx.Where("symbol_id = ? AND trade_date = ?", snap.SymbolID, snap.TradeDate).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(snap).Error
	}
	if err != nil {
		return err
	}

	existing.ClosePrice = snap.ClosePrice
	existing.ChangePct = snap.ChangePct
	existing.Volume = snap.Volume
	existing.ExtraData = snap.ExtraData
	return tx.Save(&existing).Error
}
