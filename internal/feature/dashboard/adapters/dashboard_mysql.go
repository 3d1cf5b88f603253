// Package adapters はdashboardフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/dashboard/usecase"
)

// dashboardMySQL はDashboardRepositoryインターフェースのMySQL実装です。
type dashboardMySQL struct {
	db *gorm.DB
}

var _ usecase.DashboardRepository = (*dashboardMySQL)(nil)

// NewDashboardRepository は指定されたDB接続でdashboardMySQLリポジトリの新しいインスタンスを生成します。
func NewDashboardRepository(db *gorm.DB) *dashboardMySQL {
	return &dashboardMySQL{db: db}
}

// FindIndexByName は名前でインデックスを検索します。未登録の場合はfalseを返します（エラーではない）。
func (r *dashboardMySQL) FindIndexByName(ctx context.Context, name string) (entity.Index, bool, error) {
	var idx entity.Index
	err := r.db.WithContext(ctx).
		Where(&entity.Index{Name: name}).
		First(&idx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Index{}, false, nil
	}
	if err != nil {
		return entity.Index{}, false, err
	}
	return idx, true, nil
}

// ListConstituents は構成銘柄を銘柄テーブルとJOINし、ティッカー順で返します。
// 行の順序はそのままダッシュボードの行順になります。
func (r *dashboardMySQL) ListConstituents(ctx context.Context, indexID uint) ([]usecase.ConstituentRow, error) {
	var constituents []entity.IndexConstituent
	if err := r.db.WithContext(ctx).
		Where("index_id = ?", indexID).
		Find(&constituents).Error; err != nil {
		return nil, err
	}
	if len(constituents) == 0 {
		return nil, nil
	}

	symbolIDs := make([]uint, 0, len(constituents))
	for _, c := range constituents {
		symbolIDs = append(symbolIDs, c.SymbolID)
	}

	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("id IN ?", symbolIDs).
		Order("ticker ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}

	bySymbolID := make(map[uint]entity.IndexConstituent, len(constituents))
	for _, c := range constituents {
		bySymbolID[c.SymbolID] = c
	}

	rows := make([]usecase.ConstituentRow, 0, len(symbols))
	for _, sym := range symbols {
		rows = append(rows, usecase.ConstituentRow{
			Constituent: bySymbolID[sym.ID],
			Symbol:      sym,
		})
	}
	return rows, nil
}

// ListSnapshots は指定取引日・銘柄集合のスナップショットを返します。
func (r *dashboardMySQL) ListSnapshots(ctx context.Context, tradeDate datatypes.Date, symbolIDs []uint) ([]entity.DailySymbolSnapshot, error) {
	if len(symbolIDs) == 0 {
		return nil, nil
	}
	var snaps []entity.DailySymbolSnapshot
	if err := r.db.WithContext(ctx).
		Where("trade_date = ?", tradeDate).
		Where("symbol_id IN ?", symbolIDs).
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListActiveScreeners はactive=trueのスクリーナーをID順に返します。
func (r *dashboardMySQL) ListActiveScreeners(ctx context.Context) ([]entity.Screener, error) {
	var screeners []entity.Screener
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&screeners).Error; err != nil {
		return nil, err
	}
	return screeners, nil
}

// ListStatuses は指定取引日のDailyScreenerStatusを銘柄・スクリーナー集合で絞って返します。
func (r *dashboardMySQL) ListStatuses(ctx context.Context, tradeDate datatypes.Date, symbolIDs, screenerIDs []uint) ([]entity.DailyScreenerStatus, error) {
	if len(symbolIDs) == 0 || len(screenerIDs) == 0 {
		return nil, nil
	}
	var statuses []entity.DailyScreenerStatus
	if err := r.db.WithContext(ctx).
		Where("trade_date = ?", tradeDate).
		Where("symbol_id IN ?", symbolIDs).
		Where("screener_id IN ?", screenerIDs).
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
