// Package adapters はalertsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/alerts/usecase"
	"screener_backend/internal/shared/resolve"
)

// alertMySQL はAlertRepositoryインターフェースのMySQL実装です。
type alertMySQL struct {
	db *gorm.DB
}

var _ usecase.AlertRepository = (*alertMySQL)(nil)
var _ usecase.ScreenerReader = (*alertMySQL)(nil)

// NewAlertRepository は指定されたDB接続でalertMySQLリポジトリの新しいインスタンスを生成します。
func NewAlertRepository(db *gorm.DB) *alertMySQL {
	return &alertMySQL{db: db}
}

// Transact はトランザクションスコープのリポジトリに対してfnを実行します。
// fnがエラーを返した場合、トランザクション内の全書き込みはロールバックされます。
func (r *alertMySQL) Transact(ctx context.Context, fn func(usecase.AlertRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&alertMySQL{db: tx})
	})
}

// ResolveScreener はslugでスクリーナーをresolve-or-createします。
func (r *alertMySQL) ResolveScreener(ctx context.Context, slug, name, source string) (entity.Screener, error) {
	return resolve.Screener(ctx, r.db, slug, name, source)
}

// ResolveSymbol はティッカーで銘柄をresolve-or-createします。
// 新規作成時の表示名はティッカーそのものです。
func (r *alertMySQL) ResolveSymbol(ctx context.Context, ticker string) (entity.Symbol, error) {
	return resolve.Symbol(ctx, r.db, ticker, "")
}

// AppendEvent はScreenerEventを1行追加します。イベントは追記専用です。
func (r *alertMySQL) AppendEvent(ctx context.Context, ev *entity.ScreenerEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// UpsertDailyStatus は (銘柄, スクリーナー, 取引日) のDailyScreenerStatusを冪等にupsertします。
// 行が無ければ trigger_count=1, first=last=now で作成し、
// あれば trigger_count をインクリメントして last_triggered_at のみ更新します。
func (r *alertMySQL) UpsertDailyStatus(ctx context.Context, symbolID, screenerID uint, tradeDate datatypes.Date, now time.Time) error {
	var status entity.DailyScreenerStatus
	err := r.db.WithContext(ctx).
		Where("symbol_id = ? AND screener_id = ? AND trade_date = ?", symbolID, screenerID, tradeDate).
		First(&status).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		status = entity.DailyScreenerStatus{
			SymbolID:         symbolID,
			ScreenerID:       screenerID,
			TradeDate:        tradeDate,
			Triggered:        true,
			TriggerCount:     1,
			FirstTriggeredAt: null.TimeFrom(now),
			LastTriggeredAt:  null.TimeFrom(now),
		}
		return r.db.WithContext(ctx).Create(&status).Error
	}
	if err != nil {
		return err
	}

	status.TriggerCount++
	status.LastTriggeredAt = null.TimeFrom(now)
	return r.db.WithContext(ctx).Save(&status).Error
}

// ListActiveScreeners はactive=trueのスクリーナーをID順に返します。
func (r *alertMySQL) ListActiveScreeners(ctx context.Context) ([]entity.Screener, error) {
	var screeners []entity.Screener
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&screeners).Error; err != nil {
		return nil, err
	}
	return screeners, nil
}
