// Package resolve はナチュラルキーによる参照エンティティのresolve-or-createを提供します。
// Symbol/Screener/Indexの行はWebhook取り込み・スナップショット取り込み・カタログローダーの
// いずれからも作成されるため、全ライターがこの共通パスを経由します。
package resolve

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
)

// Symbol はティッカーで銘柄を検索し、存在しなければ指定のデフォルト名で作成します。
// nameが空の場合は正規化済みティッカーを名前として使います。
// ティッカーは大文字に正規化されます。同じキーで何度呼んでも行は1つだけです。
func Symbol(ctx context.Context, db *gorm.DB, ticker, name string) (entity.Symbol, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if name == "" {
		name = ticker
	}
	var sym entity.Symbol
	err := db.WithContext(ctx).
		Where(&entity.Symbol{Ticker: ticker}).
		Attrs(&entity.Symbol{Name: name}).
		FirstOrCreate(&sym).Error
	return sym, err
}

// Screener はslugでスクリーナーを検索し、存在しなければ作成します。
func Screener(ctx context.Context, db *gorm.DB, slug, name, source string) (entity.Screener, error) {
	var sc entity.Screener
	err := db.WithContext(ctx).
		Where(&entity.Screener{Slug: slug}).
		Attrs(&entity.Screener{Name: name, Source: source, Active: true}).
		FirstOrCreate(&sc).Error
	return sc, err
}
