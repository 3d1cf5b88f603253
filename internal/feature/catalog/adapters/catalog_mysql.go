// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/guregu/null/v6"
	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/catalog/usecase"
	"screener_backend/internal/shared/resolve"
)

// catalogMySQL はCatalogRepository/LoaderRepositoryインターフェースのMySQL実装です。
type catalogMySQL struct {
	db *gorm.DB
}

var _ usecase.CatalogRepository = (*catalogMySQL)(nil)
var _ usecase.LoaderRepository = (*catalogMySQL)(nil)

// NewCatalogRepository は指定されたDB接続でcatalogMySQLリポジトリの新しいインスタンスを生成します。
func NewCatalogRepository(db *gorm.DB) *catalogMySQL {
	return &catalogMySQL{db: db}
}

// ListSymbols はティッカー順にすべての銘柄を返します。
func (r *catalogMySQL) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Order("ticker ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListIndices は登録済みのすべてのインデックスを返します。
func (r *catalogMySQL) ListIndices(ctx context.Context) ([]entity.Index, error) {
	var indices []entity.Index
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&indices).Error; err != nil {
		return nil, err
	}
	return indices, nil
}

// Transact はトランザクションスコープのリポジトリに対してfnを実行します。
func (r *catalogMySQL) Transact(ctx context.Context, fn func(usecase.LoaderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&catalogMySQL{db: tx})
	})
}

// UpsertIndex は名前でインデックスを検索し、無ければ作成、
// あればdescriptionのみ更新します。戻り値のboolは新規作成かどうかです。
func (r *catalogMySQL) UpsertIndex(ctx context.Context, name, description string) (entity.Index, bool, error) {
	var idx entity.Index
	err := r.db.WithContext(ctx).
		Where(&entity.Index{Name: name}).
		First(&idx).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		idx = entity.Index{Name: name, Description: null.StringFrom(description)}
		if err := r.db.WithContext(ctx).Create(&idx).Error; err != nil {
			return entity.Index{}, false, err
		}
		return idx, true, nil
	}
	if err != nil {
		return entity.Index{}, false, err
	}

	if idx.Description.String != description {
		idx.Description = null.StringFrom(description)
		if err := r.db.WithContext(ctx).Save(&idx).Error; err != nil {
			return entity.Index{}, false, err
		}
	}
	return idx, false, nil
}

// ResolveSymbol はティッカーで銘柄をresolve-or-createします。
func (r *catalogMySQL) ResolveSymbol(ctx context.Context, ticker, name string) (entity.Symbol, error) {
	return resolve.Symbol(ctx, r.db, ticker, name)
}

// ListConstituentSymbolIDs は指定インデックスの既存構成銘柄のsymbol_id集合を返します。
// (index_id, symbol_id) の一意性はDB制約ではなくこのチェックで担保します。
func (r *catalogMySQL) ListConstituentSymbolIDs(ctx context.Context, indexID uint) (map[uint]struct{}, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&entity.IndexConstituent{}).
		Where("index_id = ?", indexID).
		Pluck("symbol_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// AddConstituent は構成銘柄を weightage=NULL で追加します。
func (r *catalogMySQL) AddConstituent(ctx context.Context, indexID, symbolID uint) error {
	ic := entity.IndexConstituent{IndexID: indexID, SymbolID: symbolID}
	return r.db.WithContext(ctx).Create(&ic).Error
}
