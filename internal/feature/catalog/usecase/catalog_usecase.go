package usecase

import (
	"context"

	"screener_backend/internal/domain/entity"
)

// CatalogRepository abstracts the persistence layer for catalog reference data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CatalogRepository interface {
	ListSymbols(ctx context.Context) ([]entity.Symbol, error)
	ListIndices(ctx context.Context) ([]entity.Index, error)
}

// CatalogUsecase provides read access to the symbol and index catalog.
type CatalogUsecase struct {
	repo CatalogRepository
}

// NewCatalogUsecase creates a new CatalogUsecase with the given repository.
func NewCatalogUsecase(r CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: r}
}

// ListSymbols returns every symbol in the catalog ordered by ticker.
func (u *CatalogUsecase) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListSymbols(ctx)
}

// ListIndices returns every registered index.
func (u *CatalogUsecase) ListIndices(ctx context.Context) ([]entity.Index, error) {
	return u.repo.ListIndices(ctx)
}
