package usecase

import (
	"context"

	"screener_backend/internal/domain/entity"
)

// ScreenerReader lists screener reference data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ScreenerReader interface {
	ListActiveScreeners(ctx context.Context) ([]entity.Screener, error)
}

// ScreenerUsecase provides read access to registered screeners.
type ScreenerUsecase struct {
	repo ScreenerReader
}

// NewScreenerUsecase creates a new ScreenerUsecase with the given repository.
func NewScreenerUsecase(r ScreenerReader) *ScreenerUsecase {
	return &ScreenerUsecase{repo: r}
}

// ListActiveScreeners returns every screener with active=true.
func (u *ScreenerUsecase) ListActiveScreeners(ctx context.Context) ([]entity.Screener, error) {
	return u.repo.ListActiveScreeners(ctx)
}
