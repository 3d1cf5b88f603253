package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/catalog/transport/http/dto"
)

// CatalogUsecase はカタログ参照ユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	ListSymbols(ctx context.Context) ([]entity.Symbol, error)
	ListIndices(ctx context.Context) ([]entity.Index, error)
}

// CatalogHandler は銘柄・インデックス参照のHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListIndices はインデックスの一覧を取得するAPIです。
func (h *CatalogHandler) ListIndices(c *gin.Context) {
	indices, err := h.uc.ListIndices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.IndexItem, 0, len(indices))
	for _, idx := range indices {
		out = append(out, dto.IndexItem{ID: idx.ID, Name: idx.Name, Description: idx.Description})
	}
	c.JSON(http.StatusOK, out)
}

// ListSymbols はカタログ内の全銘柄を取得するAPIです。
func (h *CatalogHandler) ListSymbols(c *gin.Context) {
	symbols, err := h.uc.ListSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{ID: s.ID, Ticker: s.Ticker, Name: s.Name, Exchange: s.Exchange})
	}
	c.JSON(http.StatusOK, out)
}
