package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"screener_backend/internal/domain/entity"
	"screener_backend/internal/feature/alerts/transport/http/dto"
)

// ScreenerUsecase はスクリーナー一覧取得ユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ScreenerUsecase interface {
	ListActiveScreeners(ctx context.Context) ([]entity.Screener, error)
}

// ScreenerHandler はスクリーナー一覧のHTTPリクエストを処理します。
type ScreenerHandler struct {
	uc ScreenerUsecase
}

// NewScreenerHandler は新しい ScreenerHandler を作成します。
func NewScreenerHandler(uc ScreenerUsecase) *ScreenerHandler {
	return &ScreenerHandler{uc: uc}
}

// List はアクティブなスクリーナーの一覧を取得するAPIです。
func (h *ScreenerHandler) List(c *gin.Context) {
	screeners, err := h.uc.ListActiveScreeners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.ScreenerItem, 0, len(screeners))
	for _, s := range screeners {
		out = append(out, dto.ScreenerItem{ID: s.ID, Name: s.Name, Slug: s.Slug})
	}
	c.JSON(http.StatusOK, out)
}
