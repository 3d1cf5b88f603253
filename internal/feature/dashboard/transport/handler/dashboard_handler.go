package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"screener_backend/internal/feature/dashboard/usecase"
)

// DashboardUsecase はダッシュボード集計ユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DashboardUsecase interface {
	GetDashboard(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error)
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get はインデックスと取引日を指定してピボット済みビューを取得するAPIです。
// indexクエリは必須、trade_date (YYYY-MM-DD) は省略時に当日です。
// 未登録のインデックスはエラーではなく空のビューを返します。
func (h *DashboardHandler) Get(c *gin.Context) {
	indexName := c.Query("index")
	if indexName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index query parameter is required"})
		return
	}

	tradeDate := time.Now().UTC()
	if v := c.Query("trade_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "trade_date must be YYYY-MM-DD"})
			return
		}
		tradeDate = parsed
	}

	view, err := h.uc.GetDashboard(c.Request.Context(), indexName, tradeDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}
