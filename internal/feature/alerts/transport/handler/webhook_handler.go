package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"screener_backend/internal/feature/alerts/transport/http/dto"
	"screener_backend/internal/feature/alerts/usecase"
)

// WebhookUsecase はアラート取り込みユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WebhookUsecase interface {
	IngestAlert(ctx context.Context, payload usecase.AlertPayload) (usecase.AlertResult, error)
}

// WebhookHandler はスクリーナーWebhookのHTTPリクエストを処理します。
type WebhookHandler struct {
	uc WebhookUsecase
}

// NewWebhookHandler は新しい WebhookHandler を作成します。
func NewWebhookHandler(uc WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// Chartink はChartinkからのアラートWebhookを受け付けるAPIです。
// 構造不正（必須フィールド欠落、銘柄リスト空、価格リスト数不一致）は400、
// 永続化の失敗は500を返します。成功時は単純なACKを返します。
func (h *WebhookHandler) Chartink(c *gin.Context) {
	var req dto.ChartinkWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := usecase.AlertPayload{
		Stocks:        req.Stocks,
		TriggerPrices: req.TriggerPrices,
		TriggeredAt:   req.TriggeredAt,
		ScanName:      req.ScanName,
		ScanURL:       req.ScanURL,
		AlertName:     req.AlertName,
		WebhookURL:    req.WebhookURL,
	}

	if _, err := h.uc.IngestAlert(c.Request.Context(), payload); err != nil {
		if errors.Is(err, usecase.ErrNoSymbols) || errors.Is(err, usecase.ErrPriceCountMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
