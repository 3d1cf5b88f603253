// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	alerthandler "screener_backend/internal/feature/alerts/transport/handler"
	cataloghandler "screener_backend/internal/feature/catalog/transport/handler"
	dashboardhandler "screener_backend/internal/feature/dashboard/transport/handler"
)

// NewRouter はルートテーブルを構築します。
func NewRouter(webhook *alerthandler.WebhookHandler, screener *alerthandler.ScreenerHandler,
	catalog *cataloghandler.CatalogHandler, dashboard *dashboardhandler.DashboardHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", Health)

	// Chartinkアラート受信
	r.POST("/webhooks/chartink", webhook.Chartink)

	// 参照系
	r.GET("/indices", catalog.ListIndices)
	r.GET("/symbols", catalog.ListSymbols)
	r.GET("/screeners", screener.List)
	r.GET("/dashboard", dashboard.Get)

	return r
}
