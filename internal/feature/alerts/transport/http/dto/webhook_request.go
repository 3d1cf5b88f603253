// Package dto defines the HTTP request/response shapes for the alerts feature.
package dto

// ChartinkWebhookRequest is the inbound webhook body sent by Chartink when a
// scan fires. stocks and trigger_prices are comma separated; triggered_at is
// free text like "2:34 pm".
type ChartinkWebhookRequest struct {
	Stocks        string `json:"stocks" binding:"required"`
	TriggerPrices string `json:"trigger_prices"`
	TriggeredAt   string `json:"triggered_at"`
	ScanName      string `json:"scan_name" binding:"required"`
	ScanURL       string `json:"scan_url" binding:"required"`
	AlertName     string `json:"alert_name"`
	WebhookURL    string `json:"webhook_url"`
}

// ScreenerItem is one screener in the list response.
type ScreenerItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
