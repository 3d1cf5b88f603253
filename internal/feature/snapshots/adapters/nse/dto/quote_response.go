// Package dto defines the wire format of the NSE quote API.
package dto

// QuoteResponse is the body of GET /api/NextApi/apiClient/GetQuoteApi.
type QuoteResponse struct {
	EquityResponse []EquityResponse `json:"equityResponse"`
}

// EquityResponse is one equity's quote block.
type EquityResponse struct {
	MetaData  MetaData  `json:"metaData"`
	PriceInfo PriceInfo `json:"priceInfo"`
	TradeInfo TradeInfo `json:"tradeInfo"`
}

type MetaData struct {
	ClosePrice float64 `json:"closePrice"`
	PChange    float64 `json:"pChange"`
}

type PriceInfo struct {
	YearHigh float64 `json:"yearHigh"`
	YearLow  float64 `json:"yearLow"`
}

type TradeInfo struct {
	QuantityTraded           float64 `json:"quantitytraded"`
	DeliveryQuantity         float64 `json:"deliveryquantity"`
	DeliveryToTradedQuantity float64 `json:"deliveryToTradedQuantity"`
}
