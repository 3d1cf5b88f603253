// Package entity defines the domain models for the snapshots feature.
package entity

// EODQuote is the end-of-day metric set the external provider returns for one
// symbol. Close/ChangePct/TotalVolume become the snapshot's typed columns; the
// remaining fields go into the snapshot's extension map.
type EODQuote struct {
	Close          float64
	DayChangePct   float64
	YearHigh       float64
	YearLow        float64
	TotalVolume    float64
	DeliveryVolume float64
	DeliveryPct    float64
}
