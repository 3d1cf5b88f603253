// Package usecase implements the business logic for screener alert ingestion.
package usecase

import "errors"

var (
	// ErrNoSymbols is returned when the stocks field contains no symbols after trimming.
	ErrNoSymbols = errors.New("alert payload contains no symbols")

	// ErrPriceCountMismatch is returned when trigger_prices is present but its
	// entry count does not match the number of symbols.
	ErrPriceCountMismatch = errors.New("trigger price count does not match symbol count")
)
