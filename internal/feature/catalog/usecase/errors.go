// Package usecase implements the business logic for the symbol/index catalog.
package usecase

import "errors"

// ErrInvalidCSV is the sentinel wrapped by every constituent file validation
// failure (missing columns, blank or duplicate symbols, blank company names,
// empty file). A file that fails validation causes zero database writes.
var ErrInvalidCSV = errors.New("invalid constituent csv")
