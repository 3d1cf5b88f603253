// Package dto defines the HTTP response shapes for the catalog feature.
package dto

import "github.com/guregu/null/v6"

// IndexItem is one index in the list response.
type IndexItem struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
}

// SymbolItem is one symbol in the list response.
type SymbolItem struct {
	ID       uint   `json:"id"`
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}
