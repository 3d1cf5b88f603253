// Package usecase implements the dashboard aggregation logic: joining index
// constituents, EOD snapshots, active screeners and daily screener statuses
// into one pivoted view for a trading date.
package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/guregu/null/v6"
	"gorm.io/datatypes"

	"screener_backend/internal/domain/entity"
)

// ConstituentRow is one index constituent joined to its symbol.
type ConstituentRow struct {
	Constituent entity.IndexConstituent
	Symbol      entity.Symbol
}

// DashboardRepository abstracts the reads the aggregator performs. FindIndexByName
// reports a missing index via the bool, not an error: an unknown index is a
// valid "no data yet" state.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type DashboardRepository interface {
	FindIndexByName(ctx context.Context, name string) (entity.Index, bool, error)
	ListConstituents(ctx context.Context, indexID uint) ([]ConstituentRow, error)
	ListSnapshots(ctx context.Context, tradeDate datatypes.Date, symbolIDs []uint) ([]entity.DailySymbolSnapshot, error)
	ListActiveScreeners(ctx context.Context) ([]entity.Screener, error)
	ListStatuses(ctx context.Context, tradeDate datatypes.Date, symbolIDs, screenerIDs []uint) ([]entity.DailyScreenerStatus, error)
}

// ScreenerRef identifies one active screener in the view.
type ScreenerRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DashboardRow is one constituent's pivoted row. Screeners maps the screener
// id (as a string key) to whether the symbol triggered it that day; absence of
// a status row means "did not trigger", never an error.
type DashboardRow struct {
	Symbol       string          `json:"symbol"`
	Weightage    null.Float      `json:"weightage"`
	DayClose     null.Float      `json:"day_close"`
	DayChangePct null.Float      `json:"day_change_pct"`
	Screeners    map[string]bool `json:"screeners"`
}

// DashboardView is the aggregated response for one (index, trade date) pair.
type DashboardView struct {
	Index     string         `json:"index"`
	Date      string         `json:"date"`
	Screeners []ScreenerRef  `json:"screeners"`
	Rows      []DashboardRow `json:"rows"`
}

// DashboardUsecase assembles the dashboard view.
type DashboardUsecase struct {
	repo DashboardRepository
}

// NewDashboardUsecase creates a new DashboardUsecase with the given repository.
func NewDashboardUsecase(r DashboardRepository) *DashboardUsecase {
	return &DashboardUsecase{repo: r}
}

// GetDashboard builds the pivoted view for indexName on tradeDate.
// An unknown index yields an empty view echoing the requested name.
func (u *DashboardUsecase) GetDashboard(ctx context.Context, indexName string, tradeDate time.Time) (DashboardView, error) {
	date := entity.TradeDateOf(tradeDate)
	view := DashboardView{
		Index:     indexName,
		Date:      entity.ISODate(date),
		Screeners: []ScreenerRef{},
		Rows:      []DashboardRow{},
	}

	idx, found, err := u.repo.FindIndexByName(ctx, indexName)
	if err != nil {
		return DashboardView{}, err
	}
	if !found {
		return view, nil
	}
	view.Index = idx.Name

	constituents, err := u.repo.ListConstituents(ctx, idx.ID)
	if err != nil {
		return DashboardView{}, err
	}

	symbolIDs := make([]uint, 0, len(constituents))
	for _, c := range constituents {
		symbolIDs = append(symbolIDs, c.Symbol.ID)
	}

	snapshots, err := u.repo.ListSnapshots(ctx, date, symbolIDs)
	if err != nil {
		return DashboardView{}, err
	}
	snapshotBySymbol := make(map[uint]entity.DailySymbolSnapshot, len(snapshots))
	for _, s := range snapshots {
		snapshotBySymbol[s.SymbolID] = s
	}

	screeners, err := u.repo.ListActiveScreeners(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	screenerIDs := make([]uint, 0, len(screeners))
	for _, s := range screeners {
		screenerIDs = append(screenerIDs, s.ID)
		view.Screeners = append(view.Screeners, ScreenerRef{ID: s.ID, Name: s.Name})
	}

	statuses, err := u.repo.ListStatuses(ctx, date, symbolIDs, screenerIDs)
	if err != nil {
		return DashboardView{}, err
	}
	triggered := make(map[statusKey]bool, len(statuses))
	for _, s := range statuses {
		triggered[statusKey{s.SymbolID, s.ScreenerID}] = true
	}

	for _, c := range constituents {
		row := DashboardRow{
			Symbol:    c.Symbol.Ticker,
			Weightage: c.Constituent.Weightage,
			Screeners: make(map[string]bool, len(screeners)),
		}
		if snap, ok := snapshotBySymbol[c.Symbol.ID]; ok {
			row.DayClose = snap.ClosePrice
			row.DayChangePct = snap.ChangePct
		}
		for _, s := range screeners {
			row.Screeners[strconv.FormatUint(uint64(s.ID), 10)] = triggered[statusKey{c.Symbol.ID, s.ID}]
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}

type statusKey struct {
	symbolID   uint
	screenerID uint
}
