package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"screener_backend/internal/domain/entity"
)

// 構成銘柄CSVの必須カラム
const (
	columnSymbol      = "Symbol"
	columnCompanyName = "Company Name"
)

// LoaderRepository abstracts the writes performed by the index loader.
// Transact runs fn against a transaction-scoped repository so a load is
// all-or-nothing.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LoaderRepository interface {
	UpsertIndex(ctx context.Context, name, description string) (entity.Index, bool, error)
	ResolveSymbol(ctx context.Context, ticker, name string) (entity.Symbol, error)
	ListConstituentSymbolIDs(ctx context.Context, indexID uint) (map[uint]struct{}, error)
	AddConstituent(ctx context.Context, indexID, symbolID uint) error
	Transact(ctx context.Context, fn func(LoaderRepository) error) error
}

// LoadResult は1回のカタログロードの結果です。
type LoadResult struct {
	Symbols         int
	NewConstituents int
	IndexCreated    bool
}

// constituentRow is one validated CSV row.
type constituentRow struct {
	Ticker string
	Name   string
}

// LoaderUsecase loads index membership from a constituent CSV file.
type LoaderUsecase struct {
	repo LoaderRepository
}

// NewLoaderUsecase creates a new LoaderUsecase with the given repository.
func NewLoaderUsecase(r LoaderRepository) *LoaderUsecase {
	return &LoaderUsecase{repo: r}
}

// LoadIndex はCSVからインデックス構成銘柄をロードします。
//  1. CSV全体を先に検証・パース（不正な行が1つでもあればDBには一切書き込まない）
//  2. インデックスをupsert（descriptionが変わっていれば更新）
//  3. 銘柄をresolve-or-create
//  4. 未登録の構成銘柄のみ weightage=NULL で追加
//
// 書き込みはすべて1トランザクションで行います。
func (u *LoaderUsecase) LoadIndex(ctx context.Context, indexName, description string, r io.Reader) (LoadResult, error) {
	rows, err := parseConstituentCSV(r)
	if err != nil {
		return LoadResult{}, err
	}

	var result LoadResult
	err = u.repo.Transact(ctx, func(repo LoaderRepository) error {
		idx, created, err := repo.UpsertIndex(ctx, indexName, description)
		if err != nil {
			return err
		}
		result.IndexCreated = created

		existing, err := repo.ListConstituentSymbolIDs(ctx, idx.ID)
		if err != nil {
			return err
		}

		for _, row := range rows {
			symbol, err := repo.ResolveSymbol(ctx, row.Ticker, row.Name)
			if err != nil {
				return err
			}
			result.Symbols++

			if _, ok := existing[symbol.ID]; ok {
				continue
			}
			if err := repo.AddConstituent(ctx, idx.ID, symbol.ID); err != nil {
				return err
			}
			result.NewConstituents++
		}
		return nil
	})
	if err != nil {
		return LoadResult{}, err
	}
	return result, nil
}

// parseConstituentCSV validates and parses the whole file before any write
// happens. Tickers are upper-cased; blank or duplicate symbols and blank
// company names reject the whole file.
func parseConstituentCSV(r io.Reader) ([]constituentRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	symbolCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case columnSymbol:
			symbolCol = i
		case columnCompanyName:
			nameCol = i
		}
	}
	if symbolCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("%w: missing required columns %q and/or %q",
			ErrInvalidCSV, columnSymbol, columnCompanyName)
	}

	seen := map[string]struct{}{}
	var rows []constituentRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}

		ticker := strings.ToUpper(strings.TrimSpace(record[symbolCol]))
		if ticker == "" {
			return nil, fmt.Errorf("%w: blank symbol on row %d", ErrInvalidCSV, len(rows)+2)
		}
		if _, dup := seen[ticker]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %s", ErrInvalidCSV, ticker)
		}

		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			return nil, fmt.Errorf("%w: missing company name for symbol %s", ErrInvalidCSV, ticker)
		}

		seen[ticker] = struct{}{}
		rows = append(rows, constituentRow{Ticker: ticker, Name: name})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid rows", ErrInvalidCSV)
	}
	return rows, nil
}
