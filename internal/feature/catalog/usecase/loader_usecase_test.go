package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener_backend/internal/domain/entity"
)

// mockLoaderRepository is a mock implementation of the LoaderRepository interface.
type mockLoaderRepository struct {
	UpsertIndexFunc func(ctx context.Context, name, description string) (entity.Index, bool, error)

	existing      map[uint]struct{}
	nextSymbolID  uint
	symbols       map[string]entity.Symbol
	constituents  [][2]uint
	TransactCalls int
}

func newMockLoaderRepository() *mockLoaderRepository {
	return &mockLoaderRepository{
		existing: map[uint]struct{}{},
		symbols:  map[string]entity.Symbol{},
	}
}

func (m *mockLoaderRepository) UpsertIndex(ctx context.Context, name, description string) (entity.Index, bool, error) {
	if m.UpsertIndexFunc != nil {
		return m.UpsertIndexFunc(ctx, name, description)
	}
	return entity.Index{ID: 1, Name: name}, true, nil
}

func (m *mockLoaderRepository) ResolveSymbol(ctx context.Context, ticker, name string) (entity.Symbol, error) {
	if s, ok := m.symbols[ticker]; ok {
		return s, nil
	}
	m.nextSymbolID++
	s := entity.Symbol{ID: m.nextSymbolID, Ticker: ticker, Name: name}
	m.symbols[ticker] = s
	return s, nil
}

func (m *mockLoaderRepository) ListConstituentSymbolIDs(ctx context.Context, indexID uint) (map[uint]struct{}, error) {
	return m.existing, nil
}

func (m *mockLoaderRepository) AddConstituent(ctx context.Context, indexID, symbolID uint) error {
	m.constituents = append(m.constituents, [2]uint{indexID, symbolID})
	return nil
}

func (m *mockLoaderRepository) Transact(ctx context.Context, fn func(LoaderRepository) error) error {
	m.TransactCalls++
	return fn(m)
}

func TestLoaderUsecase_LoadIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success: loads symbols and constituents", func(t *testing.T) {
		t.Parallel()
		repo := newMockLoaderRepository()
		uc := NewLoaderUsecase(repo)

		csv := "Symbol,Company Name\ntcs,Tata Consultancy Services\nINFY,Infosys\n"
		result, err := uc.LoadIndex(ctx, "NIFTY50", "NIFTY 50 Index", strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, 2, result.Symbols)
		assert.Equal(t, 2, result.NewConstituents)
		assert.True(t, result.IndexCreated)
		assert.Contains(t, repo.symbols, "TCS", "tickers are upper-cased")
	})

	t.Run("success: existing constituents are skipped", func(t *testing.T) {
		t.Parallel()
		repo := newMockLoaderRepository()
		// TCSは既に構成銘柄として登録済み
		repo.symbols["TCS"] = entity.Symbol{ID: 7, Ticker: "TCS"}
		repo.nextSymbolID = 7
		repo.existing[7] = struct{}{}
		uc := NewLoaderUsecase(repo)

		csv := "Symbol,Company Name\nTCS,Tata Consultancy Services\nINFY,Infosys\n"
		result, err := uc.LoadIndex(ctx, "NIFTY50", "NIFTY 50 Index", strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, 2, result.Symbols)
		assert.Equal(t, 1, result.NewConstituents, "only INFY is new")
	})

	t.Run("failure cases reject the file before any write", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			csv  string
		}{
			{name: "missing required columns", csv: "Ticker,Name\nTCS,Tata\n"},
			{name: "blank symbol", csv: "Symbol,Company Name\n  ,ignored\nTCS,Tata\n"},
			{name: "duplicate symbol", csv: "Symbol,Company Name\nTCS,Tata\nTCS,Tata again\n"},
			{name: "blank company name", csv: "Symbol,Company Name\nTCS,  \n"},
			{name: "no valid rows", csv: "Symbol,Company Name\n"},
			{name: "empty file", csv: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				repo := newMockLoaderRepository()
				uc := NewLoaderUsecase(repo)

				_, err := uc.LoadIndex(ctx, "NIFTY50", "desc", strings.NewReader(tt.csv))
				assert.ErrorIs(t, err, ErrInvalidCSV)
				assert.Equal(t, 0, repo.TransactCalls, "no transaction for an invalid file")
			})
		}
	})

}
