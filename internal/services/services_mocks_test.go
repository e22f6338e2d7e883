package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cryptolio/backend/internal/models"
)

// ---- Mocks for the service and repository interfaces used in unit tests ----

type mockExchangeClient struct {
	candles []models.Candle
	price   *decimal.Decimal

	ohlcCalls  int
	priceCalls int
}

func (m *mockExchangeClient) GetHistoricalOHLC(ctx context.Context, symbol string, days, interval int) ([]models.Candle, error) {
	m.ohlcCalls++
	return m.candles, nil
}

func (m *mockExchangeClient) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	m.priceCalls++
	return m.price, nil
}

func (m *mockExchangeClient) SymbolExists(ctx context.Context, symbol string) bool {
	return len(m.candles) > 0
}

type mockMarketDataRepo struct {
	stored *models.OpeningAverage

	createdAverages []*models.OpeningAverage
	createdPrices   []*models.MarketPrice
	history         []*models.MarketPrice

	latestErr      error
	createAvgErr   error
	createPriceErr error
}

func (m *mockMarketDataRepo) LatestOpeningAverage(ctx context.Context, symbol string) (*models.OpeningAverage, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	return m.stored, nil
}

func (m *mockMarketDataRepo) CreateOpeningAverage(ctx context.Context, avg *models.OpeningAverage) error {
	if m.createAvgErr != nil {
		return m.createAvgErr
	}
	m.createdAverages = append(m.createdAverages, avg)
	return nil
}

func (m *mockMarketDataRepo) CreateMarketPrice(ctx context.Context, price *models.MarketPrice) error {
	if m.createPriceErr != nil {
		return m.createPriceErr
	}
	m.createdPrices = append(m.createdPrices, price)
	return nil
}

func (m *mockMarketDataRepo) ListMarketPrices(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error) {
	if limit < len(m.history) {
		return m.history[:limit], nil
	}
	return m.history, nil
}

type mockPortfolioRepo struct {
	results []*models.PortfolioResult
	logs    []*models.PortfolioLog

	createResultErr error
	createLogErr    error
}

func (m *mockPortfolioRepo) CreateResultWithLog(ctx context.Context, result *models.PortfolioResult, log *models.PortfolioLog) error {
	if m.createResultErr != nil {
		return m.createResultErr
	}
	result.ID = uint(len(m.results) + 1)
	m.results = append(m.results, result)
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockPortfolioRepo) CreateLog(ctx context.Context, log *models.PortfolioLog) error {
	if m.createLogErr != nil {
		return m.createLogErr
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockPortfolioRepo) GetResult(ctx context.Context, id uint) (*models.PortfolioResult, error) {
	for _, result := range m.results {
		if result.ID == id {
			return result, nil
		}
	}
	return nil, nil
}

func (m *mockPortfolioRepo) ListResults(ctx context.Context, symbol string, limit int) ([]*models.PortfolioResult, error) {
	return m.results, nil
}

func (m *mockPortfolioRepo) ListLogs(ctx context.Context, symbol string, limit int) ([]*models.PortfolioLog, error) {
	return m.logs, nil
}

func (m *mockPortfolioRepo) logActions() []string {
	actions := make([]string, 0, len(m.logs))
	for _, log := range m.logs {
		actions = append(actions, log.Action)
	}
	return actions
}

type mockMarketDataService struct {
	opening *decimal.Decimal
	current *decimal.Decimal

	openingErr error
	currentErr error

	openingCalls int
	currentCalls int
}

func (m *mockMarketDataService) GetOpeningAverage(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	m.openingCalls++
	return m.opening, m.openingErr
}

func (m *mockMarketDataService) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	m.currentCalls++
	return m.current, m.currentErr
}

func (m *mockMarketDataService) GetPriceHistory(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error) {
	return nil, nil
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
