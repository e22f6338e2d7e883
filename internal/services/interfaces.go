package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cryptolio/backend/internal/models"
)

// ExchangeClient fetches OHLC candle data from an external exchange. All
// methods report "no data" (unknown symbol, empty result, provider error
// field, network failure) as a nil value with a nil error; a non-nil error is
// reserved for conditions outside that contract.
type ExchangeClient interface {
	GetHistoricalOHLC(ctx context.Context, symbol string, days, interval int) ([]models.Candle, error)
	GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error)
	SymbolExists(ctx context.Context, symbol string) bool
}

// MarketDataService serves prices through the two-level cache-aside protocol:
// fast cache, then persistent store, then the exchange. Absence is a nil
// decimal with a nil error; unexpected failures surface as external service
// errors.
type MarketDataService interface {
	GetOpeningAverage(ctx context.Context, symbol string) (*decimal.Decimal, error)
	GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error)
	GetPriceHistory(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error)
}

// PortfolioService orchestrates the main calculation pipeline and exposes
// read access to stored results and audit logs.
type PortfolioService interface {
	ProcessRequest(ctx context.Context, symbol string, investment decimal.Decimal) (*models.PortfolioResult, error)
	GetResults(ctx context.Context, symbol string, limit int) ([]*models.PortfolioResult, error)
	GetResult(ctx context.Context, id uint) (*models.PortfolioResult, error)
	GetLogs(ctx context.Context, symbol string, limit int) ([]*models.PortfolioLog, error)
}

// AnalyticsService exposes the toy COVID-impact predictor and report
// generation.
type AnalyticsService interface {
	GetCovidPrediction(ctx context.Context) (*CovidPrediction, error)
	GenerateReport(ctx context.Context, symbol string) (*models.AnalysisReport, error)
}
