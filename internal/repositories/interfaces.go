package repositories

import (
	"context"

	"github.com/cryptolio/backend/internal/models"
)

// MarketDataRepository persists market data rows. OpeningAverage and
// MarketPrice are append-only; reads always take the most recent rows.
type MarketDataRepository interface {
	// LatestOpeningAverage returns the most recent opening average for the
	// symbol, or nil without error when none exists.
	LatestOpeningAverage(ctx context.Context, symbol string) (*models.OpeningAverage, error)
	CreateOpeningAverage(ctx context.Context, avg *models.OpeningAverage) error
	CreateMarketPrice(ctx context.Context, price *models.MarketPrice) error
	// ListMarketPrices returns up to limit snapshots for the symbol,
	// most recent first.
	ListMarketPrices(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error)
}

// PortfolioRepository persists calculation results and audit logs.
type PortfolioRepository interface {
	// CreateResultWithLog writes the result and its completion log in one
	// transaction: either both rows exist afterwards or neither does.
	CreateResultWithLog(ctx context.Context, result *models.PortfolioResult, log *models.PortfolioLog) error
	// CreateLog appends a single audit row outside any transaction. Used for
	// the best-effort started/error rows that must survive a rollback of the
	// main write.
	CreateLog(ctx context.Context, log *models.PortfolioLog) error
	GetResult(ctx context.Context, id uint) (*models.PortfolioResult, error)
	ListResults(ctx context.Context, symbol string, limit int) ([]*models.PortfolioResult, error)
	ListLogs(ctx context.Context, symbol string, limit int) ([]*models.PortfolioLog, error)
}

// AnalyticsRepository persists predictions and analysis reports.
type AnalyticsRepository interface {
	CreatePrediction(ctx context.Context, prediction *models.Prediction) error
	CreateReport(ctx context.Context, report *models.AnalysisReport) error
}
