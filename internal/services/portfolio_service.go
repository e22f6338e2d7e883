package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/cryptolio/backend/internal/errors"
	"github.com/cryptolio/backend/internal/models"
	"github.com/cryptolio/backend/internal/repositories"
)

type portfolioService struct {
	market     MarketDataService
	calculator *PortfolioCalculator
	repo       repositories.PortfolioRepository
	logger     *zap.Logger
}

// NewPortfolioService creates the orchestrator for portfolio calculations.
func NewPortfolioService(market MarketDataService, calculator *PortfolioCalculator, repo repositories.PortfolioRepository, logger *zap.Logger) PortfolioService {
	return &portfolioService{
		market:     market,
		calculator: calculator,
		repo:       repo,
		logger:     logger,
	}
}

// ProcessRequest runs the main pipeline: validate, fetch both prices,
// calculate, persist result and completion log atomically.
//
// Audit rows for "started" and "error" are written outside the atomic block
// on purpose: they are the forensic trail and must survive a rollback of the
// result write. Validation and not-found failures propagate unchanged with
// no additional audit row; anything unexpected writes an error row
// best-effort and then propagates.
func (s *portfolioService) ProcessRequest(ctx context.Context, symbol string, investment decimal.Decimal) (result *models.PortfolioResult, err error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	s.writeLog(ctx, symbol, "process_request_started", models.LogLevelInfo, models.JSONMap{
		"investment": investment.String(),
	})

	defer func() {
		if err != nil && !apperrors.IsValidation(err) && !apperrors.IsNotFound(err) {
			s.writeLog(ctx, symbol, "process_request_error", models.LogLevelError, models.JSONMap{
				"error": err.Error(),
			})
			s.logger.Error("unexpected error processing request",
				zap.String("symbol", symbol), zap.Error(err))
		}
	}()

	// Reject out-of-bounds investments before spending any exchange calls.
	if err = s.calculator.ValidateInvestment(investment); err != nil {
		return nil, err
	}

	openingPrice, err := s.market.GetOpeningAverage(ctx, symbol)
	if err != nil {
		return nil, err
	}
	currentPrice, err := s.market.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if openingPrice == nil || currentPrice == nil {
		return nil, apperrors.NewNotFound(fmt.Sprintf("price data for %s", symbol))
	}

	metrics, err := s.calculator.Calculate(investment, *openingPrice, *currentPrice)
	if err != nil {
		return nil, err
	}

	result = &models.PortfolioResult{
		Symbol:       symbol,
		Investment:   investment,
		NumberCoins:  metrics.NumberCoins,
		Profit:       metrics.Profit,
		GrowthFactor: metrics.GrowthFactor,
		Lambos:       metrics.Lambos,
	}
	completedLog := &models.PortfolioLog{
		Symbol: symbol,
		Action: "process_request_completed",
		Level:  models.LogLevelInfo,
		Metadata: models.JSONMap{
			"profit": metrics.Profit.String(),
		},
	}

	if err = s.repo.CreateResultWithLog(ctx, result, completedLog); err != nil {
		return nil, err
	}

	s.logger.Info("portfolio calculated",
		zap.String("symbol", symbol),
		zap.String("profit", result.Profit.StringFixed(2)),
		zap.String("roi_percent", result.ROIPercentage().StringFixed(1)))

	return result, nil
}

func (s *portfolioService) GetResults(ctx context.Context, symbol string, limit int) ([]*models.PortfolioResult, error) {
	if limit <= 0 {
		limit = 100
	}
	results, err := s.repo.ListResults(ctx, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}
	return results, nil
}

func (s *portfolioService) GetResult(ctx context.Context, id uint) (*models.PortfolioResult, error) {
	result, err := s.repo.GetResult(ctx, id)
	if err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}
	if result == nil {
		return nil, apperrors.NewNotFound(fmt.Sprintf("portfolio result %d", id))
	}
	return result, nil
}

func (s *portfolioService) GetLogs(ctx context.Context, symbol string, limit int) ([]*models.PortfolioLog, error) {
	if limit <= 0 {
		limit = 100
	}
	logs, err := s.repo.ListLogs(ctx, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}
	return logs, nil
}

// writeLog appends a best-effort audit row. Failures are logged locally and
// never abort the request.
func (s *portfolioService) writeLog(ctx context.Context, symbol, action, level string, metadata models.JSONMap) {
	log := &models.PortfolioLog{
		Symbol:   symbol,
		Action:   action,
		Level:    level,
		Metadata: metadata,
	}
	if err := s.repo.CreateLog(ctx, log); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("symbol", symbol), zap.String("action", action), zap.Error(err))
	}
}
