package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/cryptolio/backend/internal/errors"
	"github.com/cryptolio/backend/internal/models"
)

func newPortfolioService(market *mockMarketDataService, repo *mockPortfolioRepo) PortfolioService {
	return NewPortfolioService(market, NewPortfolioCalculator(), repo, zap.NewNop())
}

func TestProcessRequest_Success(t *testing.T) {
	market := &mockMarketDataService{
		opening: decimalPtr("50000"),
		current: decimalPtr("60000"),
	}
	repo := &mockPortfolioRepo{}
	service := newPortfolioService(market, repo)

	result, err := service.ProcessRequest(context.Background(), " btc ", decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "BTC", result.Symbol)
	assert.True(t, result.NumberCoins.Equal(decimal.RequireFromString("0.02")))
	assert.True(t, result.Profit.Equal(decimal.NewFromInt(200)))
	assert.True(t, result.GrowthFactor.Equal(decimal.RequireFromString("0.2")))
	assert.True(t, result.Lambos.Equal(decimal.RequireFromString("0.001")))

	// Audit trail: one started row plus the completion row written with the
	// result.
	assert.Equal(t, []string{"process_request_started", "process_request_completed"}, repo.logActions())
	require.Len(t, repo.results, 1)
}

func TestProcessRequest_LossYieldsZeroLambos(t *testing.T) {
	market := &mockMarketDataService{
		opening: decimalPtr("60000"),
		current: decimalPtr("50000"),
	}
	repo := &mockPortfolioRepo{}
	service := newPortfolioService(market, repo)

	result, err := service.ProcessRequest(context.Background(), "BTC", decimal.NewFromInt(1000))
	require.NoError(t, err)

	assert.True(t, result.Profit.IsNegative())
	assert.True(t, result.Lambos.IsZero())

	growth, _ := result.GrowthFactor.Float64()
	assert.InDelta(t, -0.166666, growth, 0.0001)
}

func TestProcessRequest_UnknownSymbol(t *testing.T) {
	market := &mockMarketDataService{} // both prices absent
	repo := &mockPortfolioRepo{}
	service := newPortfolioService(market, repo)

	_, err := service.ProcessRequest(context.Background(), "ZZZZ", decimal.NewFromInt(1000))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "ZZZZ")

	// Exactly one started row, no error row, no result.
	assert.Equal(t, []string{"process_request_started"}, repo.logActions())
	assert.Empty(t, repo.results)
}

func TestProcessRequest_ValidationBeforeAnyFetch(t *testing.T) {
	market := &mockMarketDataService{
		opening: decimalPtr("50000"),
		current: decimalPtr("60000"),
	}
	repo := &mockPortfolioRepo{}
	service := newPortfolioService(market, repo)

	_, err := service.ProcessRequest(context.Background(), "BTC", decimal.NewFromInt(2000000))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	assert.Equal(t, 0, market.openingCalls, "out-of-bounds investment must not reach the market layer")
	assert.Equal(t, 0, market.currentCalls)
	assert.Equal(t, []string{"process_request_started"}, repo.logActions())
	assert.Empty(t, repo.results)
}

func TestProcessRequest_UnexpectedFailureWritesErrorRow(t *testing.T) {
	market := &mockMarketDataService{
		opening: decimalPtr("50000"),
		current: decimalPtr("60000"),
	}
	repo := &mockPortfolioRepo{createResultErr: errors.New("connection reset")}
	service := newPortfolioService(market, repo)

	_, err := service.ProcessRequest(context.Background(), "BTC", decimal.NewFromInt(1000))
	require.Error(t, err)

	// The result write failed, but the forensic trail survives: started row
	// plus a best-effort error row.
	assert.Equal(t, []string{"process_request_started", "process_request_error"}, repo.logActions())
	assert.Empty(t, repo.results)

	errorLog := repo.logs[1]
	assert.Equal(t, models.LogLevelError, errorLog.Level)
	assert.Contains(t, errorLog.Metadata["error"], "connection reset")
}

func TestProcessRequest_ExternalServiceErrorPropagates(t *testing.T) {
	market := &mockMarketDataService{
		openingErr: apperrors.NewExternalService("exchange", errors.New("timeout")),
	}
	repo := &mockPortfolioRepo{}
	service := newPortfolioService(market, repo)

	_, err := service.ProcessRequest(context.Background(), "BTC", decimal.NewFromInt(1000))
	require.Error(t, err)
	assert.True(t, apperrors.IsExternalService(err))

	// External failures are system faults and get an error audit row.
	assert.Equal(t, []string{"process_request_started", "process_request_error"}, repo.logActions())
}

func TestGetResult_NotFound(t *testing.T) {
	service := newPortfolioService(&mockMarketDataService{}, &mockPortfolioRepo{})

	_, err := service.GetResult(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
