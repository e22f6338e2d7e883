package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cryptolio/backend/internal/cache"
	apperrors "github.com/cryptolio/backend/internal/errors"
	"github.com/cryptolio/backend/internal/models"
	"github.com/cryptolio/backend/internal/repositories"
)

const (
	// Opening averages are a slow-moving cost basis recomputed from a month
	// of history, so they cache long. Current prices must track the market
	// and cache for one minute only.
	openingAverageTTL = time.Hour
	currentPriceTTL   = 60 * time.Second

	openingAverageKeyFormat = "opening_avg:%s"
	currentPriceKeyFormat   = "current_price:%s"

	// minOpeningCandles is the number of leading candles averaged into the
	// opening reference price. Fewer candles means insufficient data.
	minOpeningCandles = 4
)

type marketDataService struct {
	client ExchangeClient
	cache  cache.Store
	repo   repositories.MarketDataRepository
	logger *zap.Logger
}

// NewMarketDataService creates the cache-aside market data layer.
func NewMarketDataService(client ExchangeClient, store cache.Store, repo repositories.MarketDataRepository, logger *zap.Logger) MarketDataService {
	return &marketDataService{
		client: client,
		cache:  store,
		repo:   repo,
		logger: logger,
	}
}

// GetOpeningAverage resolves the opening reference price for a symbol:
// fast cache, then the latest stored row, then a fresh 30-day fetch from the
// exchange. A successful fetch appends an OpeningAverage row and warms the
// cache. Returns nil when the exchange has insufficient data.
func (s *marketDataService) GetOpeningAverage(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	symbol = strings.ToUpper(symbol)
	cacheKey := fmt.Sprintf(openingAverageKeyFormat, symbol)

	if value := s.cacheLookup(ctx, cacheKey); value != nil {
		s.logger.Debug("cache hit: opening average", zap.String("symbol", symbol))
		return value, nil
	}

	stored, err := s.repo.LatestOpeningAverage(ctx, symbol)
	if err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}
	if stored != nil {
		s.cacheWrite(ctx, cacheKey, stored.Average, openingAverageTTL)
		return &stored.Average, nil
	}

	s.logger.Info("fetching opening average from exchange", zap.String("symbol", symbol))

	candles, err := s.client.GetHistoricalOHLC(ctx, symbol, DefaultOHLCDays, DefaultOHLCInterval)
	if err != nil {
		return nil, apperrors.NewExternalService("exchange", err)
	}
	if len(candles) < minOpeningCandles {
		s.logger.Warn("insufficient candle data", zap.String("symbol", symbol), zap.Int("candles", len(candles)))
		return nil, nil
	}

	// Average the closes of the opening candles, oldest first.
	sum := decimal.Zero
	for _, candle := range candles[:minOpeningCandles] {
		sum = sum.Add(decimal.NewFromFloat(candle.Close))
	}
	average := sum.Div(decimal.NewFromInt(minOpeningCandles))

	if err := s.repo.CreateOpeningAverage(ctx, &models.OpeningAverage{Symbol: symbol, Average: average}); err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}

	s.cacheWrite(ctx, cacheKey, average, openingAverageTTL)
	return &average, nil
}

// GetCurrentPrice resolves the latest price for a symbol from the fast cache
// or the exchange. Every fetch that reaches the exchange appends a
// MarketPrice snapshot. Returns nil when the symbol has no data.
func (s *marketDataService) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	symbol = strings.ToUpper(symbol)
	cacheKey := fmt.Sprintf(currentPriceKeyFormat, symbol)

	if value := s.cacheLookup(ctx, cacheKey); value != nil {
		s.logger.Debug("cache hit: current price", zap.String("symbol", symbol))
		return value, nil
	}

	price, err := s.client.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return nil, apperrors.NewExternalService("exchange", err)
	}
	if price == nil {
		s.logger.Warn("no current price", zap.String("symbol", symbol))
		return nil, nil
	}

	if err := s.repo.CreateMarketPrice(ctx, &models.MarketPrice{Symbol: symbol, Price: *price}); err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}

	s.cacheWrite(ctx, cacheKey, *price, currentPriceTTL)
	return price, nil
}

// GetPriceHistory returns up to limit stored snapshots, most recent first.
// Read-only; the cache is not consulted.
func (s *marketDataService) GetPriceHistory(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error) {
	if limit <= 0 {
		limit = 100
	}
	prices, err := s.repo.ListMarketPrices(ctx, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, apperrors.NewExternalService("persistent store", err)
	}
	return prices, nil
}

// cacheLookup returns the cached decimal for key, or nil on miss. Cache
// backend failures and unparseable values degrade to a miss: a stale or lost
// entry only costs one extra downstream fetch.
func (s *marketDataService) cacheLookup(ctx context.Context, key string) *decimal.Decimal {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Warn("unparseable cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &value
}

// cacheWrite is best-effort; a failed write is logged and ignored.
func (s *marketDataService) cacheWrite(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value.String(), ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
