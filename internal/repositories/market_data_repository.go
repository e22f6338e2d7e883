package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptolio/backend/internal/db"
	"github.com/cryptolio/backend/internal/models"
)

type marketDataRepository struct {
	db *db.DB
}

// NewMarketDataRepository creates a market data repository backed by the
// relational store.
func NewMarketDataRepository(database *db.DB) MarketDataRepository {
	return &marketDataRepository{db: database}
}

func (r *marketDataRepository) LatestOpeningAverage(ctx context.Context, symbol string) (*models.OpeningAverage, error) {
	query := `
		SELECT id, symbol, average, created_at
		FROM opening_averages
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT 1`

	sqlDB, err := r.db.GetSQLDB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	avg := &models.OpeningAverage{}
	err = sqlDB.QueryRowContext(ctx, query, symbol).Scan(
		&avg.ID, &avg.Symbol, &avg.Average, &avg.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // no stored average for this symbol
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest opening average: %w", err)
	}
	return avg, nil
}

func (r *marketDataRepository) CreateOpeningAverage(ctx context.Context, avg *models.OpeningAverage) error {
	if err := avg.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO opening_averages (symbol, average, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	sqlDB, err := r.db.GetSQLDB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}

	avg.CreatedAt = time.Now()
	if err := sqlDB.QueryRowContext(ctx, query, avg.Symbol, avg.Average, avg.CreatedAt).Scan(&avg.ID); err != nil {
		return fmt.Errorf("failed to create opening average: %w", err)
	}
	return nil
}

func (r *marketDataRepository) CreateMarketPrice(ctx context.Context, price *models.MarketPrice) error {
	if err := price.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO market_prices (symbol, price, volume, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	sqlDB, err := r.db.GetSQLDB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}

	price.Timestamp = time.Now()
	if err := sqlDB.QueryRowContext(ctx, query, price.Symbol, price.Price, price.Volume, price.Timestamp).Scan(&price.ID); err != nil {
		return fmt.Errorf("failed to create market price: %w", err)
	}
	return nil
}

func (r *marketDataRepository) ListMarketPrices(ctx context.Context, symbol string, limit int) ([]*models.MarketPrice, error) {
	query := `
		SELECT id, symbol, price, volume, timestamp
		FROM market_prices
		WHERE symbol = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	sqlDB, err := r.db.GetSQLDB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	rows, err := sqlDB.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list market prices: %w", err)
	}
	defer rows.Close()

	var prices []*models.MarketPrice
	for rows.Next() {
		price := &models.MarketPrice{}
		var volume decimal.NullDecimal
		if err := rows.Scan(&price.ID, &price.Symbol, &price.Price, &volume, &price.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan market price: %w", err)
		}
		if volume.Valid {
			price.Volume = &volume.Decimal
		}
		prices = append(prices, price)
	}
	return prices, rows.Err()
}
