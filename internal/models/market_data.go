package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Candle is a single OHLC data point from the exchange. Candles are
// ephemeral: they are parsed from the exchange response, consumed by the
// market data service and never persisted.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// OpeningAverage is a computed reference price for a symbol, derived from the
// opening month of a 30-day candle window. Rows are append-only; consumers
// always take the latest by CreatedAt.
type OpeningAverage struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Symbol    string          `json:"symbol" gorm:"size:10;index:idx_opening_symbol_created,priority:1"`
	Average   decimal.Decimal `json:"average" gorm:"type:numeric(20,8)"`
	CreatedAt time.Time       `json:"created_at" gorm:"index:idx_opening_symbol_created,priority:2"`
}

func (OpeningAverage) TableName() string { return "opening_averages" }

func (o *OpeningAverage) Validate() error {
	if o.Symbol == "" {
		return errors.New("symbol is required")
	}
	if o.Average.IsNegative() {
		return errors.New("average must not be negative")
	}
	return nil
}

// MarketPrice is an append-only snapshot of a current-price fetch. Every
// successful fetch that reaches the exchange appends one row.
type MarketPrice struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Symbol    string           `json:"symbol" gorm:"size:10;index:idx_price_symbol_ts,priority:1"`
	Price     decimal.Decimal  `json:"price" gorm:"type:numeric(20,8)"`
	Volume    *decimal.Decimal `json:"volume,omitempty" gorm:"type:numeric(20,8)"`
	Timestamp time.Time        `json:"timestamp" gorm:"autoCreateTime;index:idx_price_symbol_ts,priority:2"`
}

func (MarketPrice) TableName() string { return "market_prices" }

func (p *MarketPrice) Validate() error {
	if p.Symbol == "" {
		return errors.New("symbol is required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}
