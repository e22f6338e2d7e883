package services

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/cryptolio/backend/internal/errors"
)

// Hard admission-control bounds for the whole system. Not configurable.
var (
	MinInvestment = decimal.RequireFromString("0.01")
	MaxInvestment = decimal.NewFromInt(1000000)

	// LamboPrice is the fixed luxury-car divisor behind the affordability
	// metric.
	LamboPrice = decimal.NewFromInt(200000)
)

// PortfolioMetrics holds the outcome of a portfolio calculation. Values are
// exact decimals; rounding for display is the caller's concern.
type PortfolioMetrics struct {
	NumberCoins  decimal.Decimal
	Profit       decimal.Decimal
	GrowthFactor decimal.Decimal
	Lambos       decimal.Decimal
}

// PortfolioCalculator is the pure calculation core. No I/O, no state.
type PortfolioCalculator struct{}

func NewPortfolioCalculator() *PortfolioCalculator {
	return &PortfolioCalculator{}
}

// ValidateInvestment enforces the inclusive [0.01, 1000000] bounds.
func (c *PortfolioCalculator) ValidateInvestment(investment decimal.Decimal) error {
	if investment.LessThan(MinInvestment) {
		return apperrors.NewValidation("investment", "must be at least $"+MinInvestment.String())
	}
	if investment.GreaterThan(MaxInvestment) {
		return apperrors.NewValidation("investment", "cannot exceed $"+MaxInvestment.String())
	}
	return nil
}

// Calculate derives portfolio metrics from an investment and an
// opening/current price pair. The growth factor is zero-referenced: 0 means
// break-even, not 1. Lambos is never negative; losses yield exactly 0.
func (c *PortfolioCalculator) Calculate(investment, openingPrice, currentPrice decimal.Decimal) (*PortfolioMetrics, error) {
	if err := c.ValidateInvestment(investment); err != nil {
		return nil, err
	}
	if !openingPrice.IsPositive() {
		return nil, apperrors.NewValidation("opening_price", "must be positive")
	}
	if !currentPrice.IsPositive() {
		return nil, apperrors.NewValidation("current_price", "must be positive")
	}

	numberCoins := investment.Div(openingPrice)
	currentValue := numberCoins.Mul(currentPrice)
	profit := currentValue.Sub(investment)

	// Derived from the price ratio, not the rounded coin count, so equal
	// prices always give exactly zero.
	growthFactor := currentPrice.Div(openingPrice).Sub(decimal.NewFromInt(1))

	lambos := decimal.Zero
	if profit.IsPositive() {
		lambos = profit.Div(LamboPrice)
	}

	return &PortfolioMetrics{
		NumberCoins:  numberCoins,
		Profit:       profit,
		GrowthFactor: growthFactor,
		Lambos:       lambos,
	}, nil
}
