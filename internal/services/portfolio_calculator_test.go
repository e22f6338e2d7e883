package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cryptolio/backend/internal/errors"
)

func TestValidateInvestment_Bounds(t *testing.T) {
	calc := NewPortfolioCalculator()

	// Inclusive boundaries accept.
	assert.NoError(t, calc.ValidateInvestment(decimal.RequireFromString("0.01")))
	assert.NoError(t, calc.ValidateInvestment(decimal.RequireFromString("1000000.00")))

	// Just outside rejects.
	err := calc.ValidateInvestment(decimal.RequireFromString("0.009999"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = calc.ValidateInvestment(decimal.RequireFromString("1000000.01"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCalculate_ProfitScenario(t *testing.T) {
	calc := NewPortfolioCalculator()

	metrics, err := calc.Calculate(
		decimal.NewFromInt(1000),
		decimal.NewFromInt(50000),
		decimal.NewFromInt(60000),
	)
	require.NoError(t, err)

	assert.True(t, metrics.NumberCoins.Equal(decimal.RequireFromString("0.02")),
		"number_coins = %s", metrics.NumberCoins)
	assert.True(t, metrics.Profit.Equal(decimal.NewFromInt(200)),
		"profit = %s", metrics.Profit)
	assert.True(t, metrics.GrowthFactor.Equal(decimal.RequireFromString("0.2")),
		"growth_factor = %s", metrics.GrowthFactor)
	assert.True(t, metrics.Lambos.Equal(decimal.RequireFromString("0.001")),
		"lambos = %s", metrics.Lambos)
}

func TestCalculate_LossScenario(t *testing.T) {
	calc := NewPortfolioCalculator()

	metrics, err := calc.Calculate(
		decimal.NewFromInt(1000),
		decimal.NewFromInt(60000),
		decimal.NewFromInt(50000),
	)
	require.NoError(t, err)

	assert.True(t, metrics.Profit.IsNegative(), "profit = %s", metrics.Profit)
	assert.True(t, metrics.Lambos.IsZero(), "lambos = %s", metrics.Lambos)

	// growth_factor = 50000/60000 - 1 = -1/6
	growth, _ := metrics.GrowthFactor.Float64()
	assert.InDelta(t, -0.166666, growth, 0.0001)
}

func TestCalculate_BreakEvenGrowthFactorIsZero(t *testing.T) {
	calc := NewPortfolioCalculator()

	// 1000/42000 is non-terminating, so the coin count is rounded and the
	// profit carries a tiny residual. The growth factor must still be
	// exactly zero whenever the two prices are equal.
	residual := decimal.RequireFromString("0.000000001")

	for _, investment := range []int64{1, 500, 1000, 999999} {
		metrics, err := calc.Calculate(
			decimal.NewFromInt(investment),
			decimal.NewFromInt(42000),
			decimal.NewFromInt(42000),
		)
		require.NoError(t, err)
		assert.True(t, metrics.GrowthFactor.IsZero(),
			"growth_factor should be zero at break-even, got %s", metrics.GrowthFactor)
		assert.True(t, metrics.Profit.Abs().LessThan(residual),
			"profit should be negligible at break-even, got %s", metrics.Profit)
		assert.True(t, metrics.Lambos.LessThan(residual),
			"lambos = %s", metrics.Lambos)
	}
}

func TestCalculate_LambosNeverNegative(t *testing.T) {
	calc := NewPortfolioCalculator()

	metrics, err := calc.Calculate(
		decimal.NewFromInt(1000),
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
	)
	require.NoError(t, err)
	assert.True(t, metrics.Lambos.IsZero())

	metrics, err = calc.Calculate(
		decimal.NewFromInt(1000000),
		decimal.NewFromInt(100),
		decimal.NewFromInt(200),
	)
	require.NoError(t, err)
	// profit = 1_000_000, lambos = 5
	assert.True(t, metrics.Lambos.Equal(decimal.NewFromInt(5)), "lambos = %s", metrics.Lambos)
}

func TestCalculate_RejectsNonPositivePrices(t *testing.T) {
	calc := NewPortfolioCalculator()

	_, err := calc.Calculate(decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(100))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = calc.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(100), decimal.NewFromInt(-5))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
