package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPortfolioResult_ROIPercentage(t *testing.T) {
	result := &PortfolioResult{
		Investment: decimal.NewFromInt(1000),
		Profit:     decimal.NewFromInt(200),
	}
	assert.True(t, result.ROIPercentage().Equal(decimal.NewFromInt(20)))

	zero := &PortfolioResult{Profit: decimal.NewFromInt(200)}
	assert.True(t, zero.ROIPercentage().IsZero())
}

func TestPortfolioResult_RiskLevel(t *testing.T) {
	tests := []struct {
		growth string
		want   string
	}{
		{"3", "HIGH"},
		{"2.01", "HIGH"},
		{"2", "MEDIUM"},
		{"0.51", "MEDIUM"},
		{"0.5", "LOW"},
		{"0", "LOW"},
		{"-0.3", "LOW"},
	}
	for _, tt := range tests {
		result := &PortfolioResult{GrowthFactor: decimal.RequireFromString(tt.growth)}
		assert.Equal(t, tt.want, result.RiskLevel(), "growth_factor %s", tt.growth)
	}
}

func TestPortfolioResult_CanBuyLambo(t *testing.T) {
	assert.False(t, (&PortfolioResult{Lambos: decimal.RequireFromString("0.99")}).CanBuyLambo())
	assert.True(t, (&PortfolioResult{Lambos: decimal.NewFromInt(1)}).CanBuyLambo())
	assert.True(t, (&PortfolioResult{Lambos: decimal.RequireFromString("2.5")}).CanBuyLambo())
}

func TestPortfolioResult_Validate(t *testing.T) {
	valid := &PortfolioResult{
		Symbol:     "BTC",
		Investment: decimal.NewFromInt(100),
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&PortfolioResult{Investment: decimal.NewFromInt(100)}).Validate())
	assert.Error(t, (&PortfolioResult{Symbol: "BTC", Investment: decimal.Zero}).Validate())
	assert.Error(t, (&PortfolioResult{
		Symbol:     "BTC",
		Investment: decimal.NewFromInt(100),
		Lambos:     decimal.NewFromInt(-1),
	}).Validate())
}

func TestPortfolioLog_Validate(t *testing.T) {
	valid := &PortfolioLog{Symbol: "BTC", Action: "process_request_started", Level: LogLevelInfo}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&PortfolioLog{Action: "x", Level: LogLevelInfo}).Validate())
	assert.Error(t, (&PortfolioLog{Symbol: "BTC", Level: LogLevelInfo}).Validate())
	assert.Error(t, (&PortfolioLog{Symbol: "BTC", Action: "x", Level: "TRACE"}).Validate())
}
