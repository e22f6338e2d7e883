package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Log severity levels for PortfolioLog rows.
const (
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// PortfolioResult is an immutable portfolio calculation outcome. The price
// pair used at creation time satisfies NumberCoins = Investment/opening and
// Profit = NumberCoins*current - Investment; the invariant is not
// re-validated afterward since prices drift.
type PortfolioResult struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Symbol         string          `json:"symbol" gorm:"size:10;index:idx_result_symbol_generated,priority:1"`
	Investment     decimal.Decimal `json:"investment" gorm:"type:numeric(12,2)"`
	NumberCoins    decimal.Decimal `json:"number_coins" gorm:"type:numeric(20,8)"`
	Profit         decimal.Decimal `json:"profit" gorm:"type:numeric(20,2)"`
	GrowthFactor   decimal.Decimal `json:"growth_factor" gorm:"type:numeric(10,4)"`
	Lambos         decimal.Decimal `json:"lambos" gorm:"type:numeric(10,2)"`
	GenerationDate time.Time       `json:"generation_date" gorm:"autoCreateTime;index:idx_result_symbol_generated,priority:2"`
}

func (PortfolioResult) TableName() string { return "portfolio_results" }

// ROIPercentage is the return on investment as a percentage.
func (r *PortfolioResult) ROIPercentage() decimal.Decimal {
	if r.Investment.IsZero() {
		return decimal.Zero
	}
	return r.Profit.Div(r.Investment).Mul(decimal.NewFromInt(100))
}

// IsProfitable reports whether the investment came out ahead.
func (r *PortfolioResult) IsProfitable() bool {
	return r.Profit.IsPositive()
}

// CanBuyLambo reports whether the profit covers at least one car.
func (r *PortfolioResult) CanBuyLambo() bool {
	return r.Lambos.GreaterThanOrEqual(decimal.NewFromInt(1))
}

// RiskLevel buckets the growth factor into a coarse risk band.
func (r *PortfolioResult) RiskLevel() string {
	switch {
	case r.GrowthFactor.GreaterThan(decimal.NewFromInt(2)):
		return "HIGH"
	case r.GrowthFactor.GreaterThan(decimal.NewFromFloat(0.5)):
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func (r *PortfolioResult) Validate() error {
	if r.Symbol == "" {
		return errors.New("symbol is required")
	}
	if r.Investment.LessThan(decimal.NewFromFloat(0.01)) {
		return errors.New("investment must be at least 0.01")
	}
	if r.Lambos.IsNegative() {
		return errors.New("lambos must not be negative")
	}
	return nil
}

// PortfolioLog is an append-only audit record written around every
// orchestrated portfolio operation. Never updated or deleted.
type PortfolioLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Symbol    string    `json:"symbol" gorm:"size:10;index"`
	Action    string    `json:"action" gorm:"size:100"`
	Level     string    `json:"level" gorm:"size:10;default:INFO"`
	Metadata  JSONMap   `json:"metadata" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (PortfolioLog) TableName() string { return "portfolio_logs" }

func (l *PortfolioLog) Validate() error {
	if l.Symbol == "" {
		return errors.New("symbol is required")
	}
	if l.Action == "" {
		return errors.New("action is required")
	}
	switch l.Level {
	case LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return errors.New("level must be one of INFO, WARN, ERROR")
	}
}
