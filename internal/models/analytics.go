package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prediction stores an analytics prediction, such as a COVID market-impact
// estimate, together with the data the estimate was computed from.
type Prediction struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Symbol         *string         `json:"symbol,omitempty" gorm:"size:10;index"`
	PredictionType string          `json:"prediction_type" gorm:"size:50"`
	PredictionData JSONMap         `json:"prediction_data" gorm:"type:text"`
	Confidence     decimal.Decimal `json:"confidence" gorm:"type:numeric(5,2)"`
	CreatedAt      time.Time       `json:"created_at" gorm:"index"`
}

func (Prediction) TableName() string { return "predictions" }

// AnalysisReport stores a generated analytics report.
type AnalysisReport struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReportType string    `json:"report_type" gorm:"size:50"`
	Data       JSONMap   `json:"data" gorm:"type:text"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

func (AnalysisReport) TableName() string { return "analysis_reports" }
