package repositories

import (
	"context"
	"fmt"

	"github.com/cryptolio/backend/internal/db"
	"github.com/cryptolio/backend/internal/models"
)

type analyticsRepository struct {
	db *db.DB
}

// NewAnalyticsRepository creates an analytics repository backed by the
// relational store.
func NewAnalyticsRepository(database *db.DB) AnalyticsRepository {
	return &analyticsRepository{db: database}
}

func (r *analyticsRepository) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	if err := r.db.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

func (r *analyticsRepository) CreateReport(ctx context.Context, report *models.AnalysisReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create analysis report: %w", err)
	}
	return nil
}
