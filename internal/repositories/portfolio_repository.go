package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cryptolio/backend/internal/db"
	"github.com/cryptolio/backend/internal/models"
)

type portfolioRepository struct {
	db *db.DB
}

// NewPortfolioRepository creates a portfolio repository backed by the
// relational store.
func NewPortfolioRepository(database *db.DB) PortfolioRepository {
	return &portfolioRepository{db: database}
}

// CreateResultWithLog commits the result row and its completion log together.
// The audit trail must never show a completed operation without its result,
// or a result without its completion row.
func (r *portfolioRepository) CreateResultWithLog(ctx context.Context, result *models.PortfolioResult, log *models.PortfolioLog) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if err := log.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		if log.Metadata == nil {
			log.Metadata = models.JSONMap{}
		}
		log.Metadata["result_id"] = result.ID
		return tx.Create(log).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create portfolio result: %w", err)
	}
	return nil
}

func (r *portfolioRepository) CreateLog(ctx context.Context, log *models.PortfolioLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create portfolio log: %w", err)
	}
	return nil
}

func (r *portfolioRepository) GetResult(ctx context.Context, id uint) (*models.PortfolioResult, error) {
	result := &models.PortfolioResult{}
	err := r.db.WithContext(ctx).First(result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio result: %w", err)
	}
	return result, nil
}

func (r *portfolioRepository) ListResults(ctx context.Context, symbol string, limit int) ([]*models.PortfolioResult, error) {
	query := r.db.WithContext(ctx).Order("generation_date DESC").Limit(limit)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var results []*models.PortfolioResult
	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolio results: %w", err)
	}
	return results, nil
}

func (r *portfolioRepository) ListLogs(ctx context.Context, symbol string, limit int) ([]*models.PortfolioLog, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var logs []*models.PortfolioLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolio logs: %w", err)
	}
	return logs, nil
}
