package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cryptolio/backend/internal/models"
)

type mockAnalyticsRepo struct {
	predictions []*models.Prediction
	reports     []*models.AnalysisReport
}

func (m *mockAnalyticsRepo) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	m.predictions = append(m.predictions, prediction)
	return nil
}

func (m *mockAnalyticsRepo) CreateReport(ctx context.Context, report *models.AnalysisReport) error {
	m.reports = append(m.reports, report)
	return nil
}

func TestCovidAnalyzer_AnalyzeImpact(t *testing.T) {
	analyzer := NewCovidAnalyzer()

	tests := []struct {
		name       string
		cases      int64
		deaths     int64
		wantImpact string
	}{
		{"high", 1000000, 50000, "HIGH"},
		{"medium", 400000, 100000, "MEDIUM"},
		{"low", 100000, 10000, "LOW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.AnalyzeImpact(CovidData{Cases: tt.cases, Deaths: tt.deaths})
			assert.Equal(t, tt.wantImpact, analysis.MarketImpact)
			assert.LessOrEqual(t, analysis.Confidence, 95.0)
			assert.NotEmpty(t, analysis.Recommendation)
		})
	}
}

func TestAnalyticsService_GetCovidPrediction(t *testing.T) {
	repo := &mockAnalyticsRepo{}
	service := NewAnalyticsService(NewCovidAnalyzer(), repo, zap.NewNop())

	prediction, err := service.GetCovidPrediction(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "covid_analyzer", prediction.Source)
	assert.Equal(t, "HIGH", prediction.Analysis.MarketImpact)
	assert.InDelta(t, 0.72, prediction.Analysis.SeverityScore, 0.01)

	require.Len(t, repo.predictions, 1)
	assert.Equal(t, "covid_impact", repo.predictions[0].PredictionType)
}

func TestAnalyticsService_GenerateReport(t *testing.T) {
	repo := &mockAnalyticsRepo{}
	service := NewAnalyticsService(NewCovidAnalyzer(), repo, zap.NewNop())

	report, err := service.GenerateReport(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "market_analysis", report.ReportType)
	assert.Equal(t, "Analytics report for BTC", report.Summary)

	report, err = service.GenerateReport(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Analytics report for market", report.Summary)
	assert.Len(t, repo.reports, 2)
}
