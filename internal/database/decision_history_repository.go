package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srishhttii05/resolvex/internal/domain"
)

// DecisionHistoryRepository records every pipeline decision for auditing.
// Writes are best-effort; callers log failures and continue serving.
type DecisionHistoryRepository struct {
	db *sqlx.DB
}

// NewDecisionHistoryRepository creates a new decision history repository.
func NewDecisionHistoryRepository(db *sqlx.DB) *DecisionHistoryRepository {
	return &DecisionHistoryRepository{db: db}
}

// DecisionStats represents overall decision statistics.
type DecisionStats struct {
	TotalClassifications   int            `json:"total_classifications"`
	TotalModerations       int            `json:"total_moderations"`
	TotalWaterAssessments  int            `json:"total_water_assessments"`
	ModerationsRejected    int            `json:"moderations_rejected"`
	WaterSamplesPoor       int            `json:"water_samples_poor"`
	Categories             map[string]int `json:"categories"`
}

// SaveClassification inserts one classification decision.
func (r *DecisionHistoryRepository) SaveClassification(ctx context.Context, report domain.Report) error {
	query := `
		INSERT INTO classification_history (
			id, title, category, priority, match_stage
		)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		report.Title,
		report.Category,
		string(report.Priority),
		string(report.MatchStage),
	)
	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	return nil
}

// SaveModeration inserts one moderation verdict.
func (r *DecisionHistoryRepository) SaveModeration(ctx context.Context, title string, verdict domain.ModerationVerdict) error {
	query := `
		INSERT INTO moderation_history (
			id, title, status, message
		)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		title,
		string(verdict.Status),
		verdict.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to save moderation verdict: %w", err)
	}

	return nil
}

// SaveWaterAssessment inserts one water quality verdict with its sample.
func (r *DecisionHistoryRepository) SaveWaterAssessment(ctx context.Context, sample domain.WaterSample, verdict domain.WaterQualityVerdict) error {
	query := `
		INSERT INTO water_assessment_history (
			id, ph, turbidity, tds, conductivity, hardness, coliform, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		sample.PH,
		sample.Turbidity,
		sample.TDS,
		sample.Conductivity,
		sample.Hardness,
		string(sample.Coliform),
		string(verdict.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to save water assessment: %w", err)
	}

	return nil
}

// GetStats retrieves overall decision statistics.
func (r *DecisionHistoryRepository) GetStats(ctx context.Context) (*DecisionStats, error) {
	var stats DecisionStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM classification_history) as total_classifications,
			(SELECT COUNT(*) FROM moderation_history) as total_moderations,
			(SELECT COUNT(*) FROM water_assessment_history) as total_water_assessments,
			(SELECT COUNT(*) FROM moderation_history WHERE status = 'spam') as moderations_rejected,
			(SELECT COUNT(*) FROM water_assessment_history WHERE status = 'poor') as water_samples_poor
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalClassifications,
		&stats.TotalModerations,
		&stats.TotalWaterAssessments,
		&stats.ModerationsRejected,
		&stats.WaterSamplesPoor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get decision stats: %w", err)
	}

	stats.Categories = make(map[string]int)
	categoryQuery := `
		SELECT category, COUNT(*) as count
		FROM classification_history
		GROUP BY category
		ORDER BY count DESC
	`

	rows, err := r.db.QueryContext(ctx, categoryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get category distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		stats.Categories[category] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return &stats, nil
}
