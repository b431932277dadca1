package repository

import (
	"context"
	"time"

	"dispute-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.MatchSuggestion) error {
	return translate(r.db.WithContext(ctx).Create(suggestion).Error)
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MatchSuggestion, error) {
	var suggestion models.MatchSuggestion
	if err := r.db.WithContext(ctx).First(&suggestion, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &suggestion, nil
}

func (r *SuggestionRepository) ListByPaymentRecord(ctx context.Context, paymentRecordID uuid.UUID) ([]models.MatchSuggestion, error) {
	var suggestions []models.MatchSuggestion
	err := r.db.WithContext(ctx).
		Where("payment_record_id = ?", paymentRecordID).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, translate(err)
}

func (r *SuggestionRepository) MarkAccepted(ctx context.Context, paymentRecordID, caseID uuid.UUID, reviewer string, at time.Time) error {
	// Zero rows is fine: manual confirms may have no suggestion trail.
	return translate(r.db.WithContext(ctx).Model(&models.MatchSuggestion{}).
		Where("payment_record_id = ? AND case_id = ? AND status = ?",
			paymentRecordID, caseID, models.SuggestionPending).
		Updates(map[string]interface{}{
			"status":      models.SuggestionAccepted,
			"reviewed_by": reviewer,
			"reviewed_at": at,
		}).Error)
}

func (r *SuggestionRepository) MarkRejected(ctx context.Context, id uuid.UUID, reviewer, notes string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.MatchSuggestion{}).
		Where("id = ? AND status = ?", id, models.SuggestionPending).
		Updates(map[string]interface{}{
			"status":       models.SuggestionRejected,
			"reviewed_by":  reviewer,
			"reviewed_at":  at,
			"review_notes": notes,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}
