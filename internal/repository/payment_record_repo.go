package repository

import (
	"context"

	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/services/reconciliation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRecordRepository struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

func (r *PaymentRecordRepository) Create(ctx context.Context, record *models.PaymentRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

func (r *PaymentRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *PaymentRecordRepository) List(ctx context.Context, filter reconciliation.PaymentRecordFilter) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(filter.Limit)
	if filter.Status != "" {
		query = query.Where("reconciliation_status = ?", filter.Status)
	}
	if filter.Carrier != "" {
		query = query.Where("carrier = ?", filter.Carrier)
	}
	err := query.Find(&records).Error
	return records, translate(err)
}

func (r *PaymentRecordRepository) ListUnmatched(ctx context.Context) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("reconciliation_status = ?", models.StatusUnmatched).
		Order("created_at ASC").
		Find(&records).Error
	return records, translate(err)
}

// ClaimMatch is the one compare-and-set in the system: the status predicate
// in the WHERE clause makes two concurrent confirms resolve to exactly one
// winner, decided by the row count.
func (r *PaymentRecordRepository) ClaimMatch(ctx context.Context, id uuid.UUID, claim reconciliation.MatchClaim) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("id = ? AND reconciliation_status = ?", id, models.StatusUnmatched).
		Updates(map[string]interface{}{
			"case_id":               claim.CaseID,
			"reconciliation_status": models.StatusMatched,
			"match_confidence":      claim.Confidence,
			"match_method":          claim.Method,
			"matched_at":            claim.MatchedAt,
			"matched_by":            claim.Actor,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *PaymentRecordRepository) AggregateByStatus(ctx context.Context) ([]reconciliation.StatusAggregate, error) {
	var rows []reconciliation.StatusAggregate
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Select("reconciliation_status AS status, COUNT(*) AS count, COALESCE(SUM(payment_amount_cents), 0) AS sum_cents").
		Group("reconciliation_status").
		Scan(&rows).Error
	return rows, translate(err)
}

func (r *PaymentRecordRepository) AverageMatchSeconds(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("matched_at IS NOT NULL").
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (matched_at - created_at))), 0)").
		Scan(&avg).Error
	return avg, translate(err)
}
