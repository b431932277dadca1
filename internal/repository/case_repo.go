package repository

import (
	"context"
	"time"

	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/services/reconciliation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseRepository is the local implementation of the case-store collaborator.
// The reconciliation engine only sees the CaseStore interface.
type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, disputeCase *models.DisputeCase) error {
	return translate(r.db.WithContext(ctx).Create(disputeCase).Error)
}

func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DisputeCase, error) {
	var disputeCase models.DisputeCase
	if err := r.db.WithContext(ctx).First(&disputeCase, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &disputeCase, nil
}

// ListCandidates returns the matchable projection of open cases filed on or
// after filedAfter. An unknown carrier leaves the pool unconstrained by
// carrier.
func (r *CaseRepository) ListCandidates(ctx context.Context, carrier models.Carrier, filedAfter time.Time) ([]models.CaseCandidate, error) {
	var cases []models.DisputeCase
	query := r.db.WithContext(ctx).
		Where("status <> ?", models.CaseStatusResolved).
		Where("filed_date >= ?", filedAfter)
	if carrier.Known() {
		query = query.Where("carrier = ?", carrier)
	}
	if err := query.Find(&cases).Error; err != nil {
		return nil, translate(err)
	}

	candidates := make([]models.CaseCandidate, 0, len(cases))
	for _, c := range cases {
		candidates = append(candidates, toCandidate(c))
	}
	return candidates, nil
}

func (r *CaseRepository) CandidateByID(ctx context.Context, caseID uuid.UUID) (models.CaseCandidate, error) {
	disputeCase, err := r.GetByID(ctx, caseID)
	if err != nil {
		return models.CaseCandidate{}, err
	}
	return toCandidate(*disputeCase), nil
}

func (r *CaseRepository) MarkResolved(ctx context.Context, caseID uuid.UUID, recoveredAmountCents int64) error {
	result := r.db.WithContext(ctx).Model(&models.DisputeCase{}).
		Where("id = ?", caseID).
		Updates(map[string]interface{}{
			"status":                 models.CaseStatusResolved,
			"recovered_amount_cents": recoveredAmountCents,
			"resolved_at":            time.Now(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return reconciliation.ErrNotFound
	}
	return nil
}

func toCandidate(c models.DisputeCase) models.CaseCandidate {
	return models.CaseCandidate{
		CaseID:             c.ID,
		Carrier:            c.Carrier,
		ClaimedAmountCents: c.ClaimedAmountCents,
		FiledDate:          c.FiledDate,
		ConfirmationNumber: c.ConfirmationNumber,
	}
}
