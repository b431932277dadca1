package reconciliation

import (
	"context"
	"time"

	"dispute-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// MatchClaim carries the fields written when a payment record is matched.
type MatchClaim struct {
	CaseID     uuid.UUID
	Confidence int
	Method     models.MatchMethod
	Actor      string
	MatchedAt  time.Time
}

// PaymentRecordFilter narrows listing queries.
type PaymentRecordFilter struct {
	Status  models.ReconciliationStatus
	Carrier models.Carrier
	Limit   int
}

// StatusAggregate is one row of the status-grouped count/sum aggregation.
type StatusAggregate struct {
	Status   models.ReconciliationStatus
	Count    int64
	SumCents int64
}

// PaymentRecordStore is the persistence boundary for payment records. The
// engine depends on this interface, not on a concrete implementation.
type PaymentRecordStore interface {
	Create(ctx context.Context, record *models.PaymentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error)
	List(ctx context.Context, filter PaymentRecordFilter) ([]models.PaymentRecord, error)
	ListUnmatched(ctx context.Context) ([]models.PaymentRecord, error)
	// ClaimMatch atomically moves an UNMATCHED record to MATCHED. It reports
	// false, without error, when the record was not UNMATCHED at write time.
	ClaimMatch(ctx context.Context, id uuid.UUID, claim MatchClaim) (bool, error)
	AggregateByStatus(ctx context.Context) ([]StatusAggregate, error)
	AverageMatchSeconds(ctx context.Context) (float64, error)
}

// SuggestionStore is the persistence boundary for match suggestions.
type SuggestionStore interface {
	Create(ctx context.Context, suggestion *models.MatchSuggestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MatchSuggestion, error)
	ListByPaymentRecord(ctx context.Context, paymentRecordID uuid.UUID) ([]models.MatchSuggestion, error)
	// MarkAccepted flips the PENDING suggestion for the payment/case pair to
	// ACCEPTED. Missing suggestion is not an error: manual confirms may have
	// no suggestion trail.
	MarkAccepted(ctx context.Context, paymentRecordID, caseID uuid.UUID, reviewer string, at time.Time) error
	// MarkRejected reports false when the suggestion was not PENDING.
	MarkRejected(ctx context.Context, id uuid.UUID, reviewer, notes string, at time.Time) (bool, error)
}

// CaseStore is the collaborator interface onto the external case store. The
// engine only reads candidates and marks cases resolved on confirm.
type CaseStore interface {
	ListCandidates(ctx context.Context, carrier models.Carrier, filedAfter time.Time) ([]models.CaseCandidate, error)
	CandidateByID(ctx context.Context, caseID uuid.UUID) (models.CaseCandidate, error)
	MarkResolved(ctx context.Context, caseID uuid.UUID, recoveredAmountCents int64) error
}
