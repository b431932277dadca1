package reconciliation

import (
	"context"
	"sync"
	"time"

	"dispute-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// In-memory stores used across the engine tests. The payment store mirrors
// the production compare-and-set contract under a mutex so the contention
// tests exercise real claim semantics.

type memPaymentStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*models.PaymentRecord
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{records: make(map[uuid.UUID]*models.PaymentRecord)}
}

func (s *memPaymentStore) Create(_ context.Context, record *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *memPaymentStore) GetByID(_ context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *memPaymentStore) List(_ context.Context, filter PaymentRecordFilter) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PaymentRecord
	for _, record := range s.records {
		if filter.Status != "" && record.ReconciliationStatus != filter.Status {
			continue
		}
		if filter.Carrier != "" && record.Carrier != filter.Carrier {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (s *memPaymentStore) ListUnmatched(_ context.Context) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PaymentRecord
	for _, record := range s.records {
		if record.ReconciliationStatus == models.StatusUnmatched {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (s *memPaymentStore) ClaimMatch(_ context.Context, id uuid.UUID, claim MatchClaim) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok || record.ReconciliationStatus != models.StatusUnmatched {
		return false, nil
	}
	caseID := claim.CaseID
	matchedAt := claim.MatchedAt
	record.CaseID = &caseID
	record.ReconciliationStatus = models.StatusMatched
	record.MatchConfidence = claim.Confidence
	record.MatchMethod = claim.Method
	record.MatchedAt = &matchedAt
	record.MatchedBy = claim.Actor
	return true, nil
}

func (s *memPaymentStore) AggregateByStatus(_ context.Context) ([]StatusAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byStatus := make(map[models.ReconciliationStatus]*StatusAggregate)
	for _, record := range s.records {
		agg, ok := byStatus[record.ReconciliationStatus]
		if !ok {
			agg = &StatusAggregate{Status: record.ReconciliationStatus}
			byStatus[record.ReconciliationStatus] = agg
		}
		agg.Count++
		agg.SumCents += record.PaymentAmountCents
	}
	var rows []StatusAggregate
	for _, agg := range byStatus {
		rows = append(rows, *agg)
	}
	return rows, nil
}

func (s *memPaymentStore) AverageMatchSeconds(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	var count int
	for _, record := range s.records {
		if record.MatchedAt == nil {
			continue
		}
		total += record.MatchedAt.Sub(record.CreatedAt).Seconds()
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

type memSuggestionStore struct {
	mu          sync.Mutex
	suggestions map[uuid.UUID]*models.MatchSuggestion
}

func newMemSuggestionStore() *memSuggestionStore {
	return &memSuggestionStore{suggestions: make(map[uuid.UUID]*models.MatchSuggestion)}
}

func (s *memSuggestionStore) Create(_ context.Context, suggestion *models.MatchSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *suggestion
	s.suggestions[suggestion.ID] = &copied
	return nil
}

func (s *memSuggestionStore) GetByID(_ context.Context, id uuid.UUID) (*models.MatchSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestion, ok := s.suggestions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *suggestion
	return &copied, nil
}

func (s *memSuggestionStore) ListByPaymentRecord(_ context.Context, paymentRecordID uuid.UUID) ([]models.MatchSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MatchSuggestion
	for _, suggestion := range s.suggestions {
		if suggestion.PaymentRecordID == paymentRecordID {
			out = append(out, *suggestion)
		}
	}
	return out, nil
}

func (s *memSuggestionStore) MarkAccepted(_ context.Context, paymentRecordID, caseID uuid.UUID, reviewer string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, suggestion := range s.suggestions {
		if suggestion.PaymentRecordID == paymentRecordID &&
			suggestion.CaseID == caseID &&
			suggestion.Status == models.SuggestionPending {
			suggestion.Status = models.SuggestionAccepted
			suggestion.ReviewedBy = reviewer
			reviewedAt := at
			suggestion.ReviewedAt = &reviewedAt
		}
	}
	return nil
}

func (s *memSuggestionStore) MarkRejected(_ context.Context, id uuid.UUID, reviewer, notes string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestion, ok := s.suggestions[id]
	if !ok || suggestion.Status != models.SuggestionPending {
		return false, nil
	}
	suggestion.Status = models.SuggestionRejected
	suggestion.ReviewedBy = reviewer
	suggestion.ReviewNotes = notes
	reviewedAt := at
	suggestion.ReviewedAt = &reviewedAt
	return true, nil
}

type memCaseStore struct {
	mu    sync.Mutex
	cases map[uuid.UUID]*models.DisputeCase
}

func newMemCaseStore() *memCaseStore {
	return &memCaseStore{cases: make(map[uuid.UUID]*models.DisputeCase)}
}

func (s *memCaseStore) add(disputeCase models.DisputeCase) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if disputeCase.ID == uuid.Nil {
		disputeCase.ID = uuid.New()
	}
	if disputeCase.Status == "" {
		disputeCase.Status = models.CaseStatusOpen
	}
	s.cases[disputeCase.ID] = &disputeCase
	return disputeCase.ID
}

func (s *memCaseStore) ListCandidates(_ context.Context, carrier models.Carrier, filedAfter time.Time) ([]models.CaseCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CaseCandidate
	for _, c := range s.cases {
		if c.Status == models.CaseStatusResolved {
			continue
		}
		if c.FiledDate.Before(filedAfter) {
			continue
		}
		if carrier.Known() && c.Carrier != carrier {
			continue
		}
		out = append(out, models.CaseCandidate{
			CaseID:             c.ID,
			Carrier:            c.Carrier,
			ClaimedAmountCents: c.ClaimedAmountCents,
			FiledDate:          c.FiledDate,
			ConfirmationNumber: c.ConfirmationNumber,
		})
	}
	return out, nil
}

func (s *memCaseStore) CandidateByID(_ context.Context, caseID uuid.UUID) (models.CaseCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return models.CaseCandidate{}, ErrNotFound
	}
	return models.CaseCandidate{
		CaseID:             c.ID,
		Carrier:            c.Carrier,
		ClaimedAmountCents: c.ClaimedAmountCents,
		FiledDate:          c.FiledDate,
		ConfirmationNumber: c.ConfirmationNumber,
	}, nil
}

func (s *memCaseStore) MarkResolved(_ context.Context, caseID uuid.UUID, recoveredAmountCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	c.Status = models.CaseStatusResolved
	c.RecoveredAmountCents = recoveredAmountCents
	c.ResolvedAt = &now
	return nil
}
