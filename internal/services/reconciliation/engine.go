package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/services/scoring"

	"github.com/google/uuid"
)

const (
	// candidateWindowDays bounds how far back a case may have been filed,
	// relative to the payment date, to be considered at all.
	candidateWindowDays = 90
	// suggestionFloor is the confidence below which a candidate is not worth
	// presenting.
	suggestionFloor = 50
	// autoConfirmThreshold is the confidence at or above which the sweep
	// commits a match without human review.
	autoConfirmThreshold = 90

	systemActor = "system"
)

// Engine orchestrates payment-to-case reconciliation: record creation,
// candidate selection, suggestion persistence, and the confirm/reject
// lifecycle.
type Engine struct {
	payments    PaymentRecordStore
	suggestions SuggestionStore
	cases       CaseStore
}

func NewEngine(payments PaymentRecordStore, suggestions SuggestionStore, cases CaseStore) *Engine {
	return &Engine{payments: payments, suggestions: suggestions, cases: cases}
}

// CreatePaymentRecordInput carries the caller-supplied fields for a new
// payment record. Amount sign is not validated; the upstream system accepts
// negative and zero payments and we preserve that.
type CreatePaymentRecordInput struct {
	CaseID             *uuid.UUID
	PaymentAmountCents int64
	PaymentMethod      models.PaymentMethod
	PaymentDate        time.Time
	CheckNumber        string
	Carrier            models.Carrier
	CarrierReference   string
	BankTransactionID  *uuid.UUID
	Actor              string
}

// CreatePaymentRecord stores a new payment record. When a case id is supplied
// the record is created already MATCHED at full confidence with method
// MANUAL; otherwise it starts UNMATCHED.
func (e *Engine) CreatePaymentRecord(ctx context.Context, input CreatePaymentRecordInput) (*models.PaymentRecord, error) {
	if input.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", ErrValidation)
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.MethodOther
	}

	record := &models.PaymentRecord{
		ID:                   uuid.New(),
		PaymentAmountCents:   input.PaymentAmountCents,
		PaymentMethod:        input.PaymentMethod,
		PaymentDate:          input.PaymentDate,
		CheckNumber:          input.CheckNumber,
		Carrier:              input.Carrier,
		CarrierReference:     input.CarrierReference,
		BankTransactionID:    input.BankTransactionID,
		ReconciliationStatus: models.StatusUnmatched,
		CreatedAt:            time.Now(),
	}

	if input.CaseID != nil {
		if _, err := e.cases.CandidateByID(ctx, *input.CaseID); err != nil {
			return nil, fmt.Errorf("case %s: %w", input.CaseID, err)
		}
		now := time.Now()
		record.CaseID = input.CaseID
		record.ReconciliationStatus = models.StatusMatched
		record.MatchConfidence = 100
		record.MatchMethod = models.MatchManual
		record.MatchedAt = &now
		record.MatchedBy = input.Actor
	}

	if err := e.payments.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ScoredCandidate pairs a case candidate with its scoring breakdown.
type ScoredCandidate struct {
	Candidate models.CaseCandidate `json:"candidate"`
	Score     scoring.Breakdown    `json:"score"`
}

// FindMatches ranks plausible cases for one payment record, best first.
// An empty slice, not an error, means nothing cleared the confidence floor.
func (e *Engine) FindMatches(ctx context.Context, paymentRecordID uuid.UUID) ([]ScoredCandidate, error) {
	record, err := e.payments.GetByID(ctx, paymentRecordID)
	if err != nil {
		return nil, err
	}
	return e.selectCandidates(ctx, record)
}

func (e *Engine) selectCandidates(ctx context.Context, record *models.PaymentRecord) ([]ScoredCandidate, error) {
	filedAfter := record.PaymentDate.AddDate(0, 0, -candidateWindowDays)
	candidates, err := e.cases.ListCandidates(ctx, record.Carrier, filedAfter)
	if err != nil {
		return nil, err
	}

	ranked := make([]ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		breakdown := scoring.Score(record, candidate)
		if breakdown.Confidence < suggestionFloor {
			continue
		}
		ranked = append(ranked, ScoredCandidate{Candidate: candidate, Score: breakdown})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Confidence > ranked[j].Score.Confidence
	})
	return ranked, nil
}

// SweepResult summarizes one auto-match sweep.
type SweepResult struct {
	Processed     int `json:"processed"`
	Suggested     int `json:"suggested"`
	AutoConfirmed int `json:"auto_confirmed"`
	Failed        int `json:"failed"`
}

// AutoMatchSweep scores every UNMATCHED payment record against the case
// pool. The best candidate is always persisted as a PENDING suggestion; at or
// above the auto-confirm threshold the match is committed immediately with
// method AUTO. Each record is an independent unit of work: a failure is
// logged and the sweep moves on, and cancellation is honored between records.
func (e *Engine) AutoMatchSweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	records, err := e.payments.ListUnmatched(ctx)
	if err != nil {
		return result, err
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record := &records[i]
		result.Processed++

		ranked, err := e.selectCandidates(ctx, record)
		if err != nil {
			result.Failed++
			log.Printf("sweep: payment %s: candidate selection failed: %v", record.ID, err)
			continue
		}
		if len(ranked) == 0 {
			continue
		}

		top := ranked[0]
		// One suggestion per payment/case pair: repeated sweeps over a
		// record that stays unmatched must not pile up duplicate PENDING
		// rows, or a later accept would flip more than one.
		existing, err := e.suggestions.ListByPaymentRecord(ctx, record.ID)
		if err != nil {
			result.Failed++
			log.Printf("sweep: payment %s: reading suggestion trail failed: %v", record.ID, err)
			continue
		}
		pendingExists := false
		for _, s := range existing {
			if s.CaseID == top.Candidate.CaseID && s.Status == models.SuggestionPending {
				pendingExists = true
				break
			}
		}
		if !pendingExists {
			if err := e.createSuggestion(ctx, record.ID, top); err != nil {
				result.Failed++
				log.Printf("sweep: payment %s: persisting suggestion failed: %v", record.ID, err)
				continue
			}
			result.Suggested++
		}

		if top.Score.Confidence < autoConfirmThreshold {
			continue
		}
		if err := e.ConfirmMatch(ctx, record.ID, top.Candidate.CaseID, systemActor, models.MatchAuto); err != nil {
			// A concurrent manual confirm winning the race is not a sweep
			// failure; anything else is.
			if !errors.Is(err, ErrConflict) {
				result.Failed++
				log.Printf("sweep: payment %s: auto-confirm failed: %v", record.ID, err)
			}
			continue
		}
		result.AutoConfirmed++
	}
	return result, nil
}

func (e *Engine) createSuggestion(ctx context.Context, paymentRecordID uuid.UUID, top ScoredCandidate) error {
	return e.suggestions.Create(ctx, &models.MatchSuggestion{
		ID:              uuid.New(),
		PaymentRecordID: paymentRecordID,
		CaseID:          top.Candidate.CaseID,
		Confidence:      top.Score.Confidence,
		MatchScore:      top.Score.Confidence,
		AmountMatch:     top.Score.AmountMatch,
		DateMatch:       top.Score.DateMatch,
		CarrierMatch:    top.Score.CarrierMatch,
		ReferenceMatch:  top.Score.ReferenceMatch,
		MatchReason:     top.Score.MatchReason,
		Details:         top.Score.Details,
		Status:          models.SuggestionPending,
		CreatedAt:       time.Now(),
	})
}

// ConfirmMatch commits a payment record to a case. The record must be
// UNMATCHED at write time; the check-and-set is a single conditional update
// so that two concurrent confirms produce exactly one winner. On success the
// case store is told to record the recovery and the PENDING suggestion for
// the pair, if any, is marked ACCEPTED.
func (e *Engine) ConfirmMatch(ctx context.Context, paymentRecordID, caseID uuid.UUID, actorID string, method models.MatchMethod) error {
	if method == "" {
		method = models.MatchManual
	}

	if _, err := e.cases.CandidateByID(ctx, caseID); err != nil {
		return fmt.Errorf("case %s: %w", caseID, err)
	}

	confidence := 100
	pending, err := e.suggestions.ListByPaymentRecord(ctx, paymentRecordID)
	if err != nil {
		return err
	}
	for _, s := range pending {
		if s.CaseID == caseID && s.Status == models.SuggestionPending {
			confidence = s.Confidence
			break
		}
	}

	now := time.Now()
	claimed, err := e.payments.ClaimMatch(ctx, paymentRecordID, MatchClaim{
		CaseID:     caseID,
		Confidence: confidence,
		Method:     method,
		Actor:      actorID,
		MatchedAt:  now,
	})
	if err != nil {
		return err
	}
	if !claimed {
		record, err := e.payments.GetByID(ctx, paymentRecordID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: payment record %s is %s, not %s",
			ErrConflict, paymentRecordID, record.ReconciliationStatus, models.StatusUnmatched)
	}

	record, err := e.payments.GetByID(ctx, paymentRecordID)
	if err != nil {
		return err
	}
	if err := e.cases.MarkResolved(ctx, caseID, record.PaymentAmountCents); err != nil {
		return err
	}
	return e.suggestions.MarkAccepted(ctx, paymentRecordID, caseID, actorID, now)
}

// RejectSuggestion marks a PENDING suggestion REJECTED with reviewer
// metadata. The associated payment record is left untouched.
func (e *Engine) RejectSuggestion(ctx context.Context, suggestionID uuid.UUID, actorID, notes string) error {
	if _, err := e.suggestions.GetByID(ctx, suggestionID); err != nil {
		return err
	}
	ok, err := e.suggestions.MarkRejected(ctx, suggestionID, actorID, notes, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: suggestion %s is not pending", ErrConflict, suggestionID)
	}
	return nil
}

// GetPaymentRecord fetches one record by id.
func (e *Engine) GetPaymentRecord(ctx context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	return e.payments.GetByID(ctx, id)
}

// ListPaymentRecords exposes filtered record listings for review surfaces.
func (e *Engine) ListPaymentRecords(ctx context.Context, filter PaymentRecordFilter) ([]models.PaymentRecord, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return e.payments.List(ctx, filter)
}
