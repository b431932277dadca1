package models

import (
	"time"

	"github.com/google/uuid"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "PENDING"
	SuggestionAccepted SuggestionStatus = "ACCEPTED"
	SuggestionRejected SuggestionStatus = "REJECTED"
	SuggestionExpired  SuggestionStatus = "EXPIRED"
)

// MatchDetails is the fixed-shape numeric breakdown behind a suggestion.
type MatchDetails struct {
	PaymentAmountCents int64 `json:"payment_amount_cents"`
	ClaimedAmountCents int64 `json:"claimed_amount_cents"`
	AmountDiffCents    int64 `json:"amount_diff_cents"`
	DaysDiff           int   `json:"days_diff"`
}

// MatchSuggestion records one engine-generated match proposal and its review
// outcome. At most one ACCEPTED suggestion may exist per payment record.
type MatchSuggestion struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentRecordID uuid.UUID        `gorm:"index" json:"payment_record_id"`
	CaseID          uuid.UUID        `gorm:"index" json:"case_id"`
	Confidence      int              `json:"confidence"`
	MatchScore      int              `json:"match_score"`
	AmountMatch     int              `json:"amount_match"`
	DateMatch       int              `json:"date_match"`
	CarrierMatch    int              `json:"carrier_match"`
	ReferenceMatch  int              `json:"reference_match"`
	MatchReason     string           `json:"match_reason"`
	Details         MatchDetails     `gorm:"embedded;embeddedPrefix:detail_" json:"details"`
	Status          SuggestionStatus `gorm:"index" json:"status"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewNotes     string           `json:"review_notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
