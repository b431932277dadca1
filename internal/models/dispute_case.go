package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CaseStatusOpen     = "open"
	CaseStatusResolved = "resolved"
)

// DisputeCase is the case-store entity. The reconciliation engine reads it
// through the CaseCandidate projection and writes it only via MarkResolved.
type DisputeCase struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Carrier              Carrier    `gorm:"index" json:"carrier"`
	ClaimedAmountCents   int64      `json:"claimed_amount_cents"`
	FiledDate            time.Time  `gorm:"index" json:"filed_date"`
	ConfirmationNumber   string     `json:"confirmation_number,omitempty"`
	Status               string     `gorm:"index" json:"status"`
	RecoveredAmountCents int64      `json:"recovered_amount_cents"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CaseCandidate is the read-only view of a case exposed to matching.
type CaseCandidate struct {
	CaseID             uuid.UUID `json:"case_id"`
	Carrier            Carrier   `json:"carrier"`
	ClaimedAmountCents int64     `json:"claimed_amount_cents"`
	FiledDate          time.Time `json:"filed_date"`
	ConfirmationNumber string    `json:"confirmation_number,omitempty"`
}
