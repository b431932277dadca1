package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	MethodCheck  PaymentMethod = "CHECK"
	MethodACH    PaymentMethod = "ACH"
	MethodCredit PaymentMethod = "CREDIT"
	MethodWire   PaymentMethod = "WIRE"
	MethodOther  PaymentMethod = "OTHER"
)

type ReconciliationStatus string

const (
	StatusUnmatched ReconciliationStatus = "UNMATCHED"
	StatusMatched   ReconciliationStatus = "MATCHED"
	StatusDisputed  ReconciliationStatus = "DISPUTED"
	StatusVerified  ReconciliationStatus = "VERIFIED"
)

type MatchMethod string

const (
	MatchAuto        MatchMethod = "AUTO"
	MatchManual      MatchMethod = "MANUAL"
	MatchAISuggested MatchMethod = "AI_SUGGESTED"
)

// PaymentRecord is a normalized payment event eligible for matching to a
// dispute case. CaseID is set iff the record is MATCHED or VERIFIED; a
// record never returns to UNMATCHED through this service.
type PaymentRecord struct {
	ID                   uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID               *uuid.UUID           `gorm:"index" json:"case_id,omitempty"`
	PaymentAmountCents   int64                `json:"payment_amount_cents"`
	PaymentMethod        PaymentMethod        `json:"payment_method"`
	PaymentDate          time.Time            `gorm:"index" json:"payment_date"`
	CheckNumber          string               `json:"check_number,omitempty"`
	Carrier              Carrier              `gorm:"index" json:"carrier,omitempty"`
	CarrierReference     string               `json:"carrier_reference,omitempty"`
	BankTransactionID    *uuid.UUID           `json:"bank_transaction_id,omitempty"`
	ReconciliationStatus ReconciliationStatus `gorm:"index" json:"reconciliation_status"`
	MatchConfidence      int                  `json:"match_confidence"`
	MatchMethod          MatchMethod          `json:"match_method,omitempty"`
	MatchedAt            *time.Time           `json:"matched_at,omitempty"`
	MatchedBy            string               `json:"matched_by,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}
