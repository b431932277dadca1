package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BankTransaction is a raw ledger entry imported from a bank feed.
// Immutable after import; ExternalTransactionID is the dedup key.
type BankTransaction struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionDate       time.Time      `gorm:"column:transaction_date;index" json:"transaction_date"`
	AmountCents           int64          `json:"amount_cents"`
	Description           string         `json:"description"`
	TransactionType       string         `json:"transaction_type"`
	BankAccountID         string         `json:"bank_account_id"`
	ExternalTransactionID string         `gorm:"uniqueIndex" json:"external_transaction_id"`
	CheckNumber           string         `json:"check_number,omitempty"`
	Category              string         `json:"category,omitempty"`
	IsCarrierPayment      bool           `gorm:"index" json:"is_carrier_payment"`
	DetectedCarrier       Carrier        `gorm:"index" json:"detected_carrier,omitempty"`
	ImportBatchID         string         `gorm:"index" json:"import_batch_id"`
	RawPayload            datatypes.JSON `json:"raw_payload,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}
