package importer

import (
	"context"

	"dispute-reconciliation-backend/internal/models"
)

// TransactionFilter narrows bank transaction listings.
type TransactionFilter struct {
	ImportBatchID   string
	CarrierPayments bool
	DetectedCarrier models.Carrier
	Limit           int
}

// TransactionStore is the persistence boundary for imported bank
// transactions.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.BankTransaction) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	List(ctx context.Context, filter TransactionFilter) ([]models.BankTransaction, error)
}
