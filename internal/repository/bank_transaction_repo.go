package repository

import (
	"context"

	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/services/importer"

	"gorm.io/gorm"
)

type BankTransactionRepository struct {
	db *gorm.DB
}

func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

func (r *BankTransactionRepository) Create(ctx context.Context, tx *models.BankTransaction) error {
	return translate(r.db.WithContext(ctx).Create(tx).Error)
}

func (r *BankTransactionRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("external_transaction_id = ?", externalID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *BankTransactionRepository) List(ctx context.Context, filter importer.TransactionFilter) ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	query := r.db.WithContext(ctx).
		Order("transaction_date DESC").
		Limit(filter.Limit)
	if filter.ImportBatchID != "" {
		query = query.Where("import_batch_id = ?", filter.ImportBatchID)
	}
	if filter.CarrierPayments {
		query = query.Where("is_carrier_payment = ?", true)
	}
	if filter.DetectedCarrier != "" {
		query = query.Where("detected_carrier = ?", filter.DetectedCarrier)
	}
	err := query.Find(&txs).Error
	return txs, translate(err)
}
