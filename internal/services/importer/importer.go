package importer

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"dispute-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// carrierPaymentKeywords flags a transaction as a probable carrier payment.
var carrierPaymentKeywords = []string{"fedex", "ups", "usps", "dhl", "freight", "shipping", "carrier"}

// carrierDetectors is a priority-ordered table; the first keyword hit wins
// and no multi-label detection is attempted.
var carrierDetectors = []struct {
	keywords []string
	carrier  models.Carrier
}{
	{[]string{"fedex", "federal express"}, models.CarrierFedEx},
	{[]string{"ups", "united parcel"}, models.CarrierUPS},
	{[]string{"usps", "postal service"}, models.CarrierUSPS},
	{[]string{"dhl"}, models.CarrierDHL},
}

// RawTransaction is one row of an incoming bank feed batch. Amount is a
// decimal major-unit string; it is converted to integer cents exactly once,
// here.
type RawTransaction struct {
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Type          string `json:"type,omitempty"`
	AccountID     string `json:"account_id,omitempty"`
	TransactionID string `json:"transaction_id"`
	CheckNumber   string `json:"check_number,omitempty"`
	Category      string `json:"category,omitempty"`
}

// Service deduplicates and classifies raw feed rows into BankTransactions.
type Service struct {
	store TransactionStore
}

func NewService(store TransactionStore) *Service {
	return &Service{store: store}
}

// Import persists every non-duplicate, well-formed row of the batch and
// returns the count actually imported. A malformed row fails that row only;
// store errors abort the batch.
func (s *Service) Import(ctx context.Context, raws []RawTransaction, batchID string) (int, error) {
	imported := 0
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		if raw.TransactionID == "" {
			log.Printf("import batch %s: row %d has no transaction id, skipping", batchID, i)
			continue
		}

		date, err := parseDate(raw.Date)
		if err != nil {
			log.Printf("import batch %s: row %d invalid date %q, skipping", batchID, i, raw.Date)
			continue
		}

		amountCents, err := parseAmountCents(raw.Amount)
		if err != nil {
			log.Printf("import batch %s: row %d invalid amount %q, skipping", batchID, i, raw.Amount)
			continue
		}

		exists, err := s.store.ExistsByExternalID(ctx, raw.TransactionID)
		if err != nil {
			return imported, err
		}
		if exists {
			continue
		}

		payload, _ := json.Marshal(raw)
		tx := &models.BankTransaction{
			ID:                    uuid.New(),
			TransactionDate:       date,
			AmountCents:           amountCents,
			Description:           raw.Description,
			TransactionType:       raw.Type,
			BankAccountID:         raw.AccountID,
			ExternalTransactionID: raw.TransactionID,
			CheckNumber:           raw.CheckNumber,
			Category:              raw.Category,
			IsCarrierPayment:      isCarrierPayment(raw.Description),
			DetectedCarrier:       detectCarrier(raw.Description),
			ImportBatchID:         batchID,
			RawPayload:            payload,
			CreatedAt:             time.Now(),
		}
		if err := s.store.Create(ctx, tx); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ListTransactions exposes the imported ledger for review.
func (s *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.BankTransaction, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.store.List(ctx, filter)
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		date, err = time.Parse("02-01-2006", value)
	}
	return date, err
}

func parseAmountCents(value string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

func isCarrierPayment(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range carrierPaymentKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func detectCarrier(description string) models.Carrier {
	desc := strings.ToLower(description)
	for _, d := range carrierDetectors {
		for _, kw := range d.keywords {
			if strings.Contains(desc, kw) {
				return d.carrier
			}
		}
	}
	return ""
}
