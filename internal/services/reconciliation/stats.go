package reconciliation

import (
	"context"

	"dispute-reconciliation-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Stats aggregates payment record counts, amounts, and match timing for
// operational visibility. Amounts are converted from cents to major units
// here, at the read boundary, and nowhere else.
type Stats struct {
	TotalPayments         int64   `json:"total_payments"`
	MatchedPayments       int64   `json:"matched_payments"`
	UnmatchedPayments     int64   `json:"unmatched_payments"`
	TotalAmount           float64 `json:"total_amount"`
	MatchedAmount         float64 `json:"matched_amount"`
	UnmatchedAmount       float64 `json:"unmatched_amount"`
	AverageMatchTimeHours float64 `json:"average_match_time_hours"`
}

// GetStats reports the current reconciliation totals.
func (e *Engine) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats

	rows, err := e.payments.AggregateByStatus(ctx)
	if err != nil {
		return stats, err
	}

	var totalCents, matchedCents, unmatchedCents int64
	for _, row := range rows {
		stats.TotalPayments += row.Count
		totalCents += row.SumCents
		switch row.Status {
		case models.StatusMatched, models.StatusVerified:
			stats.MatchedPayments += row.Count
			matchedCents += row.SumCents
		case models.StatusUnmatched:
			stats.UnmatchedPayments += row.Count
			unmatchedCents += row.SumCents
		}
	}
	stats.TotalAmount = centsToMajor(totalCents)
	stats.MatchedAmount = centsToMajor(matchedCents)
	stats.UnmatchedAmount = centsToMajor(unmatchedCents)

	avgSeconds, err := e.payments.AverageMatchSeconds(ctx)
	if err != nil {
		return stats, err
	}
	stats.AverageMatchTimeHours = avgSeconds / 3600

	return stats, nil
}

func centsToMajor(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
