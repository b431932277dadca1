package scoring

import (
	"math"
	"strings"

	"dispute-reconciliation-backend/internal/models"
)

// Factor weights. They sum to 100 so the weighted sum of 0..100 sub-scores
// divides back into a 0..100 confidence.
const (
	weightAmount    = 40
	weightDate      = 20
	weightCarrier   = 20
	weightReference = 20
)

// Breakdown is the full scoring result for one payment/case pair.
type Breakdown struct {
	Confidence     int
	AmountMatch    int
	DateMatch      int
	CarrierMatch   int
	ReferenceMatch int
	MatchReason    string
	Details        models.MatchDetails
}

// Score computes the weighted multi-factor confidence for matching a payment
// to a candidate case. Pure and deterministic; performs no I/O.
func Score(payment *models.PaymentRecord, candidate models.CaseCandidate) Breakdown {
	amountDiff := payment.PaymentAmountCents - candidate.ClaimedAmountCents
	if amountDiff < 0 {
		amountDiff = -amountDiff
	}
	daysDiff := int(math.Abs(payment.PaymentDate.Sub(candidate.FiledDate).Hours()) / 24)

	b := Breakdown{
		AmountMatch:    amountScore(payment.PaymentAmountCents, candidate.ClaimedAmountCents),
		DateMatch:      dateScore(daysDiff),
		CarrierMatch:   carrierScore(payment.Carrier, candidate.Carrier),
		ReferenceMatch: referenceScore(payment.CarrierReference, candidate.ConfirmationNumber),
		Details: models.MatchDetails{
			PaymentAmountCents: payment.PaymentAmountCents,
			ClaimedAmountCents: candidate.ClaimedAmountCents,
			AmountDiffCents:    amountDiff,
			DaysDiff:           daysDiff,
		},
	}

	weighted := weightAmount*b.AmountMatch +
		weightDate*b.DateMatch +
		weightCarrier*b.CarrierMatch +
		weightReference*b.ReferenceMatch
	b.Confidence = int(math.Round(float64(weighted) / 100))
	b.MatchReason = buildReason(b)
	return b
}

func amountScore(paymentCents, claimedCents int64) int {
	percentDiff := 100.0
	if claimedCents != 0 {
		percentDiff = math.Abs(float64(paymentCents-claimedCents)) / float64(claimedCents) * 100
	}
	switch {
	case percentDiff <= 5:
		return 100
	case percentDiff <= 10:
		return 80
	case percentDiff <= 20:
		return 60
	default:
		return int(math.Max(0, math.Round(100-percentDiff)))
	}
}

func dateScore(daysDiff int) int {
	switch {
	case daysDiff <= 7:
		return 100
	case daysDiff <= 30:
		return 80
	case daysDiff <= 60:
		return 60
	default:
		if s := 100 - daysDiff; s > 0 {
			return s
		}
		return 0
	}
}

func carrierScore(paymentCarrier, caseCarrier models.Carrier) int {
	if !paymentCarrier.Known() || !caseCarrier.Known() {
		return 50
	}
	if paymentCarrier == caseCarrier {
		return 100
	}
	return 0
}

// referenceScore compares carrier reference against case confirmation number.
// The similarity measure is deliberately crude (exact / containment /
// character-set Jaccard), not edit distance; changing it would change
// confidence outputs for existing data.
func referenceScore(carrierRef, confirmationNumber string) int {
	if carrierRef == "" || confirmationNumber == "" {
		return 0
	}
	return int(math.Round(similarity(carrierRef, confirmationNumber) * 100))
}

func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}
	setA := charSet(a)
	setB := charSet(b)
	intersection := 0
	for r := range setA {
		if setB[r] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func charSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

func buildReason(b Breakdown) string {
	var clauses []string
	switch {
	case b.AmountMatch >= 95:
		clauses = append(clauses, "Exact amount match.")
	case b.AmountMatch >= 80:
		clauses = append(clauses, "Close amount match.")
	}
	if b.DateMatch >= 80 {
		clauses = append(clauses, "Recent payment.")
	}
	if b.CarrierMatch == 100 {
		clauses = append(clauses, "Carrier matches.")
	}
	if b.ReferenceMatch >= 80 {
		clauses = append(clauses, "Reference number matches.")
	}
	if len(clauses) == 0 {
		return "Potential match based on available data"
	}
	return strings.Join(clauses, " ")
}
