package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dispute-reconciliation-backend/internal/models"
	"dispute-reconciliation-backend/internal/repository"
	"dispute-reconciliation-backend/internal/services/importer"
	"dispute-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReconciliationHandler struct {
	engine   *reconciliation.Engine
	importer *importer.Service
	cases    *repository.CaseRepository
}

func NewReconciliationHandler(engine *reconciliation.Engine, imp *importer.Service, cases *repository.CaseRepository) *ReconciliationHandler {
	return &ReconciliationHandler{engine: engine, importer: imp, cases: cases}
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconciliation.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, reconciliation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reconciliation.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reconciliation.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *ReconciliationHandler) ImportTransactions(c *gin.Context) {
	var payload struct {
		BatchID      string                      `json:"batch_id"`
		Transactions []importer.RawTransaction   `json:"transactions"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.BatchID == "" {
		payload.BatchID = uuid.New().String()
	}

	imported, err := h.importer.Import(c.Request.Context(), payload.Transactions, payload.BatchID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"batch_id": payload.BatchID,
		"imported": imported,
		"received": len(payload.Transactions),
	})
}

func (h *ReconciliationHandler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := importer.TransactionFilter{
		ImportBatchID:   c.Query("batch_id"),
		CarrierPayments: c.Query("carrier_payments") == "true",
		DetectedCarrier: models.Carrier(c.Query("carrier")),
		Limit:           limit,
	}
	txs, err := h.importer.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": txs})
}

func (h *ReconciliationHandler) CreatePaymentRecord(c *gin.Context) {
	var payload struct {
		CaseID            string `json:"case_id"`
		Amount            string `json:"amount"`
		PaymentMethod     string `json:"payment_method"`
		PaymentDate       string `json:"payment_date"`
		CheckNumber       string `json:"check_number"`
		Carrier           string `json:"carrier"`
		CarrierReference  string `json:"carrier_reference"`
		BankTransactionID string `json:"bank_transaction_id"`
		Actor             string `json:"actor"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	date, err := time.Parse("2006-01-02", payload.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment date, expected yyyy-mm-dd"})
		return
	}

	input := reconciliation.CreatePaymentRecordInput{
		PaymentAmountCents: amount.Shift(2).Round(0).IntPart(),
		PaymentMethod:      models.PaymentMethod(payload.PaymentMethod),
		PaymentDate:        date,
		CheckNumber:        payload.CheckNumber,
		Carrier:            models.Carrier(payload.Carrier),
		CarrierReference:   payload.CarrierReference,
		Actor:              payload.Actor,
	}
	if payload.CaseID != "" {
		caseID, err := uuid.Parse(payload.CaseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
			return
		}
		input.CaseID = &caseID
	}
	if payload.BankTransactionID != "" {
		txID, err := uuid.Parse(payload.BankTransactionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank transaction ID"})
			return
		}
		input.BankTransactionID = &txID
	}

	record, err := h.engine.CreatePaymentRecord(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_record": record})
}

func (h *ReconciliationHandler) ListPaymentRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := reconciliation.PaymentRecordFilter{
		Status:  models.ReconciliationStatus(c.Query("status")),
		Carrier: models.Carrier(c.Query("carrier")),
		Limit:   limit,
	}
	records, err := h.engine.ListPaymentRecords(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

func (h *ReconciliationHandler) FindMatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment record ID"})
		return
	}
	matches, err := h.engine.FindMatches(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *ReconciliationHandler) RunSweep(c *gin.Context) {
	result, err := h.engine.AutoMatchSweep(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sweep": result})
}

func (h *ReconciliationHandler) ConfirmMatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment record ID"})
		return
	}

	var payload struct {
		CaseID string `json:"case_id"`
		Actor  string `json:"actor"`
		Method string `json:"method"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	caseID, err := uuid.Parse(payload.CaseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}

	err = h.engine.ConfirmMatch(c.Request.Context(), id, caseID, payload.Actor, models.MatchMethod(payload.Method))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match confirmed"})
}

func (h *ReconciliationHandler) RejectSuggestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion ID"})
		return
	}

	var payload struct {
		Actor string `json:"actor"`
		Notes string `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.engine.RejectSuggestion(c.Request.Context(), id, payload.Actor, payload.Notes); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "suggestion rejected"})
}

func (h *ReconciliationHandler) GetStats(c *gin.Context) {
	stats, err := h.engine.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateCase seeds the local case store so the candidate pool can be
// populated in development and demos.
func (h *ReconciliationHandler) CreateCase(c *gin.Context) {
	var payload struct {
		Carrier            string `json:"carrier"`
		ClaimedAmount      string `json:"claimed_amount"`
		FiledDate          string `json:"filed_date"`
		ConfirmationNumber string `json:"confirmation_number"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	amount, err := decimal.NewFromString(payload.ClaimedAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid claimed amount"})
		return
	}
	filedDate, err := time.Parse("2006-01-02", payload.FiledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filed date, expected yyyy-mm-dd"})
		return
	}

	disputeCase := &models.DisputeCase{
		ID:                 uuid.New(),
		Carrier:            models.Carrier(payload.Carrier),
		ClaimedAmountCents: amount.Shift(2).Round(0).IntPart(),
		FiledDate:          filedDate,
		ConfirmationNumber: payload.ConfirmationNumber,
		Status:             models.CaseStatusOpen,
		CreatedAt:          time.Now(),
	}
	if err := h.cases.Create(c.Request.Context(), disputeCase); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"case": disputeCase})
}
