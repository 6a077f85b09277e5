package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"invoice-antifraud/internal/application/dto"
	invoiceapp "invoice-antifraud/internal/application/invoice"
	"invoice-antifraud/internal/domain/invoice"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	processInvoice *invoiceapp.ProcessInvoiceUseCase
	invoices       invoice.Repository
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(processInvoice *invoiceapp.ProcessInvoiceUseCase, invoices invoice.Repository) *InvoiceHandler {
	return &InvoiceHandler{
		processInvoice: processInvoice,
		invoices:       invoices,
	}
}

// ProcessInvoice handles POST /api/v1/invoices
func (h *InvoiceHandler) ProcessInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceapp.ProcessInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.processInvoice.Execute(r.Context(), *input)
	if err != nil {
		writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// GetInvoice handles GET /api/v1/invoices/{id}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Invoice ID is required")
		return
	}

	inv, err := h.invoices.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get invoice: "+err.Error())
		return
	}

	response := struct {
		dto.InvoiceResponse
		FraudRecord *dto.FraudRecordResponse `json:"fraud_record,omitempty"`
	}{InvoiceResponse: dto.FromInvoice(inv)}

	if inv.Status == invoice.StatusRejected {
		record, err := h.invoices.GetFraudRecord(r.Context(), id)
		if err != nil && !errors.Is(err, invoice.ErrFraudRecordNotFound) {
			writeError(w, http.StatusInternalServerError, "Failed to get fraud record: "+err.Error())
			return
		}
		response.FraudRecord = dto.FromFraudRecord(record)
	}

	writeJSON(w, http.StatusOK, response)
}

// ListAccountInvoices handles GET /api/v1/accounts/{id}/invoices
func (h *InvoiceHandler) ListAccountInvoices(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "Account ID is required")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	invoices, err := h.invoices.ListByAccount(r.Context(), accountID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list invoices: "+err.Error())
		return
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = dto.FromInvoice(inv)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": responses,
		"count":    len(responses),
	})
}

func writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrDuplicateInvoice):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, invoice.ErrMissingInvoiceID),
		errors.Is(err, invoice.ErrMissingAccountID),
		errors.Is(err, invoice.ErrNegativeAmount),
		errors.Is(err, invoice.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Invoice processing failed: "+err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
