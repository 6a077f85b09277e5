package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/fraud"
	"invoice-antifraud/internal/domain/invoice"
)

// InvoiceResponse is the wire representation of an invoice
type InvoiceResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// FraudResultResponse is the wire representation of a verdict. Reason and
// description are present iff has_fraud is true.
type FraudResultResponse struct {
	HasFraud    bool   `json:"has_fraud"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

// FraudRecordResponse is the wire representation of a persisted fraud record
type FraudRecordResponse struct {
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromInvoice converts a domain invoice to its wire form
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID,
		AccountID: inv.AccountID,
		Amount:    inv.Amount,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
}

// FromVerdict converts a verdict to its wire form
func FromVerdict(v fraud.Verdict) FraudResultResponse {
	return FraudResultResponse{
		HasFraud:    v.Fraudulent(),
		Reason:      string(v.Reason),
		Description: v.Description,
	}
}

// FromFraudRecord converts a fraud record to its wire form
func FromFraudRecord(record *invoice.FraudRecord) *FraudRecordResponse {
	if record == nil {
		return nil
	}
	return &FraudRecordResponse{
		Reason:      string(record.Reason),
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}
}
