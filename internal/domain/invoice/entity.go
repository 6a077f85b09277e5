package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/fraud"
)

// Status represents the final state of an invoice. It is set exactly once,
// at creation, and never changes.
type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Invoice is one invoice-creation request that went through fraud
// evaluation. The ID is supplied by the caller and doubles as the
// idempotency key; CreatedAt is assigned by the store at persistence time.
type Invoice struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// FraudRecord explains why an invoice was rejected. It is created in the
// same transaction as its invoice and exists iff the status is REJECTED.
type FraudRecord struct {
	ID          uuid.UUID    `json:"id"`
	InvoiceID   string       `json:"invoice_id"`
	Reason      fraud.Reason `json:"reason"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewFraudRecord creates the fraud record for a rejected invoice.
func NewFraudRecord(invoiceID string, verdict fraud.Verdict) *FraudRecord {
	return &FraudRecord{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Reason:      verdict.Reason,
		Description: verdict.Description,
	}
}
