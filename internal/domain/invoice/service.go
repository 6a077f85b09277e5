package invoice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/account"
	"invoice-antifraud/internal/domain/fraud"
)

// Detector produces the fraud verdict for one invoice submission.
// *fraud.Aggregate is the production implementation.
type Detector interface {
	Evaluate(ctx context.Context, ec fraud.Context) (fraud.Verdict, error)
}

// Processor orchestrates one invoice submission end to end: input
// validation, idempotency, account materialization, fraud evaluation and
// atomic persistence of the invoice with its verdict. It holds no mutable
// state and is safe for concurrent use.
type Processor struct {
	invoices Repository
	accounts account.Repository
	detector Detector
}

// NewProcessor creates an invoice processor.
func NewProcessor(invoices Repository, accounts account.Repository, detector Detector) *Processor {
	return &Processor{
		invoices: invoices,
		accounts: accounts,
		detector: detector,
	}
}

// Result is what a successful submission returns: the persisted invoice and
// the verdict that decided its status.
type Result struct {
	Invoice *Invoice
	Verdict fraud.Verdict
}

// Process handles one invoice submission. Either the invoice (and its fraud
// record, when rejected) is durably persisted and returned, or nothing is
// persisted and an error comes back. Resubmitting an already processed
// invoice ID fails with ErrDuplicateInvoice and has no side effects.
func (p *Processor) Process(ctx context.Context, invoiceID, accountID string, amount decimal.Decimal) (*Result, error) {
	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}
	if accountID == "" {
		return nil, ErrMissingAccountID
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	// Fast path only: the unique key on the invoice ID is what actually
	// guarantees at-most-once creation under concurrency (see Create).
	if _, err := p.invoices.GetByID(ctx, invoiceID); err == nil {
		return nil, ErrDuplicateInvoice
	} else if !errors.Is(err, ErrInvoiceNotFound) {
		return nil, err
	}

	acct, err := p.accounts.GetOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	verdict, err := p.detector.Evaluate(ctx, fraud.Context{
		Account:   acct,
		Amount:    amount,
		InvoiceID: invoiceID,
	})
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:        invoiceID,
		AccountID: accountID,
		Amount:    amount,
		Status:    StatusApproved,
	}

	var record *FraudRecord
	if verdict.Fraudulent() {
		inv.Status = StatusRejected
		record = NewFraudRecord(invoiceID, verdict)
	}

	if err := p.invoices.Create(ctx, inv, record); err != nil {
		return nil, err
	}

	return &Result{Invoice: inv, Verdict: verdict}, nil
}
