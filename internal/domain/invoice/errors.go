package invoice

import "errors"

var (
	// ErrInvoiceNotFound is returned when an invoice cannot be found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrFraudRecordNotFound is returned when an invoice has no fraud record
	ErrFraudRecordNotFound = errors.New("fraud record not found")

	// ErrDuplicateInvoice is returned when the invoice ID was already processed
	ErrDuplicateInvoice = errors.New("invoice has already been processed")

	// ErrMissingInvoiceID is returned when the invoice ID is empty
	ErrMissingInvoiceID = errors.New("invoice ID is required")

	// ErrMissingAccountID is returned when the account ID is empty
	ErrMissingAccountID = errors.New("account ID is required")

	// ErrNegativeAmount is returned when the invoice amount is negative
	ErrNegativeAmount = errors.New("invoice amount cannot be negative")

	// ErrInvalidAmount is returned when the amount is missing or malformed
	ErrInvalidAmount = errors.New("invalid invoice amount")
)
