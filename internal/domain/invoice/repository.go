package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository manages invoice persistence
type Repository interface {
	// Create stores the invoice and, when record is non-nil, its fraud
	// record as a single all-or-nothing unit. The store assigns CreatedAt
	// and writes it back. A uniqueness violation on the invoice ID is
	// reported as ErrDuplicateInvoice.
	Create(ctx context.Context, inv *Invoice, record *FraudRecord) error

	// GetByID retrieves an invoice by ID
	GetByID(ctx context.Context, id string) (*Invoice, error)

	// GetFraudRecord retrieves the fraud record attached to an invoice
	GetFraudRecord(ctx context.Context, invoiceID string) (*FraudRecord, error)

	// ListByAccount retrieves an account's invoices, newest first
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*Invoice, error)

	// ListRecentAmounts returns the amounts of the account's most recent
	// invoices, newest first, at most limit entries.
	ListRecentAmounts(ctx context.Context, accountID string, limit int) ([]decimal.Decimal, error)

	// CountByAccountSince counts the account's invoices created at or
	// after the given instant.
	CountByAccountSince(ctx context.Context, accountID string, since time.Time) (int64, error)
}
