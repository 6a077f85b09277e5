package fraud

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/account"
)

// Context carries everything a specification may inspect for one invoice
// submission. It is built once per request and passed unchanged to every
// specification.
type Context struct {
	Account   *account.Account
	Amount    decimal.Decimal
	InvoiceID string
}

// Specification is a single stateless fraud heuristic. Implementations only
// read state; deciding what to persist belongs to the invoice processor.
// Store failures are returned as-is, never swallowed.
type Specification interface {
	// Name identifies the specification in logs and instrumentation
	Name() string

	// Evaluate inspects the context and returns a verdict
	Evaluate(ctx context.Context, ec Context) (Verdict, error)
}

// History is the read-only view of an account's invoice history that
// specifications query.
type History interface {
	// ListRecentAmounts returns the amounts of the account's most recent
	// invoices, newest first, at most limit entries.
	ListRecentAmounts(ctx context.Context, accountID string, limit int) ([]decimal.Decimal, error)

	// CountSince counts the account's invoices created at or after the
	// given instant.
	CountSince(ctx context.Context, accountID string, since time.Time) (int64, error)
}
