package account

import "time"

// Account represents a billing account that submits invoices.
// The ID is supplied by the caller; accounts are materialized on first
// reference and never deleted here. The suspicious flag is set by an
// external review process and is read-only from this service's perspective.
type Account struct {
	ID         string    `json:"id"`
	Suspicious bool      `json:"is_suspicious"`
	CreatedAt  time.Time `json:"created_at"`
}

// New creates a new account with default (non-suspicious) state.
func New(id string) *Account {
	return &Account{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}
