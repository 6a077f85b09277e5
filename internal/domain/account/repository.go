package account

import "context"

// Repository manages account persistence
type Repository interface {
	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetOrCreate returns the account with the given ID, creating it with
	// default state if it does not exist. Concurrent first-time calls for
	// the same ID must resolve to a single row.
	GetOrCreate(ctx context.Context, id string) (*Account, error)
}
