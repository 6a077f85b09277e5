package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/account"
	"invoice-antifraud/internal/domain/invoice"
)

// In-memory stores used when PostgreSQL is unavailable. They keep the same
// semantics as the database-backed repositories, including the uniqueness
// guarantee on invoice IDs.

type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[string]*account.Account)}
}

func (r *memoryAccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (r *memoryAccountRepository) GetOrCreate(ctx context.Context, id string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if acc, ok := r.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	acc := account.New(id)
	r.accounts[id] = acc
	copied := *acc
	return &copied, nil
}

type memoryInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
	records  map[string]*invoice.FraudRecord
}

func newMemoryInvoiceRepository() *memoryInvoiceRepository {
	return &memoryInvoiceRepository{
		invoices: make(map[string]*invoice.Invoice),
		records:  make(map[string]*invoice.FraudRecord),
	}
}

func (r *memoryInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice, record *invoice.FraudRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.invoices[inv.ID]; exists {
		return invoice.ErrDuplicateInvoice
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	stored := *inv
	r.invoices[inv.ID] = &stored
	if record != nil {
		record.CreatedAt = now
		storedRecord := *record
		r.records[inv.ID] = &storedRecord
	}
	return nil
}

func (r *memoryInvoiceRepository) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, invoice.ErrInvoiceNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *memoryInvoiceRepository) GetFraudRecord(ctx context.Context, invoiceID string) (*invoice.FraudRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[invoiceID]
	if !ok {
		return nil, invoice.ErrFraudRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *memoryInvoiceRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.byAccountNewestFirst(accountID)
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memoryInvoiceRepository) ListRecentAmounts(ctx context.Context, accountID string, limit int) ([]decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.byAccountNewestFirst(accountID)
	if limit < len(matched) {
		matched = matched[:limit]
	}
	amounts := make([]decimal.Decimal, len(matched))
	for i, inv := range matched {
		amounts[i] = inv.Amount
	}
	return amounts, nil
}

func (r *memoryInvoiceRepository) CountByAccountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, inv := range r.invoices {
		if inv.AccountID == accountID && !inv.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// CountSince satisfies fraud.History.
func (r *memoryInvoiceRepository) CountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	return r.CountByAccountSince(ctx, accountID, since)
}

func (r *memoryInvoiceRepository) byAccountNewestFirst(accountID string) []*invoice.Invoice {
	var matched []*invoice.Invoice
	for _, inv := range r.invoices {
		if inv.AccountID == accountID {
			copied := *inv
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}
