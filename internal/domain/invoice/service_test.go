package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-antifraud/internal/domain/account"
	"invoice-antifraud/internal/domain/fraud"
	"invoice-antifraud/internal/domain/invoice"
)

type fakeInvoiceRepo struct {
	invoices map[string]*invoice.Invoice
	records  map[string]*invoice.FraudRecord

	getErr    error
	createErr error

	getCalls    int
	createCalls int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*invoice.Invoice),
		records:  make(map[string]*invoice.FraudRecord),
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *invoice.Invoice, record *invoice.FraudRecord) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.invoices[inv.ID]; exists {
		return invoice.ErrDuplicateInvoice
	}
	inv.CreatedAt = time.Now().UTC()
	r.invoices[inv.ID] = inv
	if record != nil {
		record.CreatedAt = inv.CreatedAt
		r.records[inv.ID] = record
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*invoice.Invoice, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, invoice.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) GetFraudRecord(_ context.Context, invoiceID string) (*invoice.FraudRecord, error) {
	record, ok := r.records[invoiceID]
	if !ok {
		return nil, invoice.ErrFraudRecordNotFound
	}
	return record, nil
}

func (r *fakeInvoiceRepo) ListByAccount(_ context.Context, _ string, _ int) ([]*invoice.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) ListRecentAmounts(_ context.Context, _ string, _ int) ([]decimal.Decimal, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) CountByAccountSince(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeAccountRepo struct {
	accounts map[string]*account.Account
	err      error
	calls    int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*account.Account)}
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*account.Account, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return acc, nil
}

func (r *fakeAccountRepo) GetOrCreate(_ context.Context, id string) (*account.Account, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if acc, ok := r.accounts[id]; ok {
		return acc, nil
	}
	acc := account.New(id)
	r.accounts[id] = acc
	return acc, nil
}

type fakeDetector struct {
	verdict fraud.Verdict
	err     error
	calls   int
	lastCtx fraud.Context
}

func (d *fakeDetector) Evaluate(_ context.Context, ec fraud.Context) (fraud.Verdict, error) {
	d.calls++
	d.lastCtx = ec
	return d.verdict, d.err
}

func newProcessor(t *testing.T) (*invoice.Processor, *fakeInvoiceRepo, *fakeAccountRepo, *fakeDetector) {
	t.Helper()
	invoices := newFakeInvoiceRepo()
	accounts := newFakeAccountRepo()
	detector := &fakeDetector{}
	return invoice.NewProcessor(invoices, accounts, detector), invoices, accounts, detector
}

func TestProcess_ApprovesCleanInvoice(t *testing.T) {
	p, invoices, _, _ := newProcessor(t)

	result, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.Equal(t, invoice.StatusApproved, result.Invoice.Status)
	assert.False(t, result.Verdict.Fraudulent())
	assert.False(t, result.Invoice.CreatedAt.IsZero())
	assert.Contains(t, invoices.invoices, "inv-1")
	assert.NotContains(t, invoices.records, "inv-1")
}

func TestProcess_RejectsFlaggedInvoiceWithRecord(t *testing.T) {
	p, invoices, _, detector := newProcessor(t)
	detector.verdict = fraud.Flag(fraud.ReasonSuspiciousAccount, "Account is suspicious")

	result, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.Equal(t, invoice.StatusRejected, result.Invoice.Status)
	assert.Equal(t, fraud.ReasonSuspiciousAccount, result.Verdict.Reason)

	record := invoices.records["inv-1"]
	require.NotNil(t, record)
	assert.Equal(t, "inv-1", record.InvoiceID)
	assert.Equal(t, fraud.ReasonSuspiciousAccount, record.Reason)
	assert.Equal(t, "Account is suspicious", record.Description)
	assert.NotEqual(t, "", record.ID.String())
	assert.Equal(t, 1, invoices.createCalls)
}

func TestProcess_DuplicateIDRejectedWithoutSideEffects(t *testing.T) {
	p, invoices, _, detector := newProcessor(t)

	first, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(999))

	assert.ErrorIs(t, err, invoice.ErrDuplicateInvoice)
	assert.Equal(t, 1, detector.calls)
	assert.Equal(t, 1, invoices.createCalls)

	stored := invoices.invoices["inv-1"]
	assert.True(t, stored.Amount.Equal(first.Invoice.Amount))
	assert.Equal(t, first.Invoice.Status, stored.Status)
}

func TestProcess_DuplicateFromStoreConstraint(t *testing.T) {
	// The fast-path lookup can miss a concurrent insert; the store's
	// uniqueness violation must still surface as a duplicate.
	p, invoices, _, _ := newProcessor(t)
	invoices.createErr = invoice.ErrDuplicateInvoice

	_, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(100))

	assert.ErrorIs(t, err, invoice.ErrDuplicateInvoice)
}

func TestProcess_ValidatesBeforeStoreAccess(t *testing.T) {
	tests := []struct {
		name      string
		invoiceID string
		accountID string
		amount    decimal.Decimal
		wantErr   error
	}{
		{"missing invoice id", "", "acc-1", decimal.NewFromInt(10), invoice.ErrMissingInvoiceID},
		{"missing account id", "inv-1", "", decimal.NewFromInt(10), invoice.ErrMissingAccountID},
		{"negative amount", "inv-1", "acc-1", decimal.NewFromInt(-1), invoice.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, invoices, accounts, detector := newProcessor(t)

			_, err := p.Process(context.Background(), tt.invoiceID, tt.accountID, tt.amount)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, invoices.getCalls)
			assert.Equal(t, 0, invoices.createCalls)
			assert.Equal(t, 0, accounts.calls)
			assert.Equal(t, 0, detector.calls)
		})
	}
}

func TestProcess_ZeroAmountIsValid(t *testing.T) {
	p, _, _, _ := newProcessor(t)

	result, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, invoice.StatusApproved, result.Invoice.Status)
}

func TestProcess_MaterializesAccountOnFirstUse(t *testing.T) {
	p, _, accounts, detector := newProcessor(t)

	_, err := p.Process(context.Background(), "inv-1", "acc-new", decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.Contains(t, accounts.accounts, "acc-new")
	assert.Equal(t, "acc-new", detector.lastCtx.Account.ID)
	assert.Equal(t, "inv-1", detector.lastCtx.InvoiceID)
}

func TestProcess_PropagatesLookupFailure(t *testing.T) {
	p, invoices, _, detector := newProcessor(t)
	storeErr := errors.New("connection refused")
	invoices.getErr = storeErr

	_, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, detector.calls)
	assert.Equal(t, 0, invoices.createCalls)
}

func TestProcess_PropagatesDetectorFailure(t *testing.T) {
	p, invoices, _, detector := newProcessor(t)
	storeErr := errors.New("history query failed")
	detector.err = storeErr

	_, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, invoices.createCalls)
}

func TestProcess_PropagatesAccountFailure(t *testing.T) {
	p, invoices, accounts, detector := newProcessor(t)
	storeErr := errors.New("account store down")
	accounts.err = storeErr

	_, err := p.Process(context.Background(), "inv-1", "acc-1", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, detector.calls)
	assert.Equal(t, 0, invoices.createCalls)
}
