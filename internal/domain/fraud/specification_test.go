package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-antifraud/internal/domain/account"
)

// stubHistory returns canned history data and records how it was queried.
type stubHistory struct {
	amounts []decimal.Decimal
	count   int64
	err     error

	listCalls  int
	countCalls int
	lastLimit  int
	lastSince  time.Time
}

func (s *stubHistory) ListRecentAmounts(_ context.Context, _ string, limit int) ([]decimal.Decimal, error) {
	s.listCalls++
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.amounts) {
		return s.amounts[:limit], nil
	}
	return s.amounts, nil
}

func (s *stubHistory) CountSince(_ context.Context, _ string, since time.Time) (int64, error) {
	s.countCalls++
	s.lastSince = since
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func evalContext(acct *account.Account, amount string) Context {
	return Context{
		Account:   acct,
		Amount:    decimal.RequireFromString(amount),
		InvoiceID: "inv-1",
	}
}

func amounts(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestSuspiciousAccount_FlagsMarkedAccount(t *testing.T) {
	spec := NewSuspiciousAccountSpecification()

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1", Suspicious: true}, "10"))

	require.NoError(t, err)
	assert.True(t, verdict.Fraudulent())
	assert.Equal(t, ReasonSuspiciousAccount, verdict.Reason)
	assert.Equal(t, "Account is suspicious", verdict.Description)
}

func TestSuspiciousAccount_PassesCleanAccount(t *testing.T) {
	spec := NewSuspiciousAccountSpecification()

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "1000000"))

	require.NoError(t, err)
	assert.False(t, verdict.Fraudulent())
}

func TestUnusualAmount_ColdStartNeverFlags(t *testing.T) {
	history := &stubHistory{}
	spec := NewUnusualAmountSpecification(history, 10, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "99999999"))

	require.NoError(t, err)
	assert.False(t, verdict.Fraudulent())
	assert.Equal(t, 10, history.lastLimit)
}

func TestUnusualAmount_FlagsAmountAboveLimit(t *testing.T) {
	// Average 100 with 50% variation gives a limit of 100*1.5 + 100 = 250.
	history := &stubHistory{amounts: amounts("100", "100", "100")}
	spec := NewUnusualAmountSpecification(history, 10, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "250.01"))

	require.NoError(t, err)
	assert.True(t, verdict.Fraudulent())
	assert.Equal(t, ReasonUnusualPattern, verdict.Reason)
	assert.Equal(t, "Amount 250.01 is greater than the average amount 100", verdict.Description)
}

func TestUnusualAmount_PassesAmountAtLimit(t *testing.T) {
	history := &stubHistory{amounts: amounts("100", "100", "100")}
	spec := NewUnusualAmountSpecification(history, 10, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "250"))

	require.NoError(t, err)
	assert.False(t, verdict.Fraudulent())
}

func TestUnusualAmount_AveragesOnlyRecentInvoices(t *testing.T) {
	// Only the two most recent amounts feed the average: avg 100, limit 250.
	history := &stubHistory{amounts: amounts("100", "100", "100000")}
	spec := NewUnusualAmountSpecification(history, 2, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "300"))

	require.NoError(t, err)
	assert.True(t, verdict.Fraudulent())
	assert.Equal(t, 2, history.lastLimit)
}

func TestUnusualAmount_ZeroHistoryCountBehavesAsColdStart(t *testing.T) {
	history := &stubHistory{amounts: amounts("1", "1")}
	spec := NewUnusualAmountSpecification(history, 0, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "99999999"))

	require.NoError(t, err)
	assert.False(t, verdict.Fraudulent())
}

func TestUnusualAmount_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	history := &stubHistory{err: storeErr}
	spec := NewUnusualAmountSpecification(history, 10, decimal.NewFromInt(50))

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "10"))

	assert.ErrorIs(t, err, storeErr)
	assert.False(t, verdict.Fraudulent())
}

func TestFrequentHighValue_PassesAtThreshold(t *testing.T) {
	history := &stubHistory{count: 10}
	spec := NewFrequentHighValueSpecification(history, 24*time.Hour, 10)

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "10"))

	require.NoError(t, err)
	assert.False(t, verdict.Fraudulent())
}

func TestFrequentHighValue_FlagsAboveThreshold(t *testing.T) {
	history := &stubHistory{count: 11}
	spec := NewFrequentHighValueSpecification(history, 24*time.Hour, 10)

	verdict, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-7"}, "10"))

	require.NoError(t, err)
	assert.True(t, verdict.Fraudulent())
	assert.Equal(t, ReasonFrequentHighValue, verdict.Reason)
	assert.Equal(t, "Account acc-7 has more than 10 invoices in the last 24h0m0s", verdict.Description)
}

func TestFrequentHighValue_QueriesTrailingWindow(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &stubHistory{count: 0}
	spec := NewFrequentHighValueSpecification(history, 24*time.Hour, 10)
	spec.now = func() time.Time { return fixed }

	_, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "10"))

	require.NoError(t, err)
	assert.Equal(t, fixed.Add(-24*time.Hour), history.lastSince)
}

func TestFrequentHighValue_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("timeout")
	history := &stubHistory{err: storeErr}
	spec := NewFrequentHighValueSpecification(history, 24*time.Hour, 10)

	_, err := spec.Evaluate(context.Background(), evalContext(&account.Account{ID: "acc-1"}, "10"))

	assert.ErrorIs(t, err, storeErr)
}
