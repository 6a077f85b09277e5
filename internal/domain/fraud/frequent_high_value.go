package fraud

import (
	"context"
	"fmt"
	"time"
)

// FrequentHighValueSpecification flags accounts that submit more invoices
// inside a trailing time window than the configured threshold allows.
type FrequentHighValueSpecification struct {
	history   History
	timeframe time.Duration
	threshold int64
	now       func() time.Time
}

// NewFrequentHighValueSpecification creates the frequency rule. The rule
// matches when the number of invoices created within the trailing timeframe
// strictly exceeds threshold.
func NewFrequentHighValueSpecification(history History, timeframe time.Duration, threshold int64) *FrequentHighValueSpecification {
	return &FrequentHighValueSpecification{
		history:   history,
		timeframe: timeframe,
		threshold: threshold,
		now:       time.Now,
	}
}

// Name identifies the specification
func (s *FrequentHighValueSpecification) Name() string {
	return "frequent_high_value"
}

// Evaluate counts the account's invoices created at or after now-timeframe
// and matches iff that count is strictly greater than the threshold.
func (s *FrequentHighValueSpecification) Evaluate(ctx context.Context, ec Context) (Verdict, error) {
	since := s.now().Add(-s.timeframe)

	count, err := s.history.CountSince(ctx, ec.Account.ID, since)
	if err != nil {
		return Clean(), err
	}

	if count > s.threshold {
		return Flag(
			ReasonFrequentHighValue,
			fmt.Sprintf("Account %s has more than %d invoices in the last %s", ec.Account.ID, s.threshold, s.timeframe),
		), nil
	}
	return Clean(), nil
}
