package fraud

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// UnusualAmountSpecification flags invoices whose amount is far above the
// account's historical average. Accounts with no prior invoices are never
// flagged by this rule.
type UnusualAmountSpecification struct {
	history      History
	historyCount int
	variationPct decimal.Decimal
}

// NewUnusualAmountSpecification creates the unusual amount rule.
// historyCount bounds how many recent invoices feed the average;
// variationPct is the allowed percentage band above double the average.
func NewUnusualAmountSpecification(history History, historyCount int, variationPct decimal.Decimal) *UnusualAmountSpecification {
	return &UnusualAmountSpecification{
		history:      history,
		historyCount: historyCount,
		variationPct: variationPct,
	}
}

// Name identifies the specification
func (s *UnusualAmountSpecification) Name() string {
	return "unusual_amount"
}

// Evaluate matches iff amount > avg*(1 + variationPct/100) + avg, where avg
// is the arithmetic mean of the account's most recent invoice amounts.
func (s *UnusualAmountSpecification) Evaluate(ctx context.Context, ec Context) (Verdict, error) {
	amounts, err := s.history.ListRecentAmounts(ctx, ec.Account.ID, s.historyCount)
	if err != nil {
		return Clean(), err
	}
	if len(amounts) == 0 {
		return Clean(), nil
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(amounts))))

	variation := s.variationPct.Div(decimal.NewFromInt(100))
	limit := avg.Mul(decimal.NewFromInt(1).Add(variation)).Add(avg)

	if ec.Amount.GreaterThan(limit) {
		return Flag(
			ReasonUnusualPattern,
			fmt.Sprintf("Amount %s is greater than the average amount %s", ec.Amount, avg),
		), nil
	}
	return Clean(), nil
}
