package fraud

import "context"

// SuspiciousAccountSpecification flags every invoice submitted by an account
// that has been marked suspicious. It needs no history lookup, which is why
// it runs first in the reference configuration.
type SuspiciousAccountSpecification struct{}

// NewSuspiciousAccountSpecification creates the suspicious account rule.
func NewSuspiciousAccountSpecification() *SuspiciousAccountSpecification {
	return &SuspiciousAccountSpecification{}
}

// Name identifies the specification
func (s *SuspiciousAccountSpecification) Name() string {
	return "suspicious_account"
}

// Evaluate matches iff the submitting account carries the suspicious flag.
func (s *SuspiciousAccountSpecification) Evaluate(_ context.Context, ec Context) (Verdict, error) {
	if ec.Account.Suspicious {
		return Flag(ReasonSuspiciousAccount, "Account is suspicious"), nil
	}
	return Clean(), nil
}
