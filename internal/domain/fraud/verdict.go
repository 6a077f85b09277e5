package fraud

// Reason categorizes a positive fraud verdict
type Reason string

const (
	ReasonSuspiciousAccount Reason = "SUSPICIOUS_ACCOUNT"
	ReasonUnusualPattern    Reason = "UNUSUAL_PATTERN"
	ReasonFrequentHighValue Reason = "FREQUENT_HIGH_VALUE"
)

// Verdict is the outcome of evaluating a specification (or the whole
// aggregate) against one invoice. A zero Reason means the invoice is clean;
// a description is only ever carried alongside a reason, so a "clean verdict
// with a reason attached" is not representable.
type Verdict struct {
	Reason      Reason `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

// Clean returns the verdict for an invoice no specification matched.
func Clean() Verdict {
	return Verdict{}
}

// Flag returns a positive verdict with the given reason and description.
func Flag(reason Reason, description string) Verdict {
	return Verdict{Reason: reason, Description: description}
}

// Fraudulent reports whether the verdict flags the invoice.
func (v Verdict) Fraudulent() bool {
	return v.Reason != ""
}
