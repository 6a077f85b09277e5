package fraud

import "context"

// Aggregate composes an ordered list of specifications into a single verdict.
// It knows nothing about which rules it holds: specifications can be added,
// removed or reordered at wiring time without touching this type.
type Aggregate struct {
	specs []Specification
}

// NewAggregate creates an aggregate that evaluates the given specifications
// in the order they are passed.
func NewAggregate(specs ...Specification) *Aggregate {
	return &Aggregate{specs: specs}
}

// Evaluate runs the specifications in priority order and returns the first
// positive verdict without evaluating the rest; later rules may need extra
// store queries, so short-circuiting keeps the common path cheap. A store
// failure from any specification aborts the evaluation and propagates
// unchanged. When nothing matches, the verdict is clean.
func (a *Aggregate) Evaluate(ctx context.Context, ec Context) (Verdict, error) {
	for _, spec := range a.specs {
		verdict, err := spec.Evaluate(ctx, ec)
		if err != nil {
			return Clean(), err
		}
		if verdict.Fraudulent() {
			return verdict, nil
		}
	}
	return Clean(), nil
}
