package driven

import "context"

// Calculator evaluates arithmetic input.
type Calculator interface {
	// Evaluate returns the computed value of expr. ok is false when expr
	// is not something the calculator understands.
	Evaluate(ctx context.Context, expr string) (value string, ok bool)
}
