// Package calculator evaluates arithmetic typed into the launcher using an
// embedded JavaScript runtime restricted to numeric expressions.
package calculator

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
)

// Ensure Calculator implements the interface.
var _ driven.Calculator = (*Calculator)(nil)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 50 * time.Millisecond

var (
	// allowedChars is everything an expression may contain.
	allowedChars = regexp.MustCompile(`^[0-9a-zA-Z_+\-*/%^().,\s]+$`)
	identifiers  = regexp.MustCompile(`[a-zA-Z_][a-zA-Z_0-9]*`)
	hasOperator  = regexp.MustCompile(`[+\-*/%^(]`)
)

// functions maps accepted identifiers to their Math equivalents.
var functions = map[string]string{
	"abs":   "Math.abs",
	"ceil":  "Math.ceil",
	"cos":   "Math.cos",
	"exp":   "Math.exp",
	"floor": "Math.floor",
	"ln":    "Math.log",
	"log":   "Math.log10",
	"max":   "Math.max",
	"min":   "Math.min",
	"pow":   "Math.pow",
	"round": "Math.round",
	"sin":   "Math.sin",
	"sqrt":  "Math.sqrt",
	"tan":   "Math.tan",
	"pi":    "Math.PI",
	"e":     "Math.E",
}

var errRejected = errors.New("not an arithmetic expression")

// Calculator evaluates expressions with goja.
type Calculator struct {
	timeout time.Duration
}

// New creates a calculator with DefaultTimeout.
func New() *Calculator {
	return &Calculator{timeout: DefaultTimeout}
}

// WithTimeout returns a copy of c using d as the evaluation limit.
func (c *Calculator) WithTimeout(d time.Duration) *Calculator {
	return &Calculator{timeout: d}
}

// Evaluate computes expr. ok is false for anything that is not a finite
// arithmetic expression.
func (c *Calculator) Evaluate(ctx context.Context, expr string) (string, bool) {
	src, err := translate(expr)
	if err != nil {
		return "", false
	}

	v, err := c.run(ctx, src)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return Format(v), true
}

func (c *Calculator) run(ctx context.Context, src string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	vm := goja.New()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	val, err := vm.RunString(src)
	if err != nil {
		return 0, err
	}
	switch val.Export().(type) {
	case int64, float64:
		return val.ToFloat(), nil
	default:
		return 0, errRejected
	}
}

// translate validates expr and rewrites it into JavaScript.
func translate(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || !allowedChars.MatchString(expr) || !hasOperator.MatchString(expr) {
		return "", errRejected
	}

	var unknown bool
	src := identifiers.ReplaceAllStringFunc(expr, func(id string) string {
		fn, ok := functions[strings.ToLower(id)]
		if !ok {
			unknown = true
		}
		return fn
	})
	if unknown {
		return "", errRejected
	}

	return strings.ReplaceAll(src, "^", "**"), nil
}

// Format renders v without exponent notation or trailing zeros.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
