package arith

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Eval evaluates the expression and returns its value. Evaluation has no
// side effects, so an Expr may be evaluated concurrently.
func (e *Expr) Eval() (float64, error) {
	return e.n.eval()
}

// eval computes the node's value.
func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeNum:
		v, err := strconv.ParseFloat(n.name, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only emits literals ParseFloat accepts; out-of-range
			// literals saturate to ±Inf, as ParseFloat returns.
			panic("arith: invalid number: " + n.name + " (" + err.Error() + ")")
		}
		return v, nil
	case nodeNeg:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeFac:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return factorial(v)
	}
	// The remaining kinds are binary.
	l, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	switch n.kind {
	case nodeAdd:
		return l + r, nil
	case nodeSub:
		return l - r, nil
	case nodeMul:
		return l * r, nil
	case nodeDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		// Guard against inf/inf, which has no value.
		if math.IsInf(l, 0) && math.IsInf(r, 0) {
			return 0, &DomainError{X: r, Func: "/"}
		}
		return l / r, nil
	case nodeMod:
		// Remainder with the sign of the dividend, like C fmod. x%0 and
		// inf%y have no real value.
		if r == 0 {
			return 0, &DomainError{X: r, Func: "%"}
		}
		v := math.Mod(l, r)
		if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
			return 0, &DomainError{X: l, Func: "%"}
		}
		return v, nil
	case nodePow:
		v := math.Pow(l, r)
		if math.IsNaN(v) && !math.IsNaN(l) && !math.IsNaN(r) {
			// A negative base with a non-integral exponent has no real value.
			return 0, &DomainError{X: l, Func: "^"}
		}
		if math.IsInf(v, 0) && !math.IsInf(l, 0) && !math.IsInf(r, 0) {
			return 0, &OverflowError{Func: "^"}
		}
		return v, nil
	case nodeAvg:
		return (l + r) / 2, nil
	case nodeMax:
		return math.Max(l, r), nil
	case nodeMin:
		return math.Min(l, r), nil
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}

// factorial computes x! for non-negative integral x. 170! is the largest
// factorial a float64 can hold.
func factorial(x float64) (float64, error) {
	if x != math.Trunc(x) || x < 0 {
		return 0, &DomainError{X: x, Func: "!"}
	}
	if x > 170 {
		return 0, &OverflowError{Func: "!"}
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}

// Eval is a shortcut to parse an expression and evaluate it.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}

// Format renders a value as the shortest decimal text that parses back to
// the same value, so evaluating the output of Format is the identity.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EvalError is an error from applying an operator to operands outside its
// domain. Every error resulting from evaluating a well-formed expression
// implements EvalError.
type EvalError interface {
	error
	// Op returns the symbol of the operator that failed.
	Op() string
}

// DivisionByZeroError is an error from dividing by zero.
type DivisionByZeroError struct{}

func (*DivisionByZeroError) Error() string {
	return "division by zero"
}

func (*DivisionByZeroError) Op() string {
	return "/"
}

// DomainError is an error returned when an operator is applied to an operand
// outside its domain, e.g. the factorial of a negative or non-integral
// value.
type DomainError struct {
	// X is the out-of-domain operand.
	X float64
	// Func is the symbol of the operator.
	Func string
}

func (err *DomainError) Error() string {
	return Format(err.X) + " outside domain of " + err.Func
}

func (err *DomainError) Op() string {
	return err.Func
}

// OverflowError is an error returned when an operation on in-range operands
// produces a result beyond the range of a float64.
type OverflowError struct {
	// Func is the symbol of the operator.
	Func string
}

func (err *OverflowError) Error() string {
	return "result of " + err.Func + " overflows"
}

func (err *OverflowError) Op() string {
	return err.Func
}

var (
	_ EvalError = (*DivisionByZeroError)(nil)
	_ EvalError = (*DomainError)(nil)
	_ EvalError = (*OverflowError)(nil)
)
