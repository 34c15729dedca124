// Package arith evaluates infix arithmetic expressions over a fixed set of
// operators.
//
// Alongside the usual arithmetic, the operator table includes averaging with
// a@b, maximum with a$b, minimum with a&b, fmod-style remainder with a%b,
// prefix negation with ~a, and postfix factorial with a!. Parenthesized
// groups bind tightest, then !, then the prefix operators, then @, $, and &,
// then %, then ^, then * and /, then + and -. A - where a term is expected
// is negation; anywhere else it is subtraction.
//
// Expressions are parsed to a tree once and may then be evaluated any number
// of times, concurrently if needed.
package arith
