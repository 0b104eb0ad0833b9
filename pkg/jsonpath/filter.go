// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

// termKind tags a resolved filter term (§4.5).
type termKind int

const (
	termInteger termKind = iota
	termFloat
	termString
	termBool
	termNull
	termValue
	// termInvalid marks a sub-query that yielded zero or more than one
	// value: treated as "does not exist" under existence predicates and
	// "not comparable" under every comparison operator.
	termInvalid
)

type termResult struct {
	kind termKind
	i    int64
	f    float64
	s    string
	b    bool
	v    jsonvalue.Value
}

// evalFilterExpr is the entry point for C5: a boolean composition of
// single-filter terms with AND/OR short-circuit precedence (`&&` binds
// tighter than `||`).
func evalFilterExpr(expr *FilterExpr, current, root jsonvalue.Value) bool {
	acc := evalSingle(expr.First, current, root)
	return evalRest(acc, expr.Rest, current, root)
}

// evalRest implements the two-phase "peek next op, decide, advance" loop
// §9 calls for: on '&&', the right operand's token is always consumed,
// but only evaluated when the accumulator is still true; on '||', a true
// accumulator short-circuits immediately, otherwise evaluation tail-walks
// the remaining operands so subsequent '&&' runs stay grouped together.
func evalRest(acc bool, rest []*OpOperand, current, root jsonvalue.Value) bool {
	i := 0
	for i < len(rest) {
		operand := rest[i]
		switch operand.Op {
		case "&&":
			if acc {
				acc = evalOperand(operand, current, root)
			}
			i++
		case "||":
			if acc {
				return true
			}
			acc = evalOperand(operand, current, root)
			i++
		default:
			i++
		}
	}
	return acc
}

func evalOperand(operand *OpOperand, current, root jsonvalue.Value) bool {
	if operand.Group != nil {
		return evalFilterExpr(operand.Group, current, root)
	}
	return evalSingle(operand.Single, current, root)
}

// evalSingle evaluates `term (cmp term)?`. A bare term (no comparator) is
// an existence predicate: true iff it did not resolve to Invalid.
func evalSingle(s *Single, current, root jsonvalue.Value) bool {
	left := resolveTerm(s.Left, current, root)
	if s.Cmp == "" {
		return left.kind != termInvalid
	}
	right := resolveTerm(s.Right, current, root)
	return compareTerms(s.Cmp, left, right)
}

func resolveTerm(t *Term, current, root jsonvalue.Value) termResult {
	switch {
	case t.Number != nil:
		return resolveNumberLiteral(*t.Number)
	case t.Str != nil:
		return termResult{kind: termString, s: unescapeQuoted(*t.Str)}
	case t.Bool != nil:
		return termResult{kind: termBool, b: *t.Bool}
	case t.Null != nil:
		return termResult{kind: termNull}
	case t.Subquery != nil:
		return resolveSubqueryTerm(t.Subquery, current, root)
	default:
		return termResult{kind: termInvalid}
	}
}

func resolveNumberLiteral(raw string) termResult {
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return termResult{kind: termInteger, i: n}
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return termResult{kind: termInvalid}
	}
	return termResult{kind: termFloat, f: f}
}

// resolveSubqueryTerm evaluates a `@`/`$`-rooted sub-query. Exactly one
// resulting value produces a Value term; zero or more than one produces
// Invalid (§4.5, §9 Open Question (b): the same convention is applied to
// both the zero- and many-result cases).
func resolveSubqueryTerm(sq *Subquery, current, root jsonvalue.Value) termResult {
	start := root
	if sq.Root == "@" {
		start = current
	}

	values, err := evalSubqueryValues(sq, start, root)
	if err != nil || len(values) != 1 {
		return termResult{kind: termInvalid}
	}
	return termResult{kind: termValue, v: values[0]}
}

// unwrapValue projects a termValue down to a scalar term kind by
// inspecting its JSON type, per §4.5: Long→Integer, Double→Float,
// String→String, Bool→Bool, Null→Null; containers are not comparable and
// are left as termValue (so compareTerms falls through to "not comparable").
func unwrapValue(t termResult) termResult {
	if t.kind != termValue {
		return t
	}
	switch t.v.Type() {
	case jsonvalue.TypeLong:
		return termResult{kind: termInteger, i: t.v.Long()}
	case jsonvalue.TypeDouble:
		return termResult{kind: termFloat, f: t.v.Double()}
	case jsonvalue.TypeString:
		return termResult{kind: termString, s: t.v.Str()}
	case jsonvalue.TypeBool:
		return termResult{kind: termBool, b: t.v.Bool()}
	case jsonvalue.TypeNull:
		return termResult{kind: termNull}
	default:
		return t
	}
}

// compareTerms implements §4.5's comparison table. The Value==Value fast
// path (both sides remain containers after unwrapping) defers to content
// equality without coercion; every other "not comparable" pairing yields
// false for every comparator except `!=`, which is its negation.
func compareTerms(cmp string, leftRaw, rightRaw termResult) bool {
	if cmp == "=~" {
		return evalRegex(leftRaw, rightRaw)
	}

	left := unwrapValue(leftRaw)
	right := unwrapValue(rightRaw)

	if left.kind == termValue && right.kind == termValue {
		eq := left.v.Equal(right.v)
		switch cmp {
		case "==":
			return eq
		case "!=":
			return !eq
		default:
			return false
		}
	}

	ord, comparable := compareOrdered(left, right)
	switch cmp {
	case "==":
		return comparable && ord == 0
	case "!=":
		return !comparable || ord != 0
	case "<":
		return comparable && ord < 0
	case "<=":
		return comparable && ord <= 0
	case ">":
		return comparable && ord > 0
	case ">=":
		return comparable && ord >= 0
	default:
		return false
	}
}

// compareOrdered returns (-1|0|1, true) when left and right are
// comparable, or (0, false) otherwise. Integer/Float widen together;
// every other pairing must share the same kind.
func compareOrdered(left, right termResult) (int, bool) {
	if (left.kind == termInteger || left.kind == termFloat) &&
		(right.kind == termInteger || right.kind == termFloat) {
		lf, rf := asFloat(left), asFloat(right)
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	}

	if left.kind != right.kind {
		return 0, false
	}

	switch left.kind {
	case termString:
		return strings.Compare(left.s, right.s), true
	case termBool:
		return boolCompare(left.b, right.b), true
	case termNull:
		return 0, true
	default:
		return 0, false
	}
}

func asFloat(t termResult) float64 {
	if t.kind == termInteger {
		return float64(t.i)
	}
	return t.f
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

// evalRegex implements `=~`: the left operand's string form is tested as
// a regex against the right operand's string form. An invalid regex, or
// an operand with no string form, yields false — never an error.
func evalRegex(leftRaw, rightRaw termResult) bool {
	left := unwrapValue(leftRaw)
	right := unwrapValue(rightRaw)

	subject, ok := asString(left)
	if !ok {
		return false
	}
	pattern, ok := asString(right)
	if !ok {
		return false
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(subject)
}

func asString(t termResult) (string, bool) {
	if t.kind == termString {
		return t.s, true
	}
	return "", false
}
