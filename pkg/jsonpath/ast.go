// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

// Package jsonpath compiles and evaluates JSONPath expressions against an
// abstract JSON document (pkg/jsonvalue.Value).
package jsonpath

import (
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
)

// pathLexer tokenises the JSONPath surface syntax (§6 of the grammar).
// Order matters: longer/more-specific patterns come before shorter ones
// that share a prefix, mirroring the DSL lexer's "&&" before "!" ordering.
var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
	{Name: "Number", Pattern: `-?[0-9]+(?:\.[0-9]+)?`},
	{Name: "DotDot", Pattern: `\.\.`},
	{Name: "AndAnd", Pattern: `&&`},
	{Name: "OrOr", Pattern: `\|\|`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpRegex", Pattern: `=~`},
	{Name: "OpGt", Pattern: `>`},
	{Name: "OpLt", Pattern: `<`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "At", Pattern: `@`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Question", Pattern: `\?`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

// astQuery is the top-level grammar production: `query ← ('$' | '') step*`.
// It is the participle parse tree; Compile lowers it into the public,
// introspectable Query handle defined in query.go.
type astQuery struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Root  string         `parser:"@(Dollar)?" json:"root,omitempty"`
	Steps []*Step        `parser:"@@*" json:"steps"`
}

// Step is one of: recursive descent, dot-child, bracket, or bare wildcard.
//
// Grammar: step ← dot_child | bracket | '..' step | '*'
type Step struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Recursive *RecursiveStep `parser:"  @@" json:"recursive,omitempty"`
	DotChild  *DotChild      `parser:"| @@" json:"dotChild,omitempty"`
	Bracket   *Bracket       `parser:"| @@" json:"bracket,omitempty"`
	Wildcard  bool           `parser:"| @Star" json:"wildcard,omitempty"`
}

// RecursiveStep matches '..' followed by exactly one further step; chained
// continuation after that lives as sibling entries in the enclosing
// Query/Subquery.Steps slice, not nested inside this struct.
type RecursiveStep struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Next *Step          `parser:"DotDot @@" json:"next"`
}

// DotChild matches '.' (literal | '*' | bracket).
type DotChild struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Literal  string         `parser:"Dot (  @Ident" json:"literal,omitempty"`
	Wildcard bool           `parser:"    | @Star" json:"wildcard,omitempty"`
	Bracket  *Bracket       `parser:"    | @@ )" json:"bracket,omitempty"`
}

// Bracket matches '[' inner ']'. Alternatives are tried in this order so
// participle's backtracking resolves the Number/Slice ambiguity correctly:
// Filter and Strings are unambiguous on their leading token; Slice is tried
// before Numbers because both can start with a Number token, but Slice
// requires a mandatory ':' and so cleanly backtracks into Numbers for a
// bare index or index-union; Wildcard (bare '*') is tried last.
type Bracket struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Filter   *Filter        `parser:"LBracket (  @@" json:"filter,omitempty"`
	Slice    *Slice         `parser:"           | @@" json:"slice,omitempty"`
	Numbers  *NumberList    `parser:"           | @@" json:"numbers,omitempty"`
	Strings  *StringList    `parser:"           | @@" json:"strings,omitempty"`
	Wildcard bool           `parser:"           | @Star )  RBracket" json:"wildcard,omitempty"`
}

// Slice matches `int? ':' int? (':' uint)?`. The second colon and its
// step value form a pair: the grammar never allows a dangling ':' without
// a following integer, nor a step without its own leading ':'.
type Slice struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Start *int64         `parser:"@Number?" json:"start,omitempty"`
	Colon string         `parser:"@Colon" json:"-"`
	End   *int64         `parser:"@Number?" json:"end,omitempty"`
	Step  *int64         `parser:"(Colon @Number)?" json:"step,omitempty"`
}

// NumberList matches `signed_int (',' signed_int)*`: a single index or an
// index union.
type NumberList struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Values []int64        `parser:"@Number (Comma @Number)*" json:"values"`
}

// StringList matches `qstring (',' qstring)*`. Values are captured WITH
// their surrounding quotes (no participle.Unquote): the raw text is
// unescaped manually later using the grammar's 3-rule escape table, which
// differs from Go string-literal unescaping.
type StringList struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Values []string       `parser:"@String (Comma @String)*" json:"values"`
}

// Filter matches `'?' '(' fexpr ')'`.
type Filter struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Expr *FilterExpr    `parser:"Question LParen @@ RParen" json:"expr"`
}

// FilterExpr matches `single (('&&' | '||') single | ('&&' | '||') '(' fexpr ')')*`.
//
// Deliberately asymmetric, per the grammar as written: the FIRST operand
// must be a bare Single, never a parenthesised group. Only operands that
// follow an explicit operator may be parenthesised.
type FilterExpr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	First *Single        `parser:"@@" json:"first"`
	Rest  []*OpOperand   `parser:"@@*" json:"rest,omitempty"`
}

// OpOperand is one `op single` or `op '(' fexpr ')'` tail of a FilterExpr.
type OpOperand struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Op    string         `parser:"@(AndAnd | OrOr)" json:"op"`
	Group *FilterExpr    `parser:"(  LParen @@ RParen" json:"group,omitempty"`
	Single *Single       `parser:" | @@ )" json:"single,omitempty"`
}

// Single matches `term (cmp term)?`. A bare term with no comparator is an
// existence predicate.
type Single struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *Term          `parser:"@@" json:"left"`
	Cmp   string         `parser:"(@(OpEq | OpNe | OpGe | OpLe | OpGt | OpLt | OpRegex)" json:"cmp,omitempty"`
	Right *Term          `parser:"  @@)?" json:"right,omitempty"`
}

// Term matches `number | qstring | 'true' | 'false' | 'null' | subquery`.
//
// Number keeps the raw decimal text rather than a parsed float64: the
// filter evaluator's term kinds distinguish Integer from Float (§4.5),
// and a float64 capture would lose that distinction for whole-number
// literals.
type Term struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Number   *string        `parser:"  @Number" json:"number,omitempty"`
	Str      *string        `parser:"| @String" json:"str,omitempty"`
	Bool     *bool          `parser:"| @(\"true\" | \"false\")" json:"bool,omitempty"`
	Null     *string        `parser:"| @\"null\"" json:"null,omitempty"`
	Subquery *Subquery      `parser:"| @@" json:"subquery,omitempty"`
}

// Subquery matches `('@' | '$') step*`.
type Subquery struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Root  string         `parser:"@(At | Dollar)" json:"root"`
	Steps []*Step        `parser:"@@*" json:"steps"`

	// opsOnce/ops memoise the lowered selector ops for this subquery: a
	// filter term is re-evaluated once per candidate node, so lowering it
	// once and reusing the flat op slice avoids re-walking the parse tree
	// on every candidate.
	opsOnce sync.Once
	ops     []op
	opsErr  error
}

func (sq *Subquery) lowered() ([]op, error) {
	sq.opsOnce.Do(func() {
		sq.ops, sq.opsErr = lowerSteps(sq.Steps)
	})
	return sq.ops, sq.opsErr
}
