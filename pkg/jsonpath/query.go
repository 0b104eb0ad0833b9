// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"
)

var grammarParser = mustBuildParser()

func mustBuildParser() *participle.Parser[astQuery] {
	p, err := participle.Build[astQuery](
		participle.Lexer(pathLexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
	if err != nil {
		panic(fmt.Sprintf("jsonpath: failed to build grammar parser: %v", err))
	}
	return p
}

// opKind tags one lowered selector operation.
type opKind int

const (
	opDotLiteral opKind = iota
	opWildcard
	opRecursive
	opNumberList
	opStringList
	opSlice
	opFilter
)

// sliceSpec holds a lowered slice's (possibly absent) endpoints and step.
type sliceSpec struct {
	start *int64
	end   *int64
	step  int64
}

// op is one lowered, linear selector step. The traversal engine (eval.go)
// walks a flat []op slice with a plain int cursor rather than the nested
// participle AST directly; recursive descent's "for every descendant" is
// implemented by the traversal engine itself (walkDescendants), so op
// carries no recursive structure of its own.
type op struct {
	kind    opKind
	key     string
	keys    []string
	indices []int64
	slice   sliceSpec
	filter  *FilterExpr
}

// TokenKind classifies the trailing step popped by Query.PopLast.
type TokenKind int

const (
	TokenString TokenKind = iota
	TokenNumber
)

// CompileError is returned by Compile on a malformed path. A grammar
// failure carries its byte offset into the source and is formatted exactly
// per §6/§7. A zero or negative slice step, which is rejected after
// parsing, carries offset 0 and only the bare message, without the
// "Error occurred on position" prefix.
type CompileError struct {
	Offset  int
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// Query is the compiled form of a JSONPath expression (C3). It is
// immutable after Compile except for its lazily memoised is_static/size
// introspection fields.
type Query struct {
	ops []op

	staticOnce sync.Once
	isStatic   bool
	size       int
}

// Compile drives the grammar (C2) and lowers the result into a reusable,
// read-shared Query (C3). Compilation never succeeds on input the grammar
// cannot fully consume.
func Compile(text string) (*Query, error) {
	started := time.Now()
	q, err := compile(text)
	recordCompileMetrics(time.Since(started), err)
	return q, err
}

func compile(text string) (*Query, error) {
	ast, err := grammarParser.ParseString("", text)
	if err != nil {
		return nil, compileError(text, err)
	}

	ops, err := lowerSteps(ast.Steps)
	if err != nil {
		var ce *CompileError
		if asCompileError(err, &ce) {
			return nil, ce
		}
		return nil, oops.Wrapf(err, "compiling jsonpath query %q", text)
	}

	return &Query{ops: ops}, nil
}

func asCompileError(err error, target **CompileError) bool {
	ce, ok := err.(*CompileError)
	if ok {
		*target = ce
	}
	return ok
}

// symbolTable maps the lexer-token and grammar-production names participle
// names in its "expected" sets to the grammar's own diagnostic symbols
// (§4.2, §6), the same job the Rust original's `impl Display for Rule` does
// for its pest-generated Rule enum rendering a parse failure. Keys that
// name a single literal token (Star, DotDot, ...) map to that token's
// symbol; keys that name a union production (NumberList, StringList, ...)
// map to the production's comma-form symbol since participle reports the
// struct type, not the individual tokens that make it up, when an entire
// alternative failed to match.
var symbolTable = map[string]string{
	"Star":     "'*'",
	"DotDot":   "'..'",
	"Dollar":   "'$'",
	"At":       "'@'",
	"Dot":      "'.'",
	"Ident":    "<string>",
	"String":   "<string>",
	"Number":   "<number>",
	"Question": "'?'",
	"LParen":   "'('",
	"RParen":   "')'",
	"LBracket": "'['",
	"RBracket": "']'",
	"Comma":    "','",
	"Colon":    "':'",
	"AndAnd":   "'&&'",
	"OrOr":     "'||'",
	"OpEq":     "'=='",
	"OpNe":     "'!='",
	"OpGe":     "'>='",
	"OpLe":     "'<='",
	"OpGt":     "'>'",
	"OpLt":     "'<'",
	"OpRegex":  "'=~'",
	"EOF":      "<eof>",

	"DotChild":   "<string>",
	"NumberList": "'<number>[,<number>,...]'",
	"StringList": "'<string>[,<string>,...]'",
	"Slice":      "['start:end:steps']",
	"Filter":     "'[?(filter_expression)]'",
	"Bracket":    "'*', '<number>[,<number>,...]', '<string>[,<string>,...]', ['start:end:steps'] or '[?(filter_expression)]'",
}

// symbolPattern matches any whole-word occurrence of a symbolTable key
// inside a participle-generated message, so translateSymbols can rewrite
// it in place without otherwise touching the surrounding text (participle
// phrases its own messages as "unexpected token X (expected Y)", and only
// the token/production names X and Y are ours to rename).
var symbolPattern = regexp.MustCompile(`\b(` + symbolTableAlternation() + `)\b`)

func symbolTableAlternation() string {
	names := make([]string, 0, len(symbolTable))
	for name := range symbolTable {
		names = append(names, regexp.QuoteMeta(name))
	}
	return strings.Join(names, "|")
}

// translateSymbols rewrites every lexer-token or grammar-production name
// participle reports into the spec's diagnostic symbol for that construct.
func translateSymbols(message string) string {
	return symbolPattern.ReplaceAllStringFunc(message, func(tok string) string {
		if sym, ok := symbolTable[tok]; ok {
			return sym
		}
		return tok
	})
}

// compileError reformats a participle parse error into the spec's exact
// wire format: "Error occurred on position <N>, "<prefix> ---->>>> <suffix>",
// <msg>." or, when the failure sits at end of input, "<text> <<<<----", <msg>.
func compileError(text string, err error) *CompileError {
	var offset int
	message := err.Error()

	if pErr, ok := err.(participle.Error); ok {
		pos := pErr.Position()
		offset = pos.Offset
		message = translateSymbols(pErr.Message())
	}

	var located string
	if offset >= len(text) {
		located = fmt.Sprintf("\"%s <<<<----\"", text)
	} else {
		prefix := text[:offset]
		suffix := text[offset:]
		located = fmt.Sprintf("\"%s ---->>>> %s\"", prefix, suffix)
	}

	return &CompileError{
		Offset:  offset,
		Message: fmt.Sprintf("Error occurred on position %d, %s, %s.", offset, located, message),
	}
}

// lowerSteps flattens the participle Step union into the linear op slice
// the traversal engine consumes.
func lowerSteps(steps []*Step) ([]op, error) {
	var ops []op
	for _, s := range steps {
		stepOps, err := lowerStep(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, stepOps...)
	}
	return ops, nil
}

func lowerStep(s *Step) ([]op, error) {
	switch {
	case s.Recursive != nil:
		next, err := lowerStep(s.Recursive.Next)
		if err != nil {
			return nil, err
		}
		return append([]op{{kind: opRecursive}}, next...), nil
	case s.DotChild != nil:
		return lowerDotChild(s.DotChild)
	case s.Bracket != nil:
		return lowerBracket(s.Bracket)
	case s.Wildcard:
		return []op{{kind: opWildcard}}, nil
	default:
		return nil, fmt.Errorf("jsonpath: empty step in parse tree")
	}
}

func lowerDotChild(d *DotChild) ([]op, error) {
	switch {
	case d.Literal != "":
		return []op{{kind: opDotLiteral, key: d.Literal}}, nil
	case d.Wildcard:
		return []op{{kind: opWildcard}}, nil
	case d.Bracket != nil:
		return lowerBracket(d.Bracket)
	default:
		return nil, fmt.Errorf("jsonpath: empty dot-child in parse tree")
	}
}

func lowerBracket(b *Bracket) ([]op, error) {
	switch {
	case b.Filter != nil:
		return []op{{kind: opFilter, filter: b.Filter.Expr}}, nil
	case b.Slice != nil:
		spec, err := lowerSlice(b.Slice)
		if err != nil {
			return nil, err
		}
		return []op{{kind: opSlice, slice: spec}}, nil
	case b.Numbers != nil:
		return []op{{kind: opNumberList, indices: b.Numbers.Values}}, nil
	case b.Strings != nil:
		keys := make([]string, len(b.Strings.Values))
		for i, raw := range b.Strings.Values {
			keys[i] = unescapeQuoted(raw)
		}
		return []op{{kind: opStringList, keys: keys}}, nil
	case b.Wildcard:
		return []op{{kind: opWildcard}}, nil
	default:
		return nil, fmt.Errorf("jsonpath: empty bracket in parse tree")
	}
}

func lowerSlice(s *Slice) (sliceSpec, error) {
	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}
	if step <= 0 {
		return sliceSpec{}, &CompileError{Message: "slice step must be a positive integer"}
	}
	return sliceSpec{start: s.Start, end: s.End, step: step}, nil
}

// unescapeQuoted strips the surrounding quotes captured by the grammar and
// applies the spec's 3-rule escape table: \\ → \, \' → ', \" → ".
func unescapeQuoted(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			switch inner[i+1] {
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			case '\'':
				b.WriteByte('\'')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsStatic reports whether every step is a single literal key or single
// numeric index: no wildcard, no recursive descent, no multi-item list,
// no slice, no filter. Memoised on first use through a sync.Once, so
// concurrent first-readers wait for the single computation.
func (q *Query) IsStatic() bool {
	q.ensureMemo()
	return q.isStatic
}

// Size is the number of steps, including a terminal literal/number but not
// counting the leading '$'/'@'.
func (q *Query) Size() int {
	q.ensureMemo()
	return q.size
}

func (q *Query) ensureMemo() {
	q.staticOnce.Do(func() {
		q.size = len(q.ops)
		q.isStatic = true
		for _, o := range q.ops {
			if !isStaticOp(o) {
				q.isStatic = false
				break
			}
		}
	})
}

func isStaticOp(o op) bool {
	switch o.kind {
	case opDotLiteral:
		return true
	case opNumberList:
		return len(o.indices) == 1
	case opStringList:
		return len(o.keys) == 1
	default: // opWildcard, opRecursive, opSlice, opFilter
		return false
	}
}

// PopLast removes and returns the trailing step as (token text, kind).
// It panics when the trailing step is not a pure literal, single-item
// string list, or single-item number list — applying PopLast to a
// non-static path is a programming error.
func (q *Query) PopLast() (string, TokenKind) {
	if len(q.ops) == 0 {
		panic("jsonpath: PopLast on an empty query")
	}

	last := q.ops[len(q.ops)-1]

	var text string
	var kind TokenKind
	switch {
	case last.kind == opDotLiteral:
		text, kind = last.key, TokenString
	case last.kind == opStringList && len(last.keys) == 1:
		text, kind = last.keys[0], TokenString
	case last.kind == opNumberList && len(last.indices) == 1:
		text, kind = strconv.FormatInt(last.indices[0], 10), TokenNumber
	default:
		panic("jsonpath: PopLast was used on a non-static path")
	}

	q.ops = q.ops[:len(q.ops)-1]
	q.staticOnce = sync.Once{}
	return text, kind
}

// Clone returns a Query sharing no mutable state with q, matching §3's
// "clone-cursor (for reusability)" contract. With the flat-slice + int
// cursor representation used here, evaluation never mutates q.ops, so
// Clone is only needed before a PopLast that should not affect q itself.
func (q *Query) Clone() *Query {
	ops := make([]op, len(q.ops))
	copy(ops, q.ops)
	return &Query{ops: ops}
}
