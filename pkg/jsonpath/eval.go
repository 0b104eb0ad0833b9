// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

// Match is one evaluation result: the matched value and, when paths were
// requested, its materialised path (root-to-leaf, indices stringified).
type Match struct {
	Value jsonvalue.Value
	Path  []string
}

// evalCtx threads the values every recursive frame needs but does not own:
// the document root (for `$`-rooted filter subqueries) and the results
// sink. It is not exported; C6's "shared calc-state" from §4.6.
type evalCtx struct {
	root jsonvalue.Value
	sink *[]Match
	paths bool
}

func runQuery(ops []op, root jsonvalue.Value, withPaths bool) []Match {
	return runQueryFrom(ops, root, root, withPaths)
}

// runQueryFrom evaluates ops starting at `start`, with `docRoot` as the
// value any nested `$`-rooted filter subquery resolves against. For a
// top-level query, start and docRoot are the same value; for a filter
// subquery, start is the filter's current candidate (or the document
// root for a `$`-rooted subquery) while docRoot is always the original
// document root, regardless of nesting depth.
func runQueryFrom(ops []op, start, docRoot jsonvalue.Value, withPaths bool) []Match {
	var sink []Match
	ctx := &evalCtx{root: docRoot, sink: &sink, paths: withPaths}

	var path *pathElem
	if withPaths {
		path = rootPath()
	}
	run(ctx, ops, 0, start, path)
	return sink
}

// run is the traversal engine's single recursive entry point (C6):
// (token_cursor, current_value, optional path_frame). It dispatches on the
// op at cursor and, on exhaustion, records a match.
func run(ctx *evalCtx, ops []op, cursor int, current jsonvalue.Value, path *pathElem) {
	if cursor >= len(ops) {
		var p []string
		if ctx.paths {
			p = path.materialize()
		}
		*ctx.sink = append(*ctx.sink, Match{Value: current, Path: p})
		return
	}

	o := ops[cursor]
	switch o.kind {
	case opDotLiteral:
		child, ok := current.GetByKey(o.key)
		if ok {
			run(ctx, ops, cursor+1, child, path.withKey(o.key))
		}

	case opWildcard:
		forEachChild(current, func(key string, idx int, byKey bool, child jsonvalue.Value) {
			if byKey {
				run(ctx, ops, cursor+1, child, path.withKey(key))
			} else {
				run(ctx, ops, cursor+1, child, path.withIndex(idx))
			}
		})

	case opRecursive:
		// Match at the current node first ("match here"), then at every
		// descendant ("match deeper"); emitting in this order is load
		// bearing for observable result ordering (§4.6, §9).
		run(ctx, ops, cursor+1, current, path)
		walkDescendants(current, path, func(child jsonvalue.Value, childPath *pathElem) {
			run(ctx, ops, cursor+1, child, childPath)
		})

	case opStringList:
		for _, key := range o.keys {
			if child, ok := current.GetByKey(key); ok {
				run(ctx, ops, cursor+1, child, path.withKey(key))
			}
		}

	case opNumberList:
		n, ok := current.Len()
		if !ok || current.Type() != jsonvalue.TypeArray {
			return
		}
		for _, raw := range o.indices {
			idx := absoluteIndex(raw, n)
			if idx >= n {
				continue
			}
			if child, ok := current.GetByIndex(idx); ok {
				run(ctx, ops, cursor+1, child, path.withIndex(idx))
			}
		}

	case opSlice:
		runSlice(ctx, ops, cursor, o.slice, current, path)

	case opFilter:
		runFilter(ctx, ops, cursor, o.filter, current, path)
	}
}

func runSlice(ctx *evalCtx, ops []op, cursor int, spec sliceSpec, current jsonvalue.Value, path *pathElem) {
	if current.Type() != jsonvalue.TypeArray {
		return
	}
	n, _ := current.Len()

	start := 0
	if spec.start != nil {
		start = absoluteIndex(*spec.start, n)
	}
	end := n
	if spec.end != nil {
		end = absoluteIndex(*spec.end, n)
	}
	step := spec.step
	if step <= 0 {
		step = 1
	}

	for i := start; i < end; i += int(step) {
		if i < 0 || i >= n {
			continue
		}
		child, ok := current.GetByIndex(i)
		if !ok {
			continue
		}
		run(ctx, ops, cursor+1, child, path.withIndex(i))
	}
}

func runFilter(ctx *evalCtx, ops []op, cursor int, filter *FilterExpr, current jsonvalue.Value, path *pathElem) {
	switch current.Type() {
	case jsonvalue.TypeArray, jsonvalue.TypeObject:
		forEachChild(current, func(key string, idx int, byKey bool, child jsonvalue.Value) {
			if evalFilterExpr(filter, child, ctx.root) {
				if byKey {
					run(ctx, ops, cursor+1, child, path.withKey(key))
				} else {
					run(ctx, ops, cursor+1, child, path.withIndex(idx))
				}
			}
		})
	default:
		// "expand-then-test" against a scalar node degenerates to testing
		// the scalar itself and continuing without descent (§4.6).
		if evalFilterExpr(filter, current, ctx.root) {
			run(ctx, ops, cursor+1, current, path)
		}
	}
}

// forEachChild visits a container's children in accessor order: Object by
// entries (declaration order), Array by index (natural order).
func forEachChild(v jsonvalue.Value, visit func(key string, idx int, byKey bool, child jsonvalue.Value)) {
	switch v.Type() {
	case jsonvalue.TypeObject:
		for k, child := range v.Entries() {
			visit(k, 0, true, child)
		}
	case jsonvalue.TypeArray:
		i := 0
		for child := range v.Values() {
			visit("", i, false, child)
			i++
		}
	}
}

// walkDescendants performs a full pre-order walk of every descendant of v
// (at any depth, not just immediate children), matching C6's recursive
// descent semantics: each child is visited, then its own descendants, in
// accessor order (Object entries in declaration order, Array elements by
// index).
func walkDescendants(v jsonvalue.Value, path *pathElem, visit func(child jsonvalue.Value, childPath *pathElem)) {
	forEachChild(v, func(key string, idx int, byKey bool, child jsonvalue.Value) {
		var childPath *pathElem
		if byKey {
			childPath = path.withKey(key)
		} else {
			childPath = path.withIndex(idx)
		}
		visit(child, childPath)
		walkDescendants(child, childPath, visit)
	})
}

// absoluteIndex implements §4.6's absolute-index law:
// i≥0 → min(i, n); i<0 → max(i+n, 0).
func absoluteIndex(i int64, n int) int {
	if i >= 0 {
		if i > int64(n) {
			return n
		}
		return int(i)
	}
	shifted := i + int64(n)
	if shifted < 0 {
		return 0
	}
	return int(shifted)
}

// evalSubqueryValues lowers and runs a subquery's steps starting from a
// given node, ignoring paths — used only by the filter evaluator to
// resolve `@`/`$`-rooted terms (§4.5). docRoot is always the original
// document root, so a `$` nested inside the subquery resolves correctly
// regardless of how deep the enclosing filter is.
func evalSubqueryValues(sq *Subquery, start, docRoot jsonvalue.Value) ([]jsonvalue.Value, error) {
	ops, err := sq.lowered()
	if err != nil {
		return nil, err
	}
	matches := runQueryFrom(ops, start, docRoot, false)
	values := make([]jsonvalue.Value, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values, nil
}
