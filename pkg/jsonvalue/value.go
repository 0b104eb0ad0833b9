// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

// Package jsonvalue defines an abstract, read-only view over a JSON value.
//
// The traversal and filter engines in pkg/jsonpath are written once against
// the Value interface; this package additionally supplies a default
// implementation (Parse) backed by encoding/json, with object values kept
// in declaration order.
package jsonvalue

import (
	"fmt"
	"iter"
	"math"
)

// Type tags the dynamic kind of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeLong
	TypeDouble
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// NumberKind distinguishes the backing representation of a Number.
type NumberKind int

const (
	Unsigned NumberKind = iota
	Signed
	Double
)

// Number is a three-way tagged scalar, matching JSON's single numeric type
// while preserving whether the source text looked like an integer.
type Number struct {
	Kind NumberKind
	U    uint64
	S    int64
	D    float64
}

// NewUnsigned builds an Unsigned-kind Number.
func NewUnsigned(u uint64) Number { return Number{Kind: Unsigned, U: u} }

// NewSigned builds a Signed-kind Number.
func NewSigned(s int64) Number { return Number{Kind: Signed, S: s} }

// NewDouble builds a Double-kind Number.
func NewDouble(d float64) Number { return Number{Kind: Double, D: d} }

// AsDouble widens the Number to float64 regardless of its backing kind.
func (n Number) AsDouble() float64 {
	switch n.Kind {
	case Unsigned:
		return float64(n.U)
	case Signed:
		return float64(n.S)
	default:
		return n.D
	}
}

// asSigned widens to int64 when the Number is exactly representable as one.
func (n Number) asSigned() (int64, bool) {
	switch n.Kind {
	case Signed:
		return n.S, true
	case Unsigned:
		if n.U <= math.MaxInt64 {
			return int64(n.U), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Equal compares two Numbers by numeric value after widening: unsigned
// widens to signed when representable, otherwise both sides widen to
// double. +0.0 and -0.0 compare equal.
func (n Number) Equal(other Number) bool {
	if n.Kind != Double && other.Kind != Double {
		ns, nok := n.asSigned()
		os, ook := other.asSigned()
		if nok && ook {
			return ns == os
		}
	}
	return n.AsDouble() == other.AsDouble()
}

// Hash returns a hash consistent with Equal: equal numbers always hash
// equal. Collisions between unequal numbers are acceptable.
func (n Number) Hash() uint64 {
	d := n.AsDouble()
	if d == 0 {
		d = 0 // normalise -0.0
	}
	return math.Float64bits(d)
}

// MarshalJSON renders the Number using its original integer-or-float
// shape rather than always widening to float64.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n Number) String() string {
	switch n.Kind {
	case Unsigned:
		return fmt.Sprintf("%d", n.U)
	case Signed:
		return fmt.Sprintf("%d", n.S)
	default:
		return fmt.Sprintf("%g", n.D)
	}
}

// Value is the abstract JSON accessor (C1): a uniform, read-only view over
// a JSON value regardless of backend. Every operation is defined for every
// Type; operations not applicable to a given Type return the zero value and
// ok=false (or, for scalar extractors, an unspecified zero value when the
// caller uses the trusted form against a mismatched type).
type Value interface {
	Type() Type

	// Len and IsEmpty are defined only for Array and Object.
	Len() (int, bool)
	IsEmpty() (bool, bool)

	// Values iterates child values in insertion (Array) or declaration
	// (Object) order. Defined for Array and Object; nil for scalars.
	Values() iter.Seq[Value]
	// Entries iterates (key, value) pairs in declaration order. Defined
	// only for Object.
	Entries() iter.Seq2[string, Value]
	// Keys iterates keys in declaration order. Defined only for Object.
	Keys() iter.Seq[string]

	GetByKey(key string) (Value, bool)
	GetByIndex(i int) (Value, bool)

	// Trusted scalar extractors: caller ensures the type matches.
	Bool() bool
	Long() int64
	Double() float64
	Str() string
	Num() Number

	// Checked scalar extractors: ok is false when the type mismatches.
	TryBool() (bool, bool)
	TryLong() (int64, bool)
	TryDouble() (float64, bool)
	TryStr() (string, bool)
	TryNumber() (Number, bool)

	// Equal is JSON content equality: same type, same scalar value
	// (numbers compared per Number.Equal), same-length arrays compared
	// element-wise and order-sensitively, objects compared by key set
	// (order-independent) with recursively-equal values.
	Equal(other Value) bool
}

// node is the default Value implementation. raw holds exactly one of:
// nil, bool, Number, string, []Value, *Object.
type node struct {
	raw any
}

// Null is the shared representation of a JSON null.
var Null Value = node{raw: nil}

// NewBool wraps a bool as a Value.
func NewBool(b bool) Value { return node{raw: b} }

// NewNumber wraps a Number as a Value.
func NewNumber(n Number) Value { return node{raw: n} }

// NewString wraps a string as a Value.
func NewString(s string) Value { return node{raw: s} }

// NewArray wraps a slice of Values as an Array Value.
func NewArray(items []Value) Value { return node{raw: items} }

// NewObject wraps an Object as an Object Value.
func NewObject(o *Object) Value { return node{raw: o} }

func (n node) Type() Type {
	switch n.raw.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case Number:
		v := n.raw.(Number)
		if v.Kind == Double {
			return TypeDouble
		}
		return TypeLong
	case string:
		return TypeString
	case []Value:
		return TypeArray
	case *Object:
		return TypeObject
	default:
		panic(fmt.Sprintf("jsonvalue: unrepresentable raw value %#v", n.raw))
	}
}

func (n node) Len() (int, bool) {
	switch v := n.raw.(type) {
	case []Value:
		return len(v), true
	case *Object:
		return v.Len(), true
	default:
		return 0, false
	}
}

func (n node) IsEmpty() (bool, bool) {
	l, ok := n.Len()
	if !ok {
		return false, false
	}
	return l == 0, true
}

func (n node) Values() iter.Seq[Value] {
	switch v := n.raw.(type) {
	case []Value:
		return func(yield func(Value) bool) {
			for _, item := range v {
				if !yield(item) {
					return
				}
			}
		}
	case *Object:
		return func(yield func(Value) bool) {
			for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
				if !yield(pair.Value) {
					return
				}
			}
		}
	default:
		return nil
	}
}

func (n node) Entries() iter.Seq2[string, Value] {
	v, ok := n.raw.(*Object)
	if !ok {
		return nil
	}
	return func(yield func(string, Value) bool) {
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

func (n node) Keys() iter.Seq[string] {
	v, ok := n.raw.(*Object)
	if !ok {
		return nil
	}
	return func(yield func(string) bool) {
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key) {
				return
			}
		}
	}
}

func (n node) GetByKey(key string) (Value, bool) {
	v, ok := n.raw.(*Object)
	if !ok {
		return nil, false
	}
	return v.Get(key)
}

func (n node) GetByIndex(i int) (Value, bool) {
	v, ok := n.raw.([]Value)
	if !ok || i < 0 || i >= len(v) {
		return nil, false
	}
	return v[i], true
}

func (n node) Bool() bool    { b, _ := n.raw.(bool); return b }
func (n node) Long() int64   { s, _ := n.Num().asSigned(); return s }
func (n node) Double() float64 {
	if num, ok := n.raw.(Number); ok {
		return num.AsDouble()
	}
	return 0
}
func (n node) Str() string { s, _ := n.raw.(string); return s }
func (n node) Num() Number  { num, _ := n.raw.(Number); return num }

func (n node) TryBool() (bool, bool) { b, ok := n.raw.(bool); return b, ok }
func (n node) TryLong() (int64, bool) {
	num, ok := n.raw.(Number)
	if !ok {
		return 0, false
	}
	return num.asSigned()
}
func (n node) TryDouble() (float64, bool) {
	num, ok := n.raw.(Number)
	if !ok {
		return 0, false
	}
	return num.AsDouble(), true
}
func (n node) TryStr() (string, bool) { s, ok := n.raw.(string); return s, ok }
func (n node) TryNumber() (Number, bool) {
	num, ok := n.raw.(Number)
	return num, ok
}

func (n node) Equal(other Value) bool {
	if other == nil {
		return false
	}
	o, ok := other.(node)
	if !ok {
		o = node{raw: wrapForEqual(other)}
	}
	return valueEqual(n, o)
}

// wrapForEqual lets Equal compare against a foreign Value implementation by
// re-deriving its raw shape through the public interface.
func wrapForEqual(v Value) any {
	switch v.Type() {
	case TypeNull:
		return nil
	case TypeBool:
		return v.Bool()
	case TypeLong, TypeDouble:
		return v.Num()
	case TypeString:
		return v.Str()
	case TypeArray:
		var items []Value
		for item := range v.Values() {
			items = append(items, item)
		}
		return items
	case TypeObject:
		o := NewOrderedObject()
		for k, val := range v.Entries() {
			o.Set(k, val)
		}
		return o
	default:
		return nil
	}
}

func valueEqual(a, b node) bool {
	switch av := a.raw.(type) {
	case nil:
		return b.raw == nil
	case bool:
		bv, ok := b.raw.(bool)
		return ok && av == bv
	case Number:
		bv, ok := b.raw.(Number)
		return ok && av.Equal(bv)
	case string:
		bv, ok := b.raw.(string)
		return ok && av == bv
	case []Value:
		bv, ok := b.raw.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].Equal(bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.raw.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.Entries() {
			other, present := bv.Get(k)
			if !present || !v.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
