// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonvalue

import (
	omap "github.com/wk8/go-ordered-map/v2"
)

// Object is a declaration-order-preserving JSON object. It backs the
// Object Value kind; order is load-bearing (§3: "Object-value iteration
// must be consistent with entries iteration").
type Object struct {
	m *omap.OrderedMap[string, Value]
}

// NewOrderedObject returns an empty Object.
func NewOrderedObject() *Object {
	return &Object{m: omap.New[string, Value]()}
}

// Set inserts or replaces a key's value, preserving the position of a
// pre-existing key (matching encoding/json's "last value wins, original
// order kept" behaviour is a non-goal here: this is consulted only during
// decoding, where each key is set at most once per nesting level).
func (o *Object) Set(key string, v Value) {
	o.m.Set(key, v)
}

// Get returns the value for key, if present.
func (o *Object) Get(key string) (Value, bool) {
	return o.m.Get(key)
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return o.m.Len()
}

// Entries iterates (key, value) pairs in declaration order.
func (o *Object) Entries() func(yield func(string, Value) bool) {
	return func(yield func(string, Value) bool) {
		for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}
