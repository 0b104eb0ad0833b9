// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package main

import (
	"encoding/json"

	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

// jsonvalueMarshal renders a jsonvalue.Value tree back to JSON bytes. It
// walks the abstract accessor interface rather than type-switching on a
// concrete implementation, so it works for any jsonvalue.Value, not just
// the one Parse produces.
func jsonvalueMarshal(v jsonvalue.Value) (json.RawMessage, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(native)
}

func toNative(v jsonvalue.Value) (any, error) {
	switch v.Type() {
	case jsonvalue.TypeNull:
		return nil, nil
	case jsonvalue.TypeBool:
		return v.Bool(), nil
	case jsonvalue.TypeLong:
		return v.Num(), nil
	case jsonvalue.TypeDouble:
		return v.Double(), nil
	case jsonvalue.TypeString:
		return v.Str(), nil
	case jsonvalue.TypeArray:
		var items []any
		for child := range v.Values() {
			native, err := toNative(child)
			if err != nil {
				return nil, err
			}
			items = append(items, native)
		}
		if items == nil {
			items = []any{}
		}
		return items, nil
	case jsonvalue.TypeObject:
		out := orderedJSON{}
		for k, child := range v.Entries() {
			native, err := toNative(child)
			if err != nil {
				return nil, err
			}
			out = append(out, orderedField{key: k, value: native})
		}
		return out, nil
	default:
		return nil, nil
	}
}

// orderedJSON preserves object key order through MarshalJSON, since
// map[string]any would not.
type orderedField struct {
	key   string
	value any
}

type orderedJSON []orderedField

func (o orderedJSON) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, f := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}
