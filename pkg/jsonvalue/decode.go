// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samber/oops"
)

// Parse decodes a JSON document into a Value tree. Objects keep declaration
// order at every nesting level; json.Decoder's UseNumber mode is used so
// integers and floats are told apart rather than collapsed to float64.
//
// This is a hand-rolled recursive descent over json.Decoder.Token rather
// than json.Unmarshal into Object directly: Object's own UnmarshalJSON
// (from the underlying ordered-map library) only orders its own top-level
// keys — a nested object value typed as `any` decodes through the stdlib's
// generic path and loses order. Decoding token-by-token keeps every nested
// level on the same ordered path.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, oops.Wrapf(err, "decode json document")
	}

	if _, err := dec.Token(); err == nil {
		return nil, oops.Errorf("trailing data after JSON document")
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		n, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		return NewNumber(n), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter %q", t)
		}
	default:
		return nil, fmt.Errorf("unexpected JSON token %#v", tok)
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return NewArray(items), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewOrderedObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string object key, got %#v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return NewObject(obj), nil
}

// parseNumber recovers the three-way Unsigned/Signed/Double tagging from
// json.Number's decimal text: an integer literal widens to the narrowest
// exact representation, anything with a fraction or exponent becomes Double.
func parseNumber(n json.Number) (Number, error) {
	s := string(n)
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return NewUnsigned(u), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewSigned(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid JSON number %q: %w", s, err)
	}
	return NewDouble(f), nil
}
