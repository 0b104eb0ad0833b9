// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

func TestNumber_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  jsonvalue.Number
		equal bool
	}{
		{"same unsigned", jsonvalue.NewUnsigned(3), jsonvalue.NewUnsigned(3), true},
		{"unsigned vs signed representable", jsonvalue.NewUnsigned(3), jsonvalue.NewSigned(3), true},
		{"unsigned vs double", jsonvalue.NewUnsigned(3), jsonvalue.NewDouble(3.0), true},
		{"signed vs double", jsonvalue.NewSigned(-5), jsonvalue.NewDouble(-5.0), true},
		{"positive and negative zero", jsonvalue.NewDouble(0.0), jsonvalue.NewDouble(-0.0), true},
		{"unequal", jsonvalue.NewSigned(1), jsonvalue.NewSigned(2), false},
		{"huge unsigned not representable as signed still equal via double", jsonvalue.NewUnsigned(1 << 63), jsonvalue.NewDouble(float64(uint64(1) << 63)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestNumber_Hash_ConsistentWithEqual(t *testing.T) {
	a := jsonvalue.NewUnsigned(7)
	b := jsonvalue.NewSigned(7)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestValue_Equal_Scalars(t *testing.T) {
	assert.True(t, jsonvalue.Null.Equal(jsonvalue.Null))
	assert.True(t, jsonvalue.NewBool(true).Equal(jsonvalue.NewBool(true)))
	assert.False(t, jsonvalue.NewBool(true).Equal(jsonvalue.NewBool(false)))
	assert.True(t, jsonvalue.NewString("a").Equal(jsonvalue.NewString("a")))
	assert.True(t, jsonvalue.NewNumber(jsonvalue.NewSigned(1)).Equal(jsonvalue.NewNumber(jsonvalue.NewDouble(1.0))))
	assert.False(t, jsonvalue.NewString("a").Equal(jsonvalue.NewNumber(jsonvalue.NewSigned(1))))
}

func TestValue_Equal_Array_OrderSensitive(t *testing.T) {
	a := jsonvalue.NewArray([]jsonvalue.Value{jsonvalue.NewString("a"), jsonvalue.NewString("b")})
	b := jsonvalue.NewArray([]jsonvalue.Value{jsonvalue.NewString("b"), jsonvalue.NewString("a")})
	c := jsonvalue.NewArray([]jsonvalue.Value{jsonvalue.NewString("a"), jsonvalue.NewString("b")})
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(c))
}

func TestValue_Equal_Object_OrderIndependent(t *testing.T) {
	o1 := jsonvalue.NewOrderedObject()
	o1.Set("a", jsonvalue.NewString("1"))
	o1.Set("b", jsonvalue.NewString("2"))

	o2 := jsonvalue.NewOrderedObject()
	o2.Set("b", jsonvalue.NewString("2"))
	o2.Set("a", jsonvalue.NewString("1"))

	assert.True(t, jsonvalue.NewObject(o1).Equal(jsonvalue.NewObject(o2)))
}

func TestValue_TryAccessors_TypeMismatch(t *testing.T) {
	s := jsonvalue.NewString("hi")
	_, ok := s.TryBool()
	assert.False(t, ok)
	_, ok = s.TryLong()
	assert.False(t, ok)
	str, ok := s.TryStr()
	assert.True(t, ok)
	assert.Equal(t, "hi", str)
}

func TestObject_Entries_DeclarationOrder(t *testing.T) {
	o := jsonvalue.NewOrderedObject()
	o.Set("z", jsonvalue.NewBool(true))
	o.Set("a", jsonvalue.NewBool(false))
	o.Set("m", jsonvalue.Null)

	var keys []string
	for k := range o.Entries() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestValue_ArrayAccessors(t *testing.T) {
	arr := jsonvalue.NewArray([]jsonvalue.Value{jsonvalue.NewString("x"), jsonvalue.NewString("y")})
	n, ok := arr.Len()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	v, ok := arr.GetByIndex(1)
	assert.True(t, ok)
	assert.Equal(t, "y", v.Str())

	_, ok = arr.GetByIndex(5)
	assert.False(t, ok)
}
