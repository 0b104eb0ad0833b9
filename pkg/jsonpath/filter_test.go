// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvjson/jsonpath/pkg/jsonpath"
	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

func filterCount(t *testing.T, path, doc string) int {
	t.Helper()
	q, err := jsonpath.Compile(path)
	require.NoError(t, err)
	root, err := jsonvalue.Parse([]byte(doc))
	require.NoError(t, err)
	return len(jsonpath.Evaluate(context.Background(), q, root))
}

func TestFilter_ComparisonOperators(t *testing.T) {
	doc := `[{"n":1},{"n":2},{"n":3}]`
	tests := []struct {
		path string
		want int
	}{
		{`$[?(@.n==2)]`, 1},
		{`$[?(@.n!=2)]`, 2},
		{`$[?(@.n<2)]`, 1},
		{`$[?(@.n<=2)]`, 2},
		{`$[?(@.n>2)]`, 1},
		{`$[?(@.n>=2)]`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, filterCount(t, tt.path, doc))
		})
	}
}

func TestFilter_IntegerFloatWidening(t *testing.T) {
	assert.Equal(t, 1, filterCount(t, `$[?(@.n==1)]`, `[{"n":1.0}]`))
	assert.Equal(t, 1, filterCount(t, `$[?(@.n<2.5)]`, `[{"n":2}]`))
}

func TestFilter_StringComparison(t *testing.T) {
	assert.Equal(t, 1, filterCount(t, `$[?(@.s=="a")]`, `[{"s":"a"},{"s":"b"}]`))
}

func TestFilter_NotComparable_FalseForOrdering_TrueForNotEquals(t *testing.T) {
	doc := `[{"s":"a","n":1}]`
	assert.Equal(t, 0, filterCount(t, `$[?(@.s==@.n)]`, doc))
	assert.Equal(t, 1, filterCount(t, `$[?(@.s!=@.n)]`, doc))
	assert.Equal(t, 0, filterCount(t, `$[?(@.s<@.n)]`, doc))
}

func TestFilter_ValueEqualsValue_ContentEquality(t *testing.T) {
	doc := `[{"a":{"x":1},"b":{"x":1}},{"a":{"x":1},"b":{"x":2}}]`
	assert.Equal(t, 1, filterCount(t, `$[?(@.a==@.b)]`, doc))
}

func TestFilter_ExistencePredicate(t *testing.T) {
	doc := `[{"a":1},{"b":2}]`
	assert.Equal(t, 1, filterCount(t, `$[?(@.a)]`, doc))
}

func TestFilter_SubqueryZeroOrManyResults_Invalid(t *testing.T) {
	// @.missing yields zero values -> Invalid -> existence predicate false.
	assert.Equal(t, 0, filterCount(t, `$[?(@.missing)]`, `[{"a":1}]`))
	// @.* on an object with two entries yields >1 values -> Invalid.
	assert.Equal(t, 0, filterCount(t, `$[?(@.obj.*==1)]`, `[{"obj":{"a":1,"b":2}}]`))
}

func TestFilter_Regex(t *testing.T) {
	assert.Equal(t, 1, filterCount(t, `$[?(@.s=~"^a")]`, `[{"s":"abc"},{"s":"xyz"}]`))
}

func TestFilter_Regex_InvalidPattern_YieldsFalseNotError(t *testing.T) {
	assert.Equal(t, 0, filterCount(t, `$[?(@.s=~"(")]`, `[{"s":"abc"}]`))
}

func TestFilter_Regex_NonStringOperand_YieldsFalse(t *testing.T) {
	assert.Equal(t, 0, filterCount(t, `$[?(@.n=~"1")]`, `[{"n":1}]`))
}

func TestFilter_BooleanPrecedence_AndBindsTighterThanOr(t *testing.T) {
	// A && B || C && D && E ; with A=false, B=true, C=true, D=true, E=false
	// expect (A&&B) || (C&&D&&E) == false || false == false.
	doc := `[{"a":false,"b":true,"c":true,"d":true,"e":false}]`
	assert.Equal(t, 0, filterCount(t,
		`$[?(@.a==true && @.b==true || @.c==true && @.d==true && @.e==true)]`, doc))

	doc2 := `[{"a":false,"b":true,"c":true,"d":true,"e":true}]`
	assert.Equal(t, 1, filterCount(t,
		`$[?(@.a==true && @.b==true || @.c==true && @.d==true && @.e==true)]`, doc2))
}

func TestFilter_OrShortCircuits(t *testing.T) {
	// the right operand of || must not be evaluated once the left is true,
	// but must still be parsed/consumed: a trailing subquery with no match
	// (Invalid) combined via || after a true left operand should not flip
	// the result to false.
	assert.Equal(t, 1, filterCount(t, `$[?(@.a==1 || @.missing==1)]`, `[{"a":1}]`))
}

func TestFilter_ParenthesizedGroup(t *testing.T) {
	doc := `[{"f":false,"t":false,"one":1}]`
	assert.Equal(t, 1, filterCount(t, `$[?(@.f==false && (@.t==false || @.one==1))]`, doc))
}

func TestFilter_TotalityOnScalarNode(t *testing.T) {
	// A filter against a scalar never errors; it tests the scalar itself.
	assert.Equal(t, 1, filterCount(t, `$.v[?(@==5)]`, `{"v":5}`))
}

func TestFilter_DollarRootedSubqueryInsideAtRootedFilter(t *testing.T) {
	doc := `{"min":2,"items":[{"n":1},{"n":2},{"n":3}]}`
	assert.Equal(t, 2, filterCount(t, `$.items[?(@.n>=$.min)]`, doc))
}
