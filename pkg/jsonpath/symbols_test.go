// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
)

func TestTranslateSymbols_TokenNames(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "bare token",
			message: `unexpected token "x" (expected Star)`,
			want:    `unexpected token "x" (expected '*')`,
		},
		{
			name:    "recursive descent token",
			message: `unexpected token "x" (expected DotDot)`,
			want:    `unexpected token "x" (expected '..')`,
		},
		{
			name:    "number list production",
			message: `unexpected token "x" (expected NumberList)`,
			want:    `unexpected token "x" (expected '<number>[,<number>,...]')`,
		},
		{
			name:    "string list production",
			message: `unexpected token "x" (expected StringList)`,
			want:    `unexpected token "x" (expected '<string>[,<string>,...]')`,
		},
		{
			name:    "slice production",
			message: `unexpected token "x" (expected Slice)`,
			want:    `unexpected token "x" (expected ['start:end:steps'])`,
		},
		{
			name:    "filter production",
			message: `unexpected token "x" (expected Filter)`,
			want:    `unexpected token "x" (expected '[?(filter_expression)]')`,
		},
		{
			name:    "bracket union of all inner alternatives",
			message: `unexpected token "x" (expected Bracket)`,
			want:    `unexpected token "x" (expected '*', '<number>[,<number>,...]', '<string>[,<string>,...]', ['start:end:steps'] or '[?(filter_expression)]')`,
		},
		{
			name:    "dot-child literal falls back to the bare string symbol",
			message: `unexpected token "3" (expected Ident or DotChild)`,
			want:    `unexpected token "3" (expected <string> or <string>)`,
		},
		{
			name:    "unknown identifiers pass through untouched",
			message: `unexpected token "x" (expected astQuery)`,
			want:    `unexpected token "x" (expected astQuery)`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, translateSymbols(tc.message))
		})
	}
}

func TestCompileError_UsesTranslatedSymbols(t *testing.T) {
	ce := compileError(`$.foo[`, &fakeParticipleError{
		message: `unexpected token "<eof>" (expected Bracket)`,
		offset:  6,
	})

	assert.Contains(t, ce.Message, "'*', '<number>[,<number>,...]', '<string>[,<string>,...]', ['start:end:steps'] or '[?(filter_expression)]'")
	assert.Contains(t, ce.Message, "<<<<----")
}

// fakeParticipleError implements participle.Error without depending on an
// actual parse failure, so translateSymbols can be exercised against a
// fixed, known "expected" set.
type fakeParticipleError struct {
	message string
	offset  int
}

func (e *fakeParticipleError) Error() string   { return e.message }
func (e *fakeParticipleError) Message() string { return e.message }
func (e *fakeParticipleError) Position() lexer.Position {
	return lexer.Position{Offset: e.offset}
}
