// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/kvjson/jsonpath/pkg/jsonpath"
	"github.com/kvjson/jsonpath/pkg/jsonvalue"
)

func TestFacade(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Public Facade Suite")
}

var _ = Describe("the public evaluation facade", func() {
	var root jsonvalue.Value

	BeforeEach(func() {
		var err error
		root, err = jsonvalue.Parse([]byte(`{
			"store": {
				"books": [
					{"title": "A", "price": 10, "tags": ["x"]},
					{"title": "B", "price": 20, "tags": ["y", "z"]}
				]
			}
		}`))
		Expect(err).NotTo(HaveOccurred())
	})

	It("compiles a path and evaluates it against a document", func() {
		q, err := jsonpath.Compile("$.store.books[*].title")
		Expect(err).NotTo(HaveOccurred())

		matches := jsonpath.Evaluate(context.Background(), q, root)
		Expect(matches).To(HaveLen(2))
		Expect(matches[0].Value.Str()).To(Equal("A"))
		Expect(matches[1].Value.Str()).To(Equal("B"))
	})

	It("populates paths only when asked", func() {
		q, err := jsonpath.Compile("$.store.books[*].title")
		Expect(err).NotTo(HaveOccurred())

		withoutPaths := jsonpath.Evaluate(context.Background(), q, root)
		Expect(withoutPaths[0].Path).To(BeEmpty())

		withPaths := jsonpath.EvaluateWithPaths(context.Background(), q, root)
		Expect(withPaths[0].Path).To(Equal([]string{"store", "books", "0", "title"}))
	})

	It("filters on nested predicates", func() {
		q, err := jsonpath.Compile(`$.store.books[?(@.price>15)].title`)
		Expect(err).NotTo(HaveOccurred())

		matches := jsonpath.Evaluate(context.Background(), q, root)
		Expect(matches).To(HaveLen(1))
		Expect(matches[0].Value.Str()).To(Equal("B"))
	})

	It("treats EvaluateOnce identically to Evaluate", func() {
		q, err := jsonpath.Compile(`$.store.books[*].price`)
		Expect(err).NotTo(HaveOccurred())

		once := jsonpath.EvaluateOnce(context.Background(), q, root)
		again := jsonpath.Evaluate(context.Background(), q, root)
		Expect(len(once)).To(Equal(len(again)))
		for i := range once {
			Expect(once[i].Value.Equal(again[i].Value)).To(BeTrue())
		}
	})

	It("surfaces a located compile error", func() {
		_, err := jsonpath.Compile(`$.store.books[`)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Error occurred on position"))
	})
})
