// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsonpath contributors

package jsonpath

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ResultEnvelope is the shape the CLI serialises an evaluation to, and the
// shape GenerateResultSchema reflects a JSON Schema from: one entry per
// match, paths present only when the caller asked for them.
type ResultEnvelope struct {
	Matches []json.RawMessage `json:"matches" yaml:"matches"`
	Paths   [][]string        `json:"paths,omitempty" yaml:"paths,omitempty"`
}

var schemaState struct {
	once   sync.Once
	schema *jschema.Schema
	err    error
}

// GenerateResultSchema reflects a JSON Schema document for ResultEnvelope.
func GenerateResultSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&ResultEnvelope{})
	schema.ID = "https://jsonpath.dev/schemas/result.schema.json"
	schema.Title = "jsonpath evaluation result"
	schema.Description = "Schema for the {matches, paths} envelope emitted by jpq eval"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("schema").Hint("failed to marshal result schema").Wrap(err)
	}
	return append(data, '\n'), nil
}

// ValidateDocument validates a YAML- or JSON-encoded document against a
// caller-supplied JSON Schema, used by `jpq eval --schema` to reject a
// malformed input document before it is queried.
func ValidateDocument(schemaJSON, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oops.In("schema").Hint("invalid document").Wrap(err)
	}
	doc = normalizeForSchema(doc)

	sch, err := compileResultSchema(schemaJSON)
	if err != nil {
		return oops.In("schema").Hint("failed to compile schema").Wrap(err)
	}
	if err := sch.Validate(doc); err != nil {
		return oops.In("schema").Hint("schema validation failed").Wrap(err)
	}
	return nil
}

func compileResultSchema(schemaJSON []byte) (*jschema.Schema, error) {
	var raw any
	if err := json.Unmarshal(schemaJSON, &raw); err != nil {
		return nil, oops.In("schema").Hint("invalid schema JSON").Wrap(err)
	}
	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", raw); err != nil {
		return nil, oops.In("schema").Hint("failed to add schema resource").Wrap(err)
	}
	return c.Compile("schema.json")
}

// CachedResultSchema returns the compiled schema for ResultEnvelope itself,
// compiled once per process and returned as the same value on every call.
func CachedResultSchema() (*jschema.Schema, error) {
	schemaState.once.Do(func() {
		data, err := GenerateResultSchema()
		if err != nil {
			schemaState.err = err
			return
		}
		schemaState.schema, schemaState.err = compileResultSchema(data)
	})
	return schemaState.schema, schemaState.err
}

// normalizeForSchema converts yaml.Unmarshal's map[string]any output into
// the map[string]any/[]any shapes santhosh-tekuri/jsonschema expects; YAML
// mapping keys decode as `any` (not always string) so they are coerced.
func normalizeForSchema(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = normalizeForSchema(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeForSchema(child)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeForSchema(child)
		}
		return out
	default:
		return val
	}
}
