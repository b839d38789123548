package lessons

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// datasetSchema describes one course document. Optional fields carry
// defaults that decode() applies after validation.
var datasetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"lessons": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "integer", "minimum": 1},
					"title":        map[string]any{"type": "string"},
					"description":  map[string]any{"type": "string"},
					"introduction": map[string]any{"type": "boolean"},
					"target_keys": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"steps": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": "integer"},
								"text": map[string]any{"type": "string"},
								"description": map[string]any{
									"type": []any{"string", "null"},
								},
								"repetitions":  map[string]any{"type": "integer", "minimum": 0},
								"introduction": map[string]any{"type": "boolean"},
								"target_keys": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
							},
							"required": []any{"id", "text"},
						},
					},
				},
				"required": []any{"id", "title", "description", "steps"},
			},
		},
	},
	"required": []any{"lessons"},
}

const datasetSchemaURL = "schema://mecalin-course.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go-typed maps.
		b, err := json.Marshal(datasetSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(datasetSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(datasetSchemaURL)
	})
	return compiledSchema, compileErr
}

// Validate checks a raw course document against the dataset schema.
func Validate(raw []byte) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
