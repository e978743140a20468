package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ModuleSchema is the JSON Schema every module file must satisfy.
// The media object is open: unknown media types are dropped at render
// time, not rejected at load time.
var ModuleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":  "array",
			"items": questionItemSchema,
		},
	},
	"required": []any{"questions"},
}

var questionItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"block":    map[string]any{"type": "string"},
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
		},
		"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
		"explanation":   map[string]any{"type": "string"},
		"media":         map[string]any{"type": "object"},
	},
	"required": []any{"id", "question", "options", "correctAnswer"},
}

var (
	moduleSchemaOnce     sync.Once
	moduleSchemaCompiled *jsonschema.Schema
	moduleSchemaErr      error
)

// validateModuleDoc checks a decoded module document against ModuleSchema.
// doc may come from YAML, so it is normalized through JSON first.
func validateModuleDoc(doc any) error {
	moduleSchemaOnce.Do(func() {
		moduleSchemaCompiled, moduleSchemaErr = compileSchema("module", ModuleSchema)
	})
	if moduleSchemaErr != nil {
		return moduleSchemaErr
	}

	normalized, err := normalizeJSON(doc)
	if err != nil {
		return err
	}
	if err := moduleSchemaCompiled.Validate(normalized); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compileSchema compiles a schema definition held as a Go map.
func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	parsed, err := normalizeJSON(def)
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

// normalizeJSON round-trips v through encoding/json so the validator sees
// plain JSON values (float64 numbers, map[string]any objects).
func normalizeJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return out, nil
}
