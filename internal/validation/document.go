package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const dictionarySchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "minProperties": 1,
  "propertyNames": {"pattern": "^[A-Za-z]{2,3}([-_][A-Za-z0-9]+)*$"},
  "additionalProperties": {"$ref": "#/$defs/node"},
  "$defs": {
    "node": {
      "type": "object",
      "additionalProperties": {
        "anyOf": [
          {"type": "string"},
          {"$ref": "#/$defs/node"}
        ]
      }
    }
  }
}`

// DictionarySchema returns the JSON Schema a translation dictionary must
// satisfy: languages at the top level, nested objects below, strings at the
// leaves.
func DictionarySchema() map[string]any {
	var schema map[string]any
	if err := json.Unmarshal([]byte(dictionarySchemaJSON), &schema); err != nil {
		panic(fmt.Sprintf("validation: dictionary schema: %v", err))
	}
	return schema
}

// Document validates a decoded JSON-compatible document against a JSON
// Schema. Failures are reported as a SchemaViolation whose issues point at
// instance locations.
type Document struct {
	name     string
	compiled *jsonschema.Schema
}

// CompileDocument compiles schema once for repeated validation.
func CompileDocument(name string, schema map[string]any) (*Document, error) {
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Document{name: name, compiled: compiled}, nil
}

// CompileDictionary compiles DictionarySchema.
func CompileDictionary() (*Document, error) {
	return CompileDocument("translations", DictionarySchema())
}

// Validate checks payload against the compiled schema.
func (d *Document) Validate(payload any) error {
	if d == nil || d.compiled == nil {
		return nil
	}
	normalized, err := jsonCompatible(payload)
	if err != nil {
		return &SchemaViolation{Subject: d.name, Cause: err}
	}
	if err := d.compiled.Validate(normalized); err != nil {
		return &SchemaViolation{
			Subject: d.name,
			Issues:  Issues(err),
			Cause:   err,
		}
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// jsonCompatible round-trips payload through encoding/json so that decoder
// specific map and number types become the shapes jsonschema expects.
func jsonCompatible(payload any) (any, error) {
	encoded, err := json.Marshal(NormalizeMaps(payload))
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeMaps converts map[any]any values produced by some YAML decoders
// into map[string]any, recursively.
func NormalizeMaps(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = NormalizeMaps(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = NormalizeMaps(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = NormalizeMaps(v)
		}
		return out
	default:
		return value
	}
}
