package export

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/feynlearn/feynlearn/internal/store"
)

// recordsSchema validates the shape of an export file before any of it is
// written to the database. Score and time fields are checked loosely; the
// store clamps and reparses on write.
const recordsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "knowledge", "questions", "answer", "createdAt", "updatedAt"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "knowledge": {"type": "string", "minLength": 1},
      "questions": {"type": ["array", "null"], "items": {"type": "string"}},
      "answer": {"type": "string"},
      "tags": {"type": ["array", "null"], "items": {"type": "string"}},
      "createdAt": {"type": "string"},
      "updatedAt": {"type": "string"},
      "assessment": {
        "type": ["object", "null"],
        "properties": {
          "clarity": {"type": "integer"},
          "logic": {"type": "integer"},
          "completeness": {"type": "integer"},
          "terminology": {"type": "integer"},
          "overall": {"type": "integer"},
          "suggestions": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var (
	compileSchemaOnce sync.Once
	compiledSchema    *jsonschema.Schema
	compileSchemaErr  error
)

// getRecordsSchema compiles recordsSchema once and caches the result.
func getRecordsSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(recordsSchema), &def); err != nil {
			compileSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://records.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			compileSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileSchemaErr
}

// ImportJSON parses an export file produced by RecordsJSON. The data is
// validated against a schema before unmarshaling, so a truncated or foreign
// file is rejected as a whole instead of half-imported.
func ImportJSON(data []byte) ([]*store.Record, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getRecordsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile records schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("not a valid export file: %w", err)
	}

	var records []*store.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
