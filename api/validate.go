package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

// Student details arrive as a nested document (locations, categories,
// skills, per-date availability). The shape is checked against a JSON
// schema before any of it is decoded into structs, so malformed entries
// are rejected at the boundary with a precise message.
const studentDetailsSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "fullName": {"type": "string"},
    "preferredLocations": {"type": "array", "items": {"type": "string"}},
    "preferredCategories": {"type": "array", "items": {"type": "string"}},
    "skills": {"type": "array", "items": {"type": "string"}},
    "availability": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date"],
        "additionalProperties": false,
        "properties": {
          "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}"},
          "isFullDay": {"type": "boolean"},
          "timeSlots": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["startTime", "endTime"],
              "additionalProperties": false,
              "properties": {
                "startTime": {"type": "string", "pattern": "^[0-9]{2}:[0-9]{2}$"},
                "endTime": {"type": "string", "pattern": "^[0-9]{2}:[0-9]{2}$"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	detailsSchemaOnce sync.Once
	detailsSchema     *jsonschema.Schema
	detailsSchemaErr  error
)

func compiledDetailsSchema() (*jsonschema.Schema, error) {
	detailsSchemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(studentDetailsSchema), rs); err != nil {
			detailsSchemaErr = fmt.Errorf("compile student details schema: %w", err)
			return
		}
		detailsSchema = rs
	})
	return detailsSchema, detailsSchemaErr
}

// validateStudentDetails checks raw payload bytes against the schema and
// returns a user-facing message describing the first violations.
func validateStudentDetails(ctx context.Context, raw []byte) (string, bool) {
	rs, err := compiledDetailsSchema()
	if err != nil {
		logger.Error("schema compile", "err", err)
		return "", true
	}

	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return "invalid student details payload", false
	}
	if len(keyErrs) == 0 {
		return "", true
	}

	msgs := make([]string, 0, len(keyErrs))
	for i, ke := range keyErrs {
		if i == 3 {
			break
		}
		msgs = append(msgs, ke.Message)
	}
	return "invalid student details: " + strings.Join(msgs, "; "), false
}
