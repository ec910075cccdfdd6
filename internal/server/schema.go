package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// saveBodySchema is the contract for POST /api/save-page. Element order in
// the array is significant and preserved as-is; ids are not part of the
// wire format.
const saveBodySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["userId", "elements"],
  "properties": {
    "userId": {
      "type": "string",
      "minLength": 1
    },
    "elements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "position"],
        "properties": {
          "type": {
            "type": "string",
            "enum": ["heading", "text", "image", "services", "calendar", "location"]
          },
          "content": {
            "type": "object"
          },
          "position": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
              "x": {"type": "number", "minimum": 0},
              "y": {"type": "number", "minimum": 0}
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(saveBodySchema)

// ValidateSaveBody checks a save request body against the wire schema.
// Violations are joined into a single INVALID_DOCUMENT error.
func ValidateSaveBody(body []byte) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "save body is not valid JSON")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return errors.New(errors.ErrCodeInvalidDocument, "save body rejected: %s", strings.Join(msgs, "; "))
}
