package feedback

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const schemaTemplate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": [%s],
  "properties": {
    "overallScore": {"type": "number", "minimum": 0, "maximum": 100},
    "matchScore": %s,
    "candidateInfo": {
      "type": ["object", "null"],
      "properties": {
        "name": {"type": ["string", "null"]},
        "email": {"type": ["string", "null"]},
        "phone": {"type": ["string", "null"]},
        "currentTitle": {"type": ["string", "null"]}
      }
    },
    "ATS": {"$ref": "#/definitions/category"},
    "toneAndStyle": {"$ref": "#/definitions/category"},
    "content": {"$ref": "#/definitions/category"},
    "structure": {"$ref": "#/definitions/category"},
    "skills": {"$ref": "#/definitions/category"},
    "jobMatch": %s
  },
  "definitions": {
    "tip": {
      "type": "object",
      "required": ["type", "tip"],
      "properties": {
        "type": {"enum": ["good", "improve"]},
        "tip": {"type": "string"},
        "explanation": {"type": ["string", "null"]}
      }
    },
    "category": {
      "type": "object",
      "required": ["score", "tips"],
      "properties": {
        "score": {"type": "number"},
        "tips": {"type": "array", "items": {"$ref": "#/definitions/tip"}}
      }
    },
    "jobMatch": {
      "type": "object",
      "required": ["matchingSkills", "missingSkills", "matchingExperience", "overallAssessment"],
      "properties": {
        "matchingSkills": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["skill", "evidence"],
            "properties": {"skill": {"type": "string"}, "evidence": {"type": "string"}}
          }
        },
        "missingSkills": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["skill", "importance", "suggestion"],
            "properties": {
              "skill": {"type": "string"},
              "importance": {"enum": ["critical", "important", "nice-to-have"]},
              "suggestion": {"type": "string"}
            }
          }
        },
        "matchingExperience": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["requirement", "match", "matchLevel"],
            "properties": {
              "requirement": {"type": "string"},
              "match": {"type": "string"},
              "matchLevel": {"enum": ["excellent", "good", "partial", "none"]}
            }
          }
        },
        "overallAssessment": {"type": "string"}
      }
    }
  }
}`

var baseRequired = []string{"overallScore", "ATS", "toneAndStyle", "content", "structure", "skills"}

// Job-match fields are strict for JobMatch. General output may carry them
// as null since Parse drops them anyway.
var jobFieldSchemas = map[Variant][2]string{
	General: {
		`{"type": ["number", "null"], "minimum": 0, "maximum": 100}`,
		`{"anyOf": [{"type": "null"}, {"$ref": "#/definitions/jobMatch"}]}`,
	},
	JobMatch: {
		`{"type": "number", "minimum": 0, "maximum": 100}`,
		`{"$ref": "#/definitions/jobMatch"}`,
	},
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError reports a JSON object that does not match the feedback schema.
type SchemaError struct {
	Variant Variant
	Errors  []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s feedback failed validation:", e.Variant)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

var (
	schemaOnce sync.Once
	schemas    map[Variant]*gojsonschema.Schema
	schemaErr  error
)

func loadSchemas() (map[Variant]*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		required := map[Variant][]string{
			General:  baseRequired,
			JobMatch: append(append([]string{}, baseRequired...), "matchScore", "jobMatch"),
		}
		schemas = make(map[Variant]*gojsonschema.Schema, len(required))
		for v, fields := range required {
			quoted := make([]string, len(fields))
			for i, f := range fields {
				quoted[i] = `"` + f + `"`
			}
			job := jobFieldSchemas[v]
			doc := fmt.Sprintf(schemaTemplate, strings.Join(quoted, ", "), job[0], job[1])
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
			if err != nil {
				schemaErr = fmt.Errorf("compile %s feedback schema: %w", v, err)
				return
			}
			schemas[v] = s
		}
	})
	return schemas, schemaErr
}

// Validate checks a JSON object against the feedback schema for variant.
func Validate(doc string, variant Variant) error {
	compiled, err := loadSchemas()
	if err != nil {
		return err
	}
	result, err := compiled[variant].Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Variant: variant, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}
