package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ManifestValidator checks a capability manifest against the JSON schema.
type ManifestValidator struct {
	schema *gojsonschema.Schema
}

// NewManifestValidator compiles the schema, preferring an on-disk copy so
// the contract can evolve without a rebuild.
func NewManifestValidator() (*ManifestValidator, error) {
	schemaPath := "docs/manifest-schema.json"
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		schemaData = []byte(embeddedSchema)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest schema: %w", err)
	}
	return &ManifestValidator{schema: schema}, nil
}

// Validate runs the manifest through the schema and collects every
// violation into one error.
func (mv *ManifestValidator) Validate(m *Manifest) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	result, err := mv.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("- %s", e))
		}
		return fmt.Errorf("manifest validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// RequiredSkills is the minimum tool surface the dialogue engine needs to
// be useful.
func RequiredSkills() []string {
	return []string{"analyze_symptoms", "search_hospitals"}
}

// ValidateSkills checks that every required skill is declared.
func ValidateSkills(m *Manifest) error {
	declared := make(map[string]bool)
	for _, s := range m.Skills {
		declared[s.Name] = true
	}

	var missing []string
	for _, req := range RequiredSkills() {
		if !declared[req] {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("manifest is missing required skills: %v", missing)
	}
	return nil
}

// Embedded schema as fallback
const embeddedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Capability Manifest Schema",
  "type": "object",
  "required": ["name", "version", "skills"],
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1
    },
    "description": {
      "type": "string"
    },
    "version": {
      "type": "string",
      "pattern": "^\\d+\\.\\d+\\.\\d+$"
    },
    "url": {
      "type": "string"
    },
    "skills": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "description"],
        "properties": {
          "name": {
            "type": "string",
            "pattern": "^[a-z][a-z0-9_]*$"
          },
          "description": {
            "type": "string",
            "minLength": 1
          },
          "tags": {
            "type": "array",
            "items": { "type": "string" }
          },
          "examples": {
            "type": "array",
            "items": { "type": "string" }
          }
        }
      }
    }
  }
}`
