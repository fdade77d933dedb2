package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/skillpulse/skillpulse/internal/category"
)

const updateSchemaURL = "schema://profile-update.json"

var (
	compileOnce    sync.Once
	compiledUpdate *jsonschema.Schema
	compileErr     error
)

// UpdateSchema returns the JSON schema definition for a profile update payload.
func UpdateSchema() map[string]any {
	cats := make([]any, 0, len(category.All()))
	for _, c := range category.All() {
		cats = append(cats, string(c))
	}
	levels := make([]any, 0, len(category.AllLevels()))
	for _, l := range category.AllLevels() {
		levels = append(levels, string(l))
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"experience_level": map[string]any{
				"type": "string",
				"enum": levels,
			},
			"years_of_experience": map[string]any{
				"type":    "number",
				"minimum": 0,
			},
			"focus_areas": map[string]any{
				"type":        "array",
				"maxItems":    MaxFocusAreas,
				"uniqueItems": true,
				"items": map[string]any{
					"type": "string",
					"enum": cats,
				},
			},
			"goal": map[string]any{
				"type":      "string",
				"maxLength": MaxGoalLength,
			},
			"self_assessment": map[string]any{
				"type":          "object",
				"propertyNames": map[string]any{"enum": cats},
				"additionalProperties": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 5,
				},
			},
		},
	}
}

func updateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value, so round-trip the
		// Go map through encoding/json.
		defBytes, err := json.Marshal(UpdateSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(updateSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledUpdate, compileErr = c.Compile(updateSchemaURL)
	})
	return compiledUpdate, compileErr
}

// DecodeUpdate validates raw against the update schema and decodes it.
// Schema and syntax failures are returned as *ValidationError.
func DecodeUpdate(raw []byte) (Update, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Update{}, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := updateSchema()
	if err != nil {
		return Update{}, fmt.Errorf("compile profile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Update{}, &ValidationError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var u Update
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		return Update{}, &ValidationError{Err: fmt.Errorf("decode update: %w", err)}
	}
	return u, nil
}
