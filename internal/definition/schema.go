package definition

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaID identifies the embedded definition schema.
const SchemaID = "menukit/menu-definition-v1.schema.json"

// schemaJSON is the JSON Schema every .json definition is validated
// against before decoding.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "menukit/menu-definition-v1.schema.json",
  "title": "Menu definition",
  "type": "object",
  "required": ["title"],
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "autoenables": {"type": "boolean"},
    "items": {"$ref": "#/$defs/items"}
  },
  "$defs": {
    "items": {
      "type": "array",
      "items": {"$ref": "#/$defs/item"}
    },
    "item": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "separator": {"type": "boolean"},
        "action": {"type": "string"},
        "key": {"type": "string"},
        "modifiers": {
          "type": "array",
          "items": {"enum": ["cmd", "shift", "ctrl", "alt"]}
        },
        "state": {"enum": ["off", "on", "mixed"]},
        "tag": {"type": "integer"},
        "indent": {"type": "integer", "minimum": 0, "maximum": 15},
        "tooltip": {"type": "string"},
        "hidden": {"type": "boolean"},
        "disabled": {"type": "boolean"},
        "alternate": {"type": "boolean"},
        "image": {"type": "string"},
        "items": {"$ref": "#/$defs/items"}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(SchemaID, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("definition: add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(SchemaID)
	})
	return schema, schemaErr
}

// ParseJSON validates a JSON definition against the schema and parses it.
func ParseJSON(data []byte) (*Menu, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("definition: parse json: %w", err)
	}
	if err := s.Validate(instance); err != nil {
		return nil, fmt.Errorf("definition: schema validation: %w", err)
	}

	var def Menu
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("definition: parse json: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
