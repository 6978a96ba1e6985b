package formats

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Embedded schemas for the two document kinds. Validation runs before the
// struct decode so schema violations all map onto ErrMalformedDefinition;
// unknown extra keys are allowed (packs routinely carry editor metadata).

const blockStateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "variants": {
      "type": "object",
      "additionalProperties": {
        "anyOf": [
          {"$ref": "#/$defs/variant"},
          {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/variant"}}
        ]
      }
    },
    "multipart": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["apply"],
        "properties": {
          "when": {"type": "object"},
          "apply": {
            "anyOf": [
              {"$ref": "#/$defs/variant"},
              {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/variant"}}
            ]
          }
        }
      }
    }
  },
  "$defs": {
    "variant": {
      "type": "object",
      "required": ["model"],
      "properties": {
        "model": {"type": "string", "minLength": 1},
        "x": {"enum": [0, 90, 180, 270]},
        "y": {"enum": [0, 90, 180, 270]},
        "z": {"enum": [0, 90, 180, 270]},
        "uvlock": {"type": "boolean"},
        "weight": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

const modelSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "parent": {"type": "string"},
    "ambientocclusion": {"type": "boolean"},
    "textures": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    },
    "elements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "faces"],
        "properties": {
          "from": {"$ref": "#/$defs/point"},
          "to": {"$ref": "#/$defs/point"},
          "shade": {"type": "boolean"},
          "rotation": {
            "type": "object",
            "required": ["origin", "axis", "angle"],
            "properties": {
              "origin": {"$ref": "#/$defs/point"},
              "axis": {"enum": ["x", "y", "z"]},
              "angle": {"enum": [-45, -22.5, 0, 22.5, 45]},
              "rescale": {"type": "boolean"}
            }
          },
          "faces": {
            "type": "object",
            "propertyNames": {"enum": ["down", "up", "north", "south", "west", "east"]},
            "additionalProperties": {
              "type": "object",
              "required": ["texture"],
              "properties": {
                "uv": {
                  "type": "array",
                  "minItems": 4,
                  "maxItems": 4,
                  "items": {"type": "number"}
                },
                "texture": {"type": "string", "minLength": 1},
                "cullface": {"enum": ["down", "up", "north", "south", "west", "east"]},
                "rotation": {"enum": [0, 90, 180, 270]},
                "tintindex": {"type": "integer"}
              }
            }
          }
        }
      }
    }
  },
  "$defs": {
    "point": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {"type": "number", "minimum": -16, "maximum": 32}
    }
  }
}`

var (
	compiledBlockState = jsonschema.MustCompileString("blockstate.schema.json", blockStateSchema)
	compiledModel      = jsonschema.MustCompileString("model.schema.json", modelSchema)
)

func validateBlockState(data []byte) error {
	return validateAgainst(compiledBlockState, data)
}

func validateModel(data []byte) error {
	return validateAgainst(compiledModel, data)
}

func validateAgainst(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}
	return nil
}
