package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the santorini
// configuration. It reflects the Config struct from types.go but excludes the
// 'Extensions' field, which holds free-form sections owned by other
// subsystems.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Unknown top-level sections are legal (they land in Extensions),
		// so additional properties stay allowed.
		AllowAdditionalProperties: true,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	type baseConfig struct {
		Version string      `yaml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
		Board   BoardConfig `yaml:"board,omitempty" jsonschema:"description=Board dimensions and limits"`
		Players []string    `yaml:"players,omitempty" jsonschema:"description=Player turn order as color codes"`
		LogDir  string      `yaml:"log_dir,omitempty" jsonschema:"description=Directory where game logs are saved"`
	}

	schema := r.Reflect(&baseConfig{})
	schema.Title = "Santorini Configuration"
	schema.Description = "Schema for santorini.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
