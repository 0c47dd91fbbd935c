package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidatorAcceptsValidConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"version": "1.0",
		"board": map[string]interface{}{
			"length":     5,
			"width":      5,
			"max_height": 4,
		},
		"players": []string{"b", "w"},
		"log_dir": ".santorini/games",
	}
	require.NoError(t, v.Validate(doc))
}

func TestValidatorAllowsExtensionSections(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	var doc interface{}
	require.NoError(t, yaml.Unmarshal([]byte(`
version: "1.0"
logging:
  default_level: debug
`), &doc))
	require.NoError(t, v.Validate(doc))
}

func TestValidatorRejectsBadConfig(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{"missing version", map[string]interface{}{
			"players": []string{"b", "w"},
		}},
		{"version not a string", map[string]interface{}{
			"version": 1.0,
		}},
		{"unknown board field", map[string]interface{}{
			"version": "1.0",
			"board":   map[string]interface{}{"height": 4},
		}},
		{"players not an array", map[string]interface{}{
			"version": "1.0",
			"players": "bw",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.Validate(tt.doc); err == nil {
				t.Error("Expected schema validation to fail")
			}
		})
	}
}
