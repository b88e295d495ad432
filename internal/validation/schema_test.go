package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "person.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(personSchema), 0o644))

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid", data: `{"name": "Ada", "age": 36}`},
		{name: "optional field omitted", data: `{"name": "Ada"}`},
		{name: "missing required", data: `{"age": 3}`, errorMsg: "required"},
		{name: "wrong type", data: `{"name": "Ada", "age": "old"}`, errorMsg: "/age"},
		{name: "below minimum", data: `{"name": "Ada", "age": -1}`, errorMsg: "/age"},
		{name: "invalid json", data: `{"name": }`, errorMsg: "parse JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := filepath.Join(dir, "data.json")
			require.NoError(t, os.WriteFile(dataPath, []byte(tt.data), 0o644))

			err := v.ValidateFile(dataPath, schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_MissingFiles(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateFile(filepath.Join(t.TempDir(), "nope.json"), "whatever.schema.json")
	assert.ErrorContains(t, err, "failed to read data file")

	err = v.ValidateBytes([]byte(`{}`), "does/not/exist.schema.json")
	assert.ErrorContains(t, err, "schema file not found")
}

func TestSchemaValidator_ValidateWithSchema(t *testing.T) {
	v := NewSchemaValidator()

	assert.NoError(t, v.ValidateWithSchema([]byte(`{"name": "Ada"}`), "mem://person", []byte(personSchema)))
	assert.Error(t, v.ValidateWithSchema([]byte(`{}`), "mem://person", []byte(personSchema)))

	// compiled schemas are cached by id
	assert.NoError(t, v.ValidateWithSchema([]byte(`{"name": "Bob"}`), "mem://person", nil))
}

func TestSchemaValidator_BadSchema(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateWithSchema([]byte(`{}`), "mem://broken", []byte(`{"type": `))
	assert.ErrorContains(t, err, "failed to parse schema JSON")
}
