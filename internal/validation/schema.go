package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON documents against JSON schemas
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
	ValidateWithSchema(data []byte, schemaID string, schema []byte) error
}

type schemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator with an empty schema cache
func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateFile validates a JSON file against a schema file
func (v *schemaValidator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf(ErrMsgReadDataFailed, dataPath, err)
	}
	return v.ValidateBytes(data, schemaPath)
}

// ValidateBytes validates JSON bytes against a schema file. Relative schema
// paths are resolved upward to the module root.
func (v *schemaValidator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.compiled(schemaPath, func() ([]byte, error) {
		resolved, err := resolveSchemaPath(schemaPath)
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(resolved)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgReadSchemaFailed, err)
		}
		return raw, nil
	})
	if err != nil {
		return fmt.Errorf(ErrMsgLoadSchemaFailed, schemaPath, err)
	}
	return validate(schema, data)
}

// ValidateWithSchema validates JSON bytes against an in-memory schema,
// typically one embedded in the binary. schemaID keys the compile cache.
func (v *schemaValidator) ValidateWithSchema(data []byte, schemaID string, schema []byte) error {
	compiled, err := v.compiled(schemaID, func() ([]byte, error) { return schema, nil })
	if err != nil {
		return fmt.Errorf(ErrMsgLoadSchemaFailed, schemaID, err)
	}
	return validate(compiled, data)
}

func (v *schemaValidator) compiled(id string, load func() ([]byte, error)) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[id]; ok {
		return schema, nil
	}

	raw, err := load()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseSchemaFailed, err)
	}
	if err := v.compiler.AddResource(id, doc); err != nil {
		return nil, fmt.Errorf(ErrMsgAddResourceFailed, err)
	}
	schema, err := v.compiler.Compile(id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompileFailed, err)
	}
	v.schemas[id] = schema
	return schema, nil
}

func validate(schema *jsonschema.Schema, data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf(ErrMsgParseDataFailed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

func formatSchemaError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("%s: %w", ErrMsgSchemaValidation, err)
	}
	var lines []string
	collectErrors(validationErr, &lines)
	return fmt.Errorf("%s:\n%s", ErrMsgSchemaValidation, strings.Join(lines, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			*lines = append(*lines, fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(path, ".")))
		}
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

// resolveSchemaPath looks for a relative schema path in the working directory
// and each parent up to the one holding go.mod
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}
	if _, err := os.Stat(schemaPath); err == nil {
		return schemaPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf(ErrMsgSchemaNotFound, schemaPath)
}
