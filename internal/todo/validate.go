package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaName is the resource name of the embedded schema.
const SchemaName = "tasks.schema.json"

//go:embed tasks.schema.json
var schemaJSON string

var (
	embeddedOnce   sync.Once
	embeddedSchema *jsonschema.Schema
	embeddedErr    error
)

// Schema returns the embedded JSON Schema for task documents.
func Schema() string {
	return schemaJSON
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is an optional JSON Schema file used instead of the embedded
	// schema. If it is missing or invalid, the embedded schema is used and a
	// warning is recorded.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema string // SchemaName or the override path
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// Validate checks a serialized task document without building a store.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	_, result := decode(data, opts)
	return result
}

func decode(data []byte, opts ValidationOptions) (document, *ValidationResult) {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	instance, err := unmarshalInstance(data)
	if err != nil {
		result.fail("", fmt.Errorf("invalid JSON: %w", err))
		return document{}, result
	}

	schema := resolveSchema(opts.SchemaPath, result)
	if schema == nil {
		return document{}, result
	}
	if err := schema.Validate(instance); err != nil {
		appendSchemaErrors(result, err)
		return document{}, result
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("", err)
		return document{}, result
	}
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}

	checkInvariants(doc, result)
	return doc, result
}

// unmarshalInstance decodes data the way the schema validator expects,
// keeping numbers as json.Number and rejecting trailing content.
func unmarshalInstance(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// checkInvariants covers the rules a JSON Schema cannot express.
func checkInvariants(doc document, result *ValidationResult) {
	if doc.NextID < 1 {
		result.fail("next_id", fmt.Errorf("must be at least 1, got %d", doc.NextID))
	}

	seen := make(map[int]int, len(doc.Tasks))
	for i, task := range doc.Tasks {
		path := fmt.Sprintf("tasks[%d].id", i)
		if task.ID < 1 {
			result.fail(path, fmt.Errorf("must be at least 1, got %d", task.ID))
			continue
		}
		if first, dup := seen[task.ID]; dup {
			result.fail(path, fmt.Errorf("duplicate id %d (also used by tasks[%d])", task.ID, first))
		} else {
			seen[task.ID] = i
		}
		if task.ID >= doc.NextID {
			result.fail(path, fmt.Errorf("id %d is not below next_id %d", task.ID, doc.NextID))
		}
	}
}

func resolveSchema(path string, result *ValidationResult) *jsonschema.Schema {
	if path != "" {
		schema, err := compileSchemaFile(path)
		if err == nil {
			result.UsedSchema = path
			return schema
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("%v; using embedded schema", err))
	}

	schema, err := compiledEmbeddedSchema()
	if err != nil {
		result.fail("", fmt.Errorf("embedded schema: %w", err))
		return nil
	}
	result.UsedSchema = SchemaName
	return schema
}

func compileSchemaFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

func compiledEmbeddedSchema() (*jsonschema.Schema, error) {
	embeddedOnce.Do(func() {
		embeddedSchema, embeddedErr = jsonschema.CompileString(SchemaName, schemaJSON)
	})
	return embeddedSchema, embeddedErr
}

func appendSchemaErrors(result *ValidationResult, err error) {
	result.Valid = false

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: pointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// pointerToPath turns a JSON pointer such as /tasks/1/id into tasks[1].id.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part == "" {
			continue
		}
		part = strings.NewReplacer("~1", "/", "~0", "~").Replace(part)
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
