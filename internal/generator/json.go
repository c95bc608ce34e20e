package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"docsmith/internal/extractor"
)

//go:embed module_doc.schema.json
var moduleDocSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func payloadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("module_doc.schema.json", bytes.NewReader([]byte(moduleDocSchema))); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("module_doc.schema.json")
	})
	return compiledSchema, schemaErr
}

// JSONGenerator renders a module's documentation payload as plain JSON.
// Every payload is validated against the embedded schema before it is
// handed back; a schema violation is a generation error, not silent output.
type JSONGenerator struct {
	linker SourceLinker
}

// NewJSONGenerator creates a JSON generator. linker may be nil.
func NewJSONGenerator(linker SourceLinker) *JSONGenerator {
	return &JSONGenerator{linker: linker}
}

// ModulePage renders the JSON document for a module.
func (g *JSONGenerator) ModulePage(mod *extractor.Module) (string, error) {
	payload := BuildModulePayload(mod, g.linker)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize module %s: %w", mod.Name, err)
	}

	if err := ValidatePayload(data); err != nil {
		return "", fmt.Errorf("schema validation failed for module %s: %w", mod.Name, err)
	}
	return string(data) + "\n", nil
}

// ValidatePayload checks serialized payload JSON against the embedded schema.
func ValidatePayload(data []byte) error {
	schema, err := payloadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile payload schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
