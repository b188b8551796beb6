package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

// fixedKeySchema requires every key to be present and to hold an array.
// Extra keys are tolerated and dropped later.
func fixedKeySchema(keys []string) map[string]any {
	props := make(map[string]any, len(keys))
	for _, k := range keys {
		props[k] = map[string]any{"type": "array"}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   keys,
	}
}

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func mustCompileSchema(kind models.AnalysisKind) *jsonschema.Schema {
	schema, err := compileSchema(string(kind)+".json", fixedKeySchema(kind.Keys()))
	if err != nil {
		panic(fmt.Sprintf("analyzer: %s schema: %v", kind, err))
	}
	return schema
}

var structuredSchemas = map[models.AnalysisKind]*jsonschema.Schema{
	models.KindKeyElements: mustCompileSchema(models.KindKeyElements),
	models.KindEntities:    mustCompileSchema(models.KindEntities),
}
