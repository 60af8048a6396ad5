package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaFile is the name of the generated schema for the agperms extension.
const SchemaFile = "agperms.schema.json"

// Schema reflects the JSON schema of the agperms grove.yml extension.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Grove Agent Permissions (agperms) Configuration"
	schema.Description = "Schema for the 'agperms' extension in grove.yml."
	return schema
}

// SchemaJSON renders Schema as indented JSON, exactly as it is written to
// SchemaFile.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
