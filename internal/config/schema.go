package config

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.Mapper = optionalTimeMapper
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// GenerateSchema generates the JSON schema of the analysis config file.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		Mapper:                     optionalTimeMapper,
	}

	//nolint:exhaustruct // empty struct is intentional for schema generation
	schema := reflector.Reflect(&Config{})
	schema.Title = "leaps-analysis-config"
	schema.Description = "Configuration schema for a leaps analysis run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON renders GenerateSchema as indented JSON.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

func optionalTimeMapper(t reflect.Type) *jsonschema.Schema {
	if t.String() == "optional.Option[time.Time]" {
		return &jsonschema.Schema{
			Type:   "string",
			Format: "date-time",
		}
	}

	return nil
}
