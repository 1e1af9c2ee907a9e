package export

import (
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"go.kgctl.dev/kg/depuri"
	"go.kgctl.dev/kg/schema"
)

const draft202012 = "https://json-schema.org/draft/2020-12/schema"

const (
	defExternalURI = "externalDependencyURI"
	defInternalURI = "internalDependencyURI"
)

// BuildCatalogSchema projects cat into the Draft-2020-12 document spec.md
// §6 describes: top-level required namespace/entity, entity a closed
// object keyed by entity type, each value an array of single-key
// {entity_name: entityDef} objects, and $defs carrying the dependency URI
// patterns from §3.
func BuildCatalogSchema(cat *schema.Catalog) *jsonschema.Schema {
	entityTypes := cat.EntityTypes()
	sort.Strings(entityTypes)

	entityProps := make(map[string]*jsonschema.Schema, len(entityTypes))

	for _, t := range entityTypes {
		es, _ := cat.Get(t)
		entityProps[t] = entityTypeArraySchema(es)
	}

	return &jsonschema.Schema{
		Schema:   draft202012,
		Title:    "knowledge graph descriptor",
		Type:     "object",
		Required: []string{"namespace", "entity"},
		Properties: map[string]*jsonschema.Schema{
			"schema_version": {Type: "string"},
			"namespace":      {Type: "string", Pattern: depuri.NamespacePattern().String()},
			"entity": {
				Type:                 "object",
				Properties:           entityProps,
				AdditionalProperties: FalseSchema(),
			},
		},
		AdditionalProperties: TrueSchema(),
		Defs: map[string]*jsonschema.Schema{
			defExternalURI: {Type: "string", Pattern: depuri.ExternalPattern().String()},
			defInternalURI: {Type: "string", Pattern: depuri.InternalPattern().String()},
		},
	}
}

// entityTypeArraySchema builds the `array of {<entity_name>: <entityDef>}`
// schema for one entity type.
func entityTypeArraySchema(es *schema.EntitySchema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:                 "object",
			MinProperties:        jsonschema.Ptr(1),
			MaxProperties:        jsonschema.Ptr(1),
			AdditionalProperties: entityDefSchema(es),
		},
	}
}

// entityDefSchema builds the schema for one entity's body: required and
// optional fields (readonly fields are excluded per spec.md §6), plus the
// legacy depends_on list and the nested relationships map, both
// constrained to the dependency URI $defs.
func entityDefSchema(es *schema.EntitySchema) *jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		"depends_on": dependencyListSchema(),
		"relationships": {
			Type: "object",
			AdditionalProperties: dependencyListSchema(),
		},
	}

	var required []string

	for _, f := range es.RequiredFields {
		props[f.Name] = fieldSchema(f)
		required = append(required, f.Name)
	}

	for _, f := range es.OptionalFields {
		props[f.Name] = fieldSchema(f)
	}

	additional := TrueSchema()
	if !es.AllowCustomFields {
		additional = FalseSchema()
	}

	sort.Strings(required)

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: additional,
	}
}

func dependencyListSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				{Ref: "#/$defs/" + defExternalURI},
				{Ref: "#/$defs/" + defInternalURI},
			},
		},
	}
}

// fieldSchema derives a property schema from a field's semantic type and
// validation tag (spec.md §3's field attributes).
func fieldSchema(f schema.FieldDefinition) *jsonschema.Schema {
	s := &jsonschema.Schema{}

	switch f.Type {
	case schema.FieldTypeString:
		s.Type = "string"
	case schema.FieldTypeInteger:
		s.Type = "integer"
	case schema.FieldTypeBoolean:
		s.Type = "boolean"
	case schema.FieldTypeDatetime:
		s.Type = "string"
		s.Format = "date-time"
	case schema.FieldTypeArray:
		s.Type = "array"
		s.Items = itemTypeSchema(f.ItemType)
	case schema.FieldTypeObject:
		s.Type = "object"
		s.AdditionalProperties = TrueSchema()
	}

	switch f.Validation {
	case schema.ValidationEmail:
		s.Format = "email"
	case schema.ValidationURL:
		s.Format = "uri"
	case schema.ValidationEnum:
		for _, v := range f.AllowedValues {
			s.Enum = append(s.Enum, v)
		}
	}

	if f.Pattern != "" {
		s.Pattern = f.Pattern
	}

	if f.MinLength != nil {
		s.MinLength = f.MinLength
	}

	if f.MaxLength != nil {
		s.MaxLength = f.MaxLength
	}

	if f.MinItems != nil {
		s.MinItems = f.MinItems
	}

	if f.MaxItems != nil {
		s.MaxItems = f.MaxItems
	}

	if f.Deprecated {
		s.Deprecated = true
	}

	return s
}

func itemTypeSchema(t schema.FieldType) *jsonschema.Schema {
	switch t {
	case schema.FieldTypeInteger:
		return &jsonschema.Schema{Type: "integer"}
	case schema.FieldTypeBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case schema.FieldTypeDatetime:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

// TrueSchema returns a schema that validates everything.
func TrueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// FalseSchema returns a schema that validates nothing.
func FalseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
