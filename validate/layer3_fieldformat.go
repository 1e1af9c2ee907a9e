package validate

import (
	"fmt"

	"go.kgctl.dev/kg/descriptor"
	"go.kgctl.dev/kg/schema"
)

// layer3FieldFormat drives the per-entity validators over every declared
// entity body. If zero diagnostics are produced, it materializes the
// validated [descriptor.Descriptor] model; otherwise the model is nil,
// matching testable property: "if no Layer-3 errors, materialize the
// model; otherwise the model is absent and the pipeline exits with
// is_valid=false".
func layer3FieldFormat(tree map[string]any, cat *schema.Catalog, factory *Factory) ([]Diagnostic, *Model) {
	var diags []Diagnostic

	entityMap, _ := tree["entity"].(map[string]any)

	model := &Model{
		SchemaVersion: stringField(tree, "schema_version"),
		Namespace:     stringField(tree, "namespace"),
		Entity:        make(map[string][]descriptor.Entry, len(entityMap)),
	}

	for entityType, listRaw := range entityMap {
		if !cat.Has(entityType) {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeUnknownEntityType,
				Message: fmt.Sprintf("unknown entity type %q", entityType),
				Field:   entityType,
				Help:    "remove this entity type or add it to the schema catalog",
			})

			continue
		}

		list, ok := listRaw.([]any)
		if !ok {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeInvalidEntityShape,
				Message: fmt.Sprintf("entity.%s must be a list", entityType),
				Field:   entityType,
				Entity:  entityType,
				Help:    "wrap each entity in a list item",
			})

			continue
		}

		validator, err := factory.ForEntity(entityType)
		if err != nil {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeUnknownEntityType,
				Message: err.Error(),
				Field:   entityType,
				Help:    "remove this entity type or add it to the schema catalog",
			})

			continue
		}

		for _, itemRaw := range list {
			item, ok := itemRaw.(map[string]any)
			if !ok || len(item) != 1 {
				diags = append(diags, Diagnostic{
					Type:    DiagTypeInvalidEntityShape,
					Message: fmt.Sprintf("entity.%s entries must be single-key maps", entityType),
					Field:   entityType,
					Entity:  entityType,
					Help:    "each entry must be {entity_name: {...fields...}}",
				})

				continue
			}

			var name string

			var bodyRaw any

			for k, v := range item {
				name, bodyRaw = k, v
			}

			body, ok := bodyRaw.(map[string]any)
			if !ok {
				diags = append(diags, Diagnostic{
					Type:    DiagTypeInvalidEntityShape,
					Message: fmt.Sprintf("entity %q body must be a mapping", name),
					Field:   entityType,
					Entity:  name,
					Help:    "the entity body must be a map of fields",
				})

				continue
			}

			diags = append(diags, validator.Validate(name, body)...)
			model.Entity[entityType] = append(model.Entity[entityType], descriptor.Entry{Name: name, Body: body})
		}
	}

	if len(diags) > 0 {
		return diags, nil
	}

	return nil, model
}

func stringField(tree map[string]any, key string) string {
	s, _ := tree[key].(string)

	return s
}
