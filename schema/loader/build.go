package loader

import (
	"go.kgctl.dev/kg/schema"
)

// buildEntitySchema merges raw against its base (if any) and produces a
// [schema.EntitySchema]. The second return value reports whether raw used
// `extends`, for [schema.Catalog.BaseDerived] bookkeeping.
func buildEntitySchema(raw *rawEntitySchema, path string, bases map[string]*rawBaseSchema) (*schema.EntitySchema, bool, error) {
	if raw.EntityType == "" {
		return nil, false, requiredFieldErr(path, "entity_type")
	}

	if raw.SchemaVersion == "" {
		return nil, false, requiredFieldErr(path, "schema_version")
	}

	if raw.DgraphType == "" {
		return nil, false, requiredFieldErr(path, "dgraph_type")
	}

	es := &schema.EntitySchema{
		EntityType:        raw.EntityType,
		SchemaVersion:     raw.SchemaVersion,
		Extends:           raw.Extends,
		Description:       raw.Description,
		BackingType:       raw.DgraphType,
		BackingPredicates: raw.DgraphPredicates,
		Governance:        schema.Governance(raw.Governance),
		DeletionPolicy:    schema.DeletionPolicy(raw.DeletionPolicy),
		ValidationRules:   raw.ValidationRules,
	}

	if raw.AutoCreation != nil {
		es.AutoCreation = *raw.AutoCreation
	}

	if raw.AllowCustomFields != nil {
		es.AllowCustomFields = *raw.AllowCustomFields
	}

	usedBase := false

	if raw.Extends != "" {
		base, ok := bases[raw.Extends]
		if !ok {
			return nil, false, inheritanceErr(raw.EntityType, raw.Extends)
		}

		usedBase = true

		mergeBase(es, raw, base)
	}

	es.RequiredFields = parseFields(raw.RequiredMetadata, true)
	es.OptionalFields = parseFields(raw.OptionalMetadata, false)
	es.ReadonlyFields = append(es.ReadonlyFields, parseFields(raw.ReadonlyMetadata, false)...)
	es.Relationships = parseRelationships(raw.Relationships)

	return es, usedBase, nil
}

// mergeBase deep-merges base's readonly_metadata and validation_rules into
// es (entity values win on key conflict) and inherits deletion_policy,
// governance, and allow_custom_fields where the entity left them unset.
func mergeBase(es *schema.EntitySchema, raw *rawEntitySchema, base *rawBaseSchema) {
	merged := make(map[string]rawField, len(base.ReadonlyMetadata))
	for k, v := range base.ReadonlyMetadata {
		merged[k] = v
	}

	for k, v := range raw.ReadonlyMetadata {
		merged[k] = v
	}

	raw.ReadonlyMetadata = merged

	if len(base.ValidationRules) > 0 {
		mergedRules := make(map[string]any, len(base.ValidationRules)+len(raw.ValidationRules))
		for k, v := range base.ValidationRules {
			mergedRules[k] = v
		}

		for k, v := range raw.ValidationRules {
			mergedRules[k] = v
		}

		es.ValidationRules = mergedRules
	}

	if es.DeletionPolicy == "" {
		es.DeletionPolicy = schema.DeletionPolicy(base.DeletionPolicy)
	}

	if es.Governance == "" {
		es.Governance = schema.Governance(base.Governance)
	}

	if raw.AllowCustomFields == nil && base.AllowCustomFields != nil {
		es.AllowCustomFields = *base.AllowCustomFields
	}
}

func parseFields(raw map[string]rawField, required bool) []schema.FieldDefinition {
	if len(raw) == 0 {
		return nil
	}

	out := make([]schema.FieldDefinition, 0, len(raw))

	for name, f := range raw {
		out = append(out, schema.FieldDefinition{
			Name:          name,
			Type:          schema.FieldType(f.Type),
			Required:      required,
			Validation:    schema.Validation(f.Validation),
			MinLength:     f.MinLength,
			MaxLength:     f.MaxLength,
			MinItems:      f.MinItems,
			MaxItems:      f.MaxItems,
			Pattern:       f.Pattern,
			AllowedValues: f.AllowedValues,
			ItemType:      schema.FieldType(f.Items),
			Indexed:       f.Indexed,
			Deprecation: schema.Deprecation{
				Deprecated:      f.Deprecated,
				DeprecatedSince: f.DeprecatedSince,
				RemovalVersion:  f.RemovalVersion,
				MigrationNote:   f.MigrationNote,
			},
		})
	}

	return out
}

func parseRelationships(raw map[string]rawRelationship) []schema.RelationshipDefinition {
	if len(raw) == 0 {
		return nil
	}

	out := make([]schema.RelationshipDefinition, 0, len(raw))

	for name, r := range raw {
		out = append(out, schema.RelationshipDefinition{
			Name:        name,
			TargetTypes: r.TargetTypes,
			Cardinality: schema.Cardinality(r.Cardinality),
			Direction:   schema.Direction(r.Direction),
			Deprecation: schema.Deprecation{
				Deprecated:      r.Deprecated,
				DeprecatedSince: r.DeprecatedSince,
				RemovalVersion:  r.RemovalVersion,
				MigrationNote:   r.MigrationNote,
			},
		})
	}

	return out
}
