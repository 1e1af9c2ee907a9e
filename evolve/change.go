package evolve

import (
	"go.kgctl.dev/kg/schema"
)

// FieldChangeKind tags how one field differs between two schema versions.
type FieldChangeKind string

// Field change kinds.
const (
	FieldAdded          FieldChangeKind = "field_added"
	FieldRemoved        FieldChangeKind = "field_removed"
	FieldBecameRequired FieldChangeKind = "field_became_required"
	FieldTypeChanged    FieldChangeKind = "field_type_changed"
)

// FieldChange describes one field-level difference for a single entity
// type.
type FieldChange struct {
	Kind       FieldChangeKind
	EntityType string
	FieldName  string
	OldType    schema.FieldType
	NewType    schema.FieldType

	// Required is set for FieldAdded: whether the newly added field was
	// declared required from the start (spec.md §4.5: "required field
	// added -- forbidden; new fields must be optional").
	Required bool
}

// RelationshipChangeKind tags how one relationship differs between two
// schema versions.
type RelationshipChangeKind string

// Relationship change kinds.
const (
	RelationshipAdded          RelationshipChangeKind = "relationship_added"
	RelationshipRemoved        RelationshipChangeKind = "relationship_removed"
	RelationshipTargetsShrunk  RelationshipChangeKind = "relationship_targets_shrunk"
)

// RelationshipChange describes one relationship-level difference for a
// single entity type.
type RelationshipChange struct {
	Kind             RelationshipChangeKind
	EntityType       string
	RelationshipName string
	RemovedTargets   []string
}

// EntityTypeChangeKind tags how the catalog's entity-type set differs.
type EntityTypeChangeKind string

// Entity-type change kinds.
const (
	EntityTypeAdded   EntityTypeChangeKind = "entity_type_added"
	EntityTypeRemoved EntityTypeChangeKind = "entity_type_removed"
)

// EntityTypeChange describes one entity-type-level difference.
type EntityTypeChange struct {
	Kind       EntityTypeChangeKind
	EntityType string
}

// Changes is the full diff between two catalogs (spec.md §4.5 / testable
// properties 10-12).
type Changes struct {
	Fields        []FieldChange
	Relationships []RelationshipChange
	EntityTypes   []EntityTypeChange
}

// IsEmpty reports whether no differences were found (testable property 10:
// identical catalogs -> zero changes).
func (c Changes) IsEmpty() bool {
	return len(c.Fields) == 0 && len(c.Relationships) == 0 && len(c.EntityTypes) == 0
}

// Detect computes the [Changes] between an older and a newer catalog.
func Detect(oldCat, newCat *schema.Catalog) Changes {
	var changes Changes

	oldTypes := oldCat.EntityTypes()
	newTypeSet := map[string]bool{}

	for _, t := range newCat.EntityTypes() {
		newTypeSet[t] = true
	}

	oldTypeSet := map[string]bool{}
	for _, t := range oldTypes {
		oldTypeSet[t] = true
	}

	for t := range oldTypeSet {
		if !newTypeSet[t] {
			changes.EntityTypes = append(changes.EntityTypes, EntityTypeChange{
				Kind: EntityTypeRemoved, EntityType: t,
			})
		}
	}

	for t := range newTypeSet {
		if !oldTypeSet[t] {
			changes.EntityTypes = append(changes.EntityTypes, EntityTypeChange{
				Kind: EntityTypeAdded, EntityType: t,
			})
		}
	}

	for t := range oldTypeSet {
		if !newTypeSet[t] {
			continue
		}

		oldSchema, _ := oldCat.Get(t)
		newSchema, _ := newCat.Get(t)

		changes.Fields = append(changes.Fields, detectFieldChanges(t, oldSchema, newSchema)...)
		changes.Relationships = append(changes.Relationships, detectRelationshipChanges(t, oldSchema, newSchema)...)
	}

	return changes
}

func detectFieldChanges(entityType string, oldSchema, newSchema *schema.EntitySchema) []FieldChange {
	var changes []FieldChange

	oldFields := map[string]schema.FieldDefinition{}
	for _, f := range oldSchema.AllFields() {
		oldFields[f.Name] = f
	}

	newFields := map[string]schema.FieldDefinition{}
	for _, f := range newSchema.AllFields() {
		newFields[f.Name] = f
	}

	for name, oldField := range oldFields {
		newField, ok := newFields[name]
		if !ok {
			changes = append(changes, FieldChange{
				Kind: FieldRemoved, EntityType: entityType, FieldName: name,
			})

			continue
		}

		if !oldField.Required && newField.Required {
			changes = append(changes, FieldChange{
				Kind: FieldBecameRequired, EntityType: entityType, FieldName: name,
			})
		}

		if oldField.Type != newField.Type {
			changes = append(changes, FieldChange{
				Kind: FieldTypeChanged, EntityType: entityType, FieldName: name,
				OldType: oldField.Type, NewType: newField.Type,
			})
		}
	}

	for name, newField := range newFields {
		if _, ok := oldFields[name]; !ok {
			changes = append(changes, FieldChange{
				Kind: FieldAdded, EntityType: entityType, FieldName: name,
				Required: newField.Required,
			})
		}
	}

	return changes
}

func detectRelationshipChanges(entityType string, oldSchema, newSchema *schema.EntitySchema) []RelationshipChange {
	var changes []RelationshipChange

	oldRels := map[string]schema.RelationshipDefinition{}
	for _, r := range oldSchema.Relationships {
		oldRels[r.Name] = r
	}

	newRels := map[string]schema.RelationshipDefinition{}
	for _, r := range newSchema.Relationships {
		newRels[r.Name] = r
	}

	for name, oldRel := range oldRels {
		newRel, ok := newRels[name]
		if !ok {
			changes = append(changes, RelationshipChange{
				Kind: RelationshipRemoved, EntityType: entityType, RelationshipName: name,
			})

			continue
		}

		var removed []string

		for _, t := range oldRel.TargetTypes {
			if !newRel.HasTargetType(t) {
				removed = append(removed, t)
			}
		}

		if len(removed) > 0 {
			changes = append(changes, RelationshipChange{
				Kind: RelationshipTargetsShrunk, EntityType: entityType,
				RelationshipName: name, RemovedTargets: removed,
			})
		}
	}

	for name := range newRels {
		if _, ok := oldRels[name]; !ok {
			changes = append(changes, RelationshipChange{
				Kind: RelationshipAdded, EntityType: entityType, RelationshipName: name,
			})
		}
	}

	return changes
}
