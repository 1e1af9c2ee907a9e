package schema

// DeletionPolicy controls what happens to an entity when it is removed from
// a subsequent descriptor (the apply engine never deletes automatically;
// this is metadata for a future collaborator that does).
type DeletionPolicy string

// Supported deletion policies.
const (
	DeletionPolicyManual  DeletionPolicy = "manual"
	DeletionPolicyCascade DeletionPolicy = "cascade"
	DeletionPolicyRestrict DeletionPolicy = "restrict"
)

// Governance is a free-form tag describing who owns changes to a schema
// (e.g. "platform-team"); it is not interpreted by this package.
type Governance string

// EntitySchema is the full, resolved description of one entity type: its
// fields, relationships, and evolution/governance metadata. EntitySchemas
// are immutable after [go.kgctl.dev/kg/schema/loader] builds the catalog.
type EntitySchema struct {
	EntityType    string
	SchemaVersion string
	Extends       string
	Description   string

	RequiredFields []FieldDefinition
	OptionalFields []FieldDefinition
	ReadonlyFields []FieldDefinition

	Relationships []RelationshipDefinition

	// ValidationRules holds free-form business-rule configuration merged
	// in from a base schema (e.g. cross-field constraints consumed by
	// validate.Factory). Keys are rule names; values are opaque to this
	// package.
	ValidationRules map[string]any

	BackingType      string
	BackingPredicates map[string]string

	Governance        Governance
	DeletionPolicy    DeletionPolicy
	AutoCreation      bool
	AllowCustomFields bool
}

// AllFields returns required, optional, and readonly fields concatenated,
// in that order.
func (e *EntitySchema) AllFields() []FieldDefinition {
	out := make([]FieldDefinition, 0, len(e.RequiredFields)+len(e.OptionalFields)+len(e.ReadonlyFields))
	out = append(out, e.RequiredFields...)
	out = append(out, e.OptionalFields...)
	out = append(out, e.ReadonlyFields...)

	return out
}

// Field looks up a field definition by name across all three field groups.
func (e *EntitySchema) Field(name string) (FieldDefinition, bool) {
	for _, f := range e.AllFields() {
		if f.Name == name {
			return f, true
		}
	}

	return FieldDefinition{}, false
}

// Relationship looks up a relationship definition by name.
func (e *EntitySchema) Relationship(name string) (RelationshipDefinition, bool) {
	for _, r := range e.Relationships {
		if r.Name == name {
			return r, true
		}
	}

	return RelationshipDefinition{}, false
}

// FieldNames returns the set of all field names declared on e.
func (e *EntitySchema) FieldNames() map[string]bool {
	names := make(map[string]bool, len(e.RequiredFields)+len(e.OptionalFields)+len(e.ReadonlyFields))
	for _, f := range e.AllFields() {
		names[f.Name] = true
	}

	return names
}

// RelationshipNames returns the set of all relationship names declared on e.
func (e *EntitySchema) RelationshipNames() map[string]bool {
	names := make(map[string]bool, len(e.Relationships))
	for _, r := range e.Relationships {
		names[r.Name] = true
	}

	return names
}
