package evolve

import "fmt"

// ViolationKind names a specific additive-evolution rule violation
// (testable property 12).
type ViolationKind string

// Violation kinds. Each corresponds to a forbidden non-additive change;
// everything else (adding a field, relationship, or entity type; marking
// an existing member deprecated without removing it) is allowed.
const (
	ViolationFieldRemoved              ViolationKind = "field_removed"
	ViolationRelationshipRemoved       ViolationKind = "relationship_removed"
	ViolationEntityTypeRemoved         ViolationKind = "entity_type_removed"
	ViolationFieldBecameRequired       ViolationKind = "field_became_required"
	ViolationFieldTypeChanged          ViolationKind = "field_type_changed"
	ViolationRelationshipTargetsShrunk ViolationKind = "relationship_targets_shrunk"
	ViolationRequiredFieldAdded        ViolationKind = "required_field_added"
)

// Violation is one rejected change, carrying enough context to build a
// human-readable message.
type Violation struct {
	Kind       ViolationKind
	EntityType string
	Name       string // field or relationship name, empty for entity-type violations
}

// String renders a human-readable description of the violation.
func (v Violation) String() string {
	switch v.Kind {
	case ViolationEntityTypeRemoved:
		return fmt.Sprintf("entity type %q was removed", v.EntityType)
	case ViolationFieldRemoved:
		return fmt.Sprintf("field %q was removed from %q", v.Name, v.EntityType)
	case ViolationRelationshipRemoved:
		return fmt.Sprintf("relationship %q was removed from %q", v.Name, v.EntityType)
	case ViolationFieldBecameRequired:
		return fmt.Sprintf("field %q on %q became required", v.Name, v.EntityType)
	case ViolationFieldTypeChanged:
		return fmt.Sprintf("field %q on %q changed type", v.Name, v.EntityType)
	case ViolationRelationshipTargetsShrunk:
		return fmt.Sprintf("relationship %q on %q lost target types", v.Name, v.EntityType)
	case ViolationRequiredFieldAdded:
		return fmt.Sprintf("field %q was added to %q as required", v.Name, v.EntityType)
	default:
		return fmt.Sprintf("disallowed change on %q", v.EntityType)
	}
}

// CheckAdditive classifies changes into the set of violations that make
// the transition non-additive (testable properties 11-12). Adding an
// optional field, a relationship, or an entity type never produces a
// violation.
func CheckAdditive(changes Changes) []Violation {
	var violations []Violation

	for _, c := range changes.EntityTypes {
		if c.Kind == EntityTypeRemoved {
			violations = append(violations, Violation{Kind: ViolationEntityTypeRemoved, EntityType: c.EntityType})
		}
	}

	for _, c := range changes.Fields {
		switch c.Kind {
		case FieldRemoved:
			violations = append(violations, Violation{Kind: ViolationFieldRemoved, EntityType: c.EntityType, Name: c.FieldName})
		case FieldBecameRequired:
			violations = append(violations, Violation{Kind: ViolationFieldBecameRequired, EntityType: c.EntityType, Name: c.FieldName})
		case FieldTypeChanged:
			violations = append(violations, Violation{Kind: ViolationFieldTypeChanged, EntityType: c.EntityType, Name: c.FieldName})
		case FieldAdded:
			if c.Required {
				violations = append(violations, Violation{Kind: ViolationRequiredFieldAdded, EntityType: c.EntityType, Name: c.FieldName})
			}
		}
	}

	for _, c := range changes.Relationships {
		switch c.Kind {
		case RelationshipRemoved:
			violations = append(violations, Violation{Kind: ViolationRelationshipRemoved, EntityType: c.EntityType, Name: c.RelationshipName})
		case RelationshipTargetsShrunk:
			violations = append(violations, Violation{Kind: ViolationRelationshipTargetsShrunk, EntityType: c.EntityType, Name: c.RelationshipName})
		}
	}

	return violations
}
