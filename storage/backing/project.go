package backing

import (
	"sort"

	"go.kgctl.dev/kg/schema"
)

// PredicateType is the backing store's native type a field's semantic
// type derives into (spec.md §4.10's mapping table).
type PredicateType string

// Supported predicate types.
const (
	PredicateString     PredicateType = "string"
	PredicateInt        PredicateType = "int"
	PredicateBool       PredicateType = "bool"
	PredicateStringList PredicateType = "[string]"
	PredicateDatetime   PredicateType = "datetime"
)

// predicateTypeFor maps a field's semantic type to its backing predicate
// type. object fields project to string (JSON-encoded), matching the
// teacher's own "opaque blob" treatment of free-form maps.
func predicateTypeFor(t schema.FieldType) PredicateType {
	switch t {
	case schema.FieldTypeString:
		return PredicateString
	case schema.FieldTypeInteger:
		return PredicateInt
	case schema.FieldTypeBoolean:
		return PredicateBool
	case schema.FieldTypeArray:
		return PredicateStringList
	case schema.FieldTypeDatetime:
		return PredicateDatetime
	case schema.FieldTypeObject:
		return PredicateString
	default:
		return PredicateString
	}
}

// indexedPredicateTypes receive an exact index in the backing schema
// (spec.md §4.10: "string/int/bool predicates receive exact indices").
var indexedPredicateTypes = map[PredicateType]bool{
	PredicateString: true,
	PredicateInt:    true,
	PredicateBool:   true,
}

// Predicate is one backing-schema predicate declaration.
type Predicate struct {
	Name       string
	Type       PredicateType
	ExactIndex bool
}

// TypeDeclaration is one entity_type's backing-schema type declaration:
// its name and the ordered list of predicate names it carries.
type TypeDeclaration struct {
	EntityType string
	Fields     []string
}

// Projection is the complete backing schema derived from a catalog.
type Projection struct {
	Predicates        []Predicate
	Types             []TypeDeclaration
	EntityIDIndexed   bool
	EntityTypeIndexed bool
}

// Project derives a [Projection] from cat. Field names are deduplicated
// across entity types, first-seen wins (spec.md §9's design note: a naive
// per-type emit creates duplicate-definition errors in a real backend).
func Project(cat *schema.Catalog) Projection {
	proj := Projection{EntityIDIndexed: true, EntityTypeIndexed: true}

	seen := map[string]bool{}

	entityTypes := cat.EntityTypes()
	sort.Strings(entityTypes)

	for _, entityType := range entityTypes {
		es, _ := cat.Get(entityType)

		decl := TypeDeclaration{EntityType: entityType}

		for _, f := range es.AllFields() {
			decl.Fields = append(decl.Fields, f.Name)

			if seen[f.Name] {
				continue
			}

			seen[f.Name] = true

			pt := predicateTypeFor(f.Type)
			proj.Predicates = append(proj.Predicates, Predicate{
				Name:       f.Name,
				Type:       pt,
				ExactIndex: indexedPredicateTypes[pt],
			})
		}

		proj.Types = append(proj.Types, decl)
	}

	return proj
}
