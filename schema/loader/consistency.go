package loader

import (
	"fmt"
	"sort"

	"go.kgctl.dev/kg/schema"
)

// checkConsistency runs the catalog-wide checks from spec §4.1:
//   - every relationship target_type exists in the catalog
//   - field names are unique within a schema (duplicate field error)
//   - field names and relationship names are disjoint within a schema
//     (one message per conflict, naming both sides)
//   - backing-type is non-empty (already enforced in buildEntitySchema, but
//     re-checked here for schemas assembled by other callers, e.g. tests)
//
// It returns every violation found, not just the first, since
// [ErrValidation] is meant to report the whole catalog's problems at once.
func checkConsistency(cat *schema.Catalog) []string {
	var msgs []string

	types := cat.EntityTypes()
	sort.Strings(types)

	for _, entityType := range types {
		es := cat.Schemas[entityType]

		msgs = append(msgs, checkFieldUniqueness(es)...)
		msgs = append(msgs, checkFieldRelationshipDisjoint(es)...)
		msgs = append(msgs, checkRelationshipTargets(es, cat)...)

		if es.BackingType == "" {
			msgs = append(msgs, fmt.Sprintf("entity %q: backing-type must be non-empty", entityType))
		}
	}

	return msgs
}

func checkFieldUniqueness(es *schema.EntitySchema) []string {
	var msgs []string

	seen := make(map[string]bool)

	for _, f := range es.AllFields() {
		if seen[f.Name] {
			msgs = append(msgs, fmt.Sprintf("entity %q: duplicate field %q", es.EntityType, f.Name))

			continue
		}

		seen[f.Name] = true
	}

	return msgs
}

func checkFieldRelationshipDisjoint(es *schema.EntitySchema) []string {
	var msgs []string

	fields := es.FieldNames()

	for _, r := range es.Relationships {
		if fields[r.Name] {
			msgs = append(msgs, fmt.Sprintf(
				"entity %q: naming conflict between field %q and relationship %q",
				es.EntityType, r.Name, r.Name))
		}
	}

	return msgs
}

func checkRelationshipTargets(es *schema.EntitySchema, cat *schema.Catalog) []string {
	var msgs []string

	for _, r := range es.Relationships {
		for _, target := range r.TargetTypes {
			if !cat.Has(target) {
				msgs = append(msgs, fmt.Sprintf(
					"entity %q: relationship %q targets unknown entity type %q",
					es.EntityType, r.Name, target))
			}
		}
	}

	return msgs
}
