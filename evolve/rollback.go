package evolve

import (
	"go.kgctl.dev/kg/descriptor"
	"go.kgctl.dev/kg/schema"
)

// Project returns entry with every field and relationship absent from
// targetSchema filtered out, implementing the rollback-by-projection
// strategy (spec.md §4.5): "given an entity and a target version, return
// the entity with fields/relationships absent from that version's schemas
// filtered out. No data is deleted" -- Project never mutates the stored
// entity, it only computes the projected view a caller may choose to
// write back.
func Project(entry descriptor.Entry, targetSchema *schema.EntitySchema) descriptor.Entry {
	allowedFields := targetSchema.FieldNames()
	allowedRels := targetSchema.RelationshipNames()

	body := make(map[string]any, len(entry.Body))

	for k, v := range entry.Body {
		switch k {
		case "relationships":
			if projected := projectRelationships(v, allowedRels); projected != nil {
				body[k] = projected
			}
		case "depends_on":
			if allowedRels["depends_on"] {
				body[k] = v
			}
		default:
			if allowedFields[k] {
				body[k] = v
			}
		}
	}

	return descriptor.Entry{Name: entry.Name, Body: body}
}

func projectRelationships(raw any, allowedRels map[string]bool) map[string]any {
	rawMap, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]any, len(rawMap))

	for name, targets := range rawMap {
		if allowedRels[name] {
			out[name] = targets
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
