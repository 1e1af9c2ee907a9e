package apply

import (
	"context"
	"strings"

	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/storage"
)

// processRelationships implements the replacement guarantee of spec.md
// §4.8: for every relationship the entity's *schema* declares (not every
// key the descriptor happened to write), the existing edge set is removed
// and replaced wholesale by the descriptor's target list, so a
// relationship declared in the schema but absent from the descriptor ends
// up with an empty edge set.
func processRelationships(ctx context.Context, client storage.Client, es *schema.EntitySchema, entityType, entityID string, declared map[string][]string) error {
	for _, rel := range es.Relationships {
		if _, err := client.RemoveRelationshipsByType(ctx, entityType, entityID, rel.Name); err != nil {
			return err
		}

		for _, targetID := range declared[rel.Name] {
			targetType := resolveTargetType(targetID, rel.TargetTypes)

			if _, err := client.CreateRelationship(ctx, entityType, entityID, rel.Name, targetType, targetID); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveTargetType implements spec.md §4.8's target-type resolution
// table for a bare target id string.
func resolveTargetType(targetID string, targetTypes []string) string {
	if rest, ok := strings.CutPrefix(targetID, "external://"); ok {
		switch segs := strings.Split(rest, "/"); {
		case len(segs) >= 3:
			return "external_dependency_version"
		case len(segs) == 2:
			return "external_dependency_package"
		}
	}

	if strings.HasPrefix(targetID, "internal://") {
		if containsString(targetTypes, "repository") {
			return "repository"
		}

		return firstOrUnknown(targetTypes)
	}

	return firstOrUnknown(targetTypes)
}

func firstOrUnknown(targetTypes []string) string {
	if len(targetTypes) > 0 {
		return targetTypes[0]
	}

	return "unknown"
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}

	return false
}
