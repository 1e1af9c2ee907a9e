package validate

import (
	"fmt"

	"go.kgctl.dev/kg/depuri"
)

// criticalStructureTypes are the Layer 2 diagnostic types that force early
// exit once all structure errors for this layer have been collected
// (spec §4.4).
var criticalStructureTypes = map[DiagnosticType]bool{
	DiagTypeMissingRequiredField:     true,
	DiagTypeUnsupportedSchemaVersion: true,
}

// layer2Structure checks top-level shape only: required keys present,
// schema_version supported, namespace well-formed, entity is a mapping.
// It does not look inside the entity map's values -- that is Layer 3's
// job, once it knows it is dealing with a catalog.
func layer2Structure(tree map[string]any) (diags []Diagnostic, critical bool) {
	schemaVersion, hasVersion := tree["schema_version"].(string)

	switch {
	case !hasVersion || schemaVersion == "":
		diags = append(diags, Diagnostic{
			Type:    DiagTypeMissingRequiredField,
			Message: "schema_version is required",
			Field:   "schema_version",
			Help:    "add a schema_version field, e.g. \"1.0.0\"",
		})
	case !schemaVersionPattern.MatchString(schemaVersion) || !SupportedSchemaVersions[schemaVersion]:
		diags = append(diags, Diagnostic{
			Type:    DiagTypeUnsupportedSchemaVersion,
			Message: fmt.Sprintf("unsupported schema_version %q", schemaVersion),
			Field:   "schema_version",
			Help:    "use a supported schema_version, e.g. \"1.0.0\"",
		})
	}

	namespace, hasNamespace := tree["namespace"].(string)

	switch {
	case !hasNamespace || namespace == "":
		diags = append(diags, Diagnostic{
			Type:    DiagTypeMissingRequiredField,
			Message: "namespace is required",
			Field:   "namespace",
			Help:    "add a namespace field, e.g. \"demo\"",
		})
	case !depuri.NamespacePattern().MatchString(namespace):
		diags = append(diags, Diagnostic{
			Type:    DiagTypeInvalidNamespaceFormat,
			Message: fmt.Sprintf("invalid namespace %q", namespace),
			Field:   "namespace",
			Help:    "namespace must match ^[a-z]([a-z0-9_-]*[a-z0-9])?$",
		})
	}

	entityRaw, hasEntity := tree["entity"]

	switch {
	case !hasEntity:
		diags = append(diags, Diagnostic{
			Type:    DiagTypeMissingRequiredField,
			Message: "entity is required",
			Field:   "entity",
			Help:    "add an entity mapping",
		})
	default:
		if _, ok := entityRaw.(map[string]any); !ok {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeInvalidEntityMapping,
				Message: "entity must be a mapping from entity_type to a list",
				Field:   "entity",
				Help:    "entity must be a map, not a list or scalar",
			})
		}
	}

	for _, d := range diags {
		if criticalStructureTypes[d.Type] {
			critical = true

			break
		}
	}

	return diags, critical
}
