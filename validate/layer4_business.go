package validate

import (
	"fmt"
	"slices"
	"strings"

	"go.kgctl.dev/kg/depuri"
	"go.kgctl.dev/kg/descriptor"
)

// layer4Business runs cross-field and cross-entity business rules over a
// materialized [Model]: dependency URI well-formedness, duplicate entity
// names within a type, and an owner-domain consistency warning. Unlike
// Layers 1-3, Layer 4 never aborts early -- every entity is checked and
// every finding is collected (spec §4.4).
func layer4Business(model *Model) []Diagnostic {
	var diags []Diagnostic

	for entityType, entries := range model.Entity {
		diags = append(diags, duplicateNameDiagnostics(entityType, entries)...)
		diags = append(diags, ownerDomainDiagnostics(entityType, entries)...)

		for _, entry := range entries {
			diags = append(diags, dependencyReferenceDiagnostics(entry)...)
		}
	}

	return diags
}

// duplicateNameDiagnostics flags repeated entity names within one
// entity_type's list.
func duplicateNameDiagnostics(entityType string, entries []descriptor.Entry) []Diagnostic {
	var diags []Diagnostic

	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		if seen[e.Name] {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeDuplicateEntityName,
				Message: fmt.Sprintf("duplicate entity name %q in %s", e.Name, entityType),
				Field:   entityType,
				Entity:  e.Name,
				Help:    "entity names must be unique within an entity type",
			})

			continue
		}

		seen[e.Name] = true
	}

	return diags
}

// ownerDomainDiagnostics warns when entities of the same type declare
// "owner" email addresses spanning more than one domain. This is a warning,
// not an error: spec §4.4 treats cross-team ownership as worth flagging but
// not rejecting.
func ownerDomainDiagnostics(entityType string, entries []descriptor.Entry) []Diagnostic {
	domains := map[string]bool{}

	for _, e := range entries {
		owner, ok := e.Body["owner"].(string)
		if !ok {
			continue
		}

		at := strings.LastIndex(owner, "@")
		if at < 0 || at == len(owner)-1 {
			continue
		}

		domains[strings.ToLower(owner[at+1:])] = true
	}

	if len(domains) <= 1 {
		return nil
	}

	list := make([]string, 0, len(domains))
	for d := range domains {
		list = append(list, d)
	}

	slices.Sort(list)

	return []Diagnostic{{
		Type:    DiagTypeMultipleOwnerDomains,
		Message: fmt.Sprintf("entity type %q has owners spanning multiple domains: %s", entityType, strings.Join(list, ", ")),
		Field:   entityType,
		Help:    "confirm cross-team ownership is intentional",
	}}
}

// dependencyReferenceDiagnostics checks every string found under the
// entry's `depends_on` key (legacy top-level form or nested under
// relationships.depends_on) for URI well-formedness. Other relationship
// names are left to the relationship processor's generic target-type
// resolution and are not URI-checked here.
func dependencyReferenceDiagnostics(entry descriptor.Entry) []Diagnostic {
	var diags []Diagnostic

	refs := entry.LegacyDependsOn()
	if rel, ok := entry.Relationships()["depends_on"]; ok {
		refs = append(refs, rel...)
	}

	for _, ref := range refs {
		diags = append(diags, checkDependencyReference(entry.Name, ref)...)
	}

	return diags
}

func checkDependencyReference(entityName, ref string) []Diagnostic {
	parsed := depuri.Parse(ref)

	switch parsed.Kind {
	case depuri.KindExternal:
		return checkExternalReference(entityName, parsed.External)
	case depuri.KindInternal:
		return checkInternalReference(entityName, parsed.Internal)
	default:
		return []Diagnostic{{
			Type:    DiagTypeInvalidDependencyReference,
			Message: fmt.Sprintf("%q is not a recognized dependency reference", ref),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    "use external://<ecosystem>/<package>/<version> or internal://<namespace>/<entity-name>",
		}}
	}
}

func checkExternalReference(entityName string, ext depuri.External) []Diagnostic {
	var diags []Diagnostic

	if ext.Package == "" {
		diags = append(diags, Diagnostic{
			Type:    DiagTypeEmptyPackageName,
			Message: fmt.Sprintf("external dependency in %q has an empty package name", entityName),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    "external:// references require a non-empty package segment",
		})
	}

	if ext.Version == "" {
		diags = append(diags, Diagnostic{
			Type:    DiagTypeEmptyVersion,
			Message: fmt.Sprintf("external dependency in %q has an empty version", entityName),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    "external:// references require a non-empty version segment",
		})
	}

	if len(diags) > 0 {
		return diags
	}

	if !slices.Contains(depuri.SupportedEcosystems(), ext.Ecosystem) {
		return []Diagnostic{{
			Type:    DiagTypeUnsupportedEcosystem,
			Message: fmt.Sprintf("ecosystem %q is not supported in %q", ext.Ecosystem, entityName),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    fmt.Sprintf("use one of: %s", strings.Join(depuri.SupportedEcosystems(), ", ")),
		}}
	}

	return nil
}

func checkInternalReference(entityName string, in depuri.Internal) []Diagnostic {
	var diags []Diagnostic

	if !depuri.NamespacePattern().MatchString(in.Namespace) {
		diags = append(diags, Diagnostic{
			Type:    DiagTypeInvalidInternalNamespace,
			Message: fmt.Sprintf("internal dependency in %q has an invalid namespace %q", entityName, in.Namespace),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    "namespace must match ^[a-z]([a-z0-9_-]*[a-z0-9])?$",
		})
	}

	if in.EntityName == "" {
		diags = append(diags, Diagnostic{
			Type:    DiagTypeEmptyEntityName,
			Message: fmt.Sprintf("internal dependency in %q has an empty entity name", entityName),
			Field:   "depends_on",
			Entity:  entityName,
			Help:    "internal:// references require a non-empty entity name segment",
		})
	}

	return diags
}
