package validate

import (
	"context"
	"fmt"

	"go.kgctl.dev/kg/depuri"
)

// ExistenceChecker answers whether an internal entity reference resolves to
// a stored entity. It is satisfied by the storage package's client without
// validate importing storage; storage does not import validate either.
type ExistenceChecker interface {
	EntityExists(ctx context.Context, id string) (bool, error)
}

// layer5Reference checks that every well-formed internal:// dependency
// reference resolves to a stored entity. It only runs from the async
// [Pipeline.Validate] path -- [Pipeline.ValidateSync] has no checker and
// skips this layer entirely (spec §4.4: "Layer 5 ... requires I/O and is
// therefore the only layer not available synchronously").
func layer5Reference(ctx context.Context, model *Model, checker ExistenceChecker) []Diagnostic {
	var diags []Diagnostic

	for _, entries := range model.Entity {
		for _, entry := range entries {
			refs := entry.LegacyDependsOn()
			if rel, ok := entry.Relationships()["depends_on"]; ok {
				refs = append(refs, rel...)
			}

			for _, ref := range refs {
				parsed := depuri.Parse(ref)
				if parsed.Kind != depuri.KindInternal || !depuri.IsWellFormedInternal(parsed.Internal) {
					continue
				}

				id := parsed.Internal.EntityID()

				exists, err := checker.EntityExists(ctx, id)
				if err != nil {
					diags = append(diags, Diagnostic{
						Type:    DiagTypeReferenceNotFound,
						Message: fmt.Sprintf("could not resolve reference %q in %q: %v", id, entry.Name, err),
						Field:   "depends_on",
						Entity:  entry.Name,
						Help:    "retry once the storage backend is reachable",
					})

					continue
				}

				if !exists {
					diags = append(diags, Diagnostic{
						Type:    DiagTypeReferenceNotFound,
						Message: fmt.Sprintf("referenced entity %q does not exist", id),
						Field:   "depends_on",
						Entity:  entry.Name,
						Help:    "create the referenced entity first, or fix the reference",
					})
				}
			}
		}
	}

	return diags
}
