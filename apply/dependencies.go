package apply

import (
	"context"

	"go.kgctl.dev/kg/depuri"
	"go.kgctl.dev/kg/storage"
)

const dependencySourceTag = "dependency_processing"

// processDependencies implements spec.md §4.9: every external:// target in
// dependsOn gets its package and version expanded into their own entities
// plus a has_version edge between them. Internal-URI and malformed targets
// are skipped here; they are the relationship processor's concern.
func processDependencies(ctx context.Context, client storage.Client, dependsOn []string) error {
	for _, target := range dependsOn {
		ref := depuri.Parse(target)
		if ref.Kind != depuri.KindExternal {
			continue
		}

		ext := ref.External

		sys := storage.SystemMetadata{AutoCreated: true, Source: dependencySourceTag}

		packageID := ext.PackageID()
		if _, err := client.StoreEntity(ctx, "external_dependency_package", packageID, map[string]any{
			"ecosystem":    ext.Ecosystem,
			"package_name": ext.Package,
		}, sys); err != nil {
			return err
		}

		versionID := ext.URI()
		if _, err := client.StoreEntity(ctx, "external_dependency_version", versionID, map[string]any{
			"ecosystem":    ext.Ecosystem,
			"package_name": ext.Package,
			"version":      ext.Version,
		}, sys); err != nil {
			return err
		}

		if _, err := client.CreateRelationship(ctx, "external_dependency_package", packageID, "has_version", "external_dependency_version", versionID); err != nil {
			return err
		}
	}

	return nil
}
