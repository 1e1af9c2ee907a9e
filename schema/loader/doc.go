// Package loader reads a schema catalog from a directory tree and builds a
// [go.kgctl.dev/kg/schema.Catalog].
//
// # Directory layout
//
//	<dir>/_base/<base_name>/<semver>.yaml   -- base schemas
//	<dir>/<entity_type>/<semver>.yaml        -- entity schemas
//
// # Load pipeline
//
//  1. Read every base schema under _base/.
//  2. For each entity schema file, if it declares `extends: <base_name>`,
//     deep-merge the base's readonly_metadata and validation_rules into the
//     entity's own (entity values win on key conflict), and inherit
//     deletion_policy, governance, and allow_custom_fields where the entity
//     left them unset.
//  3. Parse field groups into [schema.FieldDefinition] values, relationships
//     into [schema.RelationshipDefinition] values, and assemble the
//     [schema.EntitySchema].
//  4. Run catalog-wide consistency checks (see checkConsistency in
//     consistency.go) across every loaded schema together.
//
// A failure at any step is fatal: [Loader.Load] returns early with a
// [*CatalogError] and no partial catalog. [Loader.Reload] re-runs the same
// pipeline against a directory and returns a fresh catalog without storing
// it anywhere; swapping it in, as a single assignment of the
// go.kgctl.dev/kg/schema.Catalog pointer so no in-flight validation
// pipeline observes a half-built catalog, is the caller's job.
package loader
