// Package backing derives the backing graph schema a storage backend must
// host from a runtime [schema.Catalog]: one predicate declaration per
// unique field name across all entity types (first-seen wins), entity_id
// and entity_type indices, and one type declaration per entity_type
// listing its fields (spec.md §4.10).
package backing
