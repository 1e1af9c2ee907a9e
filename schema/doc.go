// Package schema holds the in-memory representation of the knowledge-graph
// schema catalog: field and relationship definitions, entity schemas, and
// the catalog that collects them.
//
// Values in this package are produced by [go.kgctl.dev/kg/schema/loader] and
// are immutable once a [Catalog] is built. A reload produces a brand new
// Catalog rather than mutating an existing one, so callers can safely hold
// a reference across a reload (see the loader's package doc for the swap
// semantics).
package schema
