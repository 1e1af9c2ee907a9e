// Package evolve detects differences between two loaded catalogs, enforces
// the additive-only evolution rule, derives the required schema_version
// increment, and supports rolling an entity body back to an earlier schema
// version by projection.
package evolve
