// Package apply is the orchestrator that turns a validated descriptor into
// storage writes: per-entity upsert, relationship replacement, and
// external-dependency entity expansion (spec.md §4.7-§4.9).
package apply
