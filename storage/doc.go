// Package storage defines the backend-agnostic graph storage contract the
// apply orchestrator depends on (spec.md §4.10), plus the error taxonomy
// and retry/configuration types shared by every backend implementation.
// [go.kgctl.dev/kg/storage/memstore] is the in-memory reference
// implementation used by tests and the toy backend.
package storage
