// Package memstore is the in-memory reference implementation of
// [go.kgctl.dev/kg/storage.Client], used by the orchestrator's tests and as
// a toy backend. It also backs [go.kgctl.dev/kg/storage/backing]'s
// consumers, since LoadSchemas performs the real backing-schema
// projection.
package memstore
