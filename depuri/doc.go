// Package depuri parses and builds the two dependency reference URI forms a
// descriptor may use:
//
//	external://<ecosystem>/<package>/<version>
//	internal://<namespace>/<entity-name>
//
// Parsing is pure and side-effect free; it never touches storage. Reference
// existence (whether an internal:// target actually resolves to a known
// entity) is a Layer 5 concern handled by
// [go.kgctl.dev/kg/validate], not by this package.
package depuri
