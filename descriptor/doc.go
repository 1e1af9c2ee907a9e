// Package descriptor holds the parsed shape of a user-authored knowledge
// graph descriptor document (see spec §3 and §6) and the extractor that
// projects a validated descriptor into the flat entity records the apply
// engine consumes.
//
// [Descriptor] is built by [go.kgctl.dev/kg/validate]'s Layer 3 once every
// entity body has passed field-format validation; this package does not
// parse YAML itself, it only shapes and extracts already-decoded data.
package descriptor
