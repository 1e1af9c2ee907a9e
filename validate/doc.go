// Package validate builds per-schema validators from a loaded catalog and
// drives the five-layer validation pipeline over a descriptor document:
//
//  1. Syntax       -- YAML parses at all.
//  2. Structure    -- required top-level keys, supported schema_version,
//     namespace format, entity is a mapping.
//  3. Field format -- per-entity field/relationship shape, driven by a
//     [Factory]-built validator.
//  4. Business logic -- dependency URI well-formedness, duplicate entity
//     names, owner-domain warnings.
//  5. Reference existence -- internal:// targets resolve against storage;
//     only runs when a storage handle is supplied.
//
// [Pipeline.Validate] runs all five layers; [Pipeline.ValidateSync] runs
// only 1-4 and never touches storage, per spec §4.4's sync variant and
// testable property 5 (sync and async-with-nil-storage agree).
package validate
