package validate

import "errors"

// ErrUnknownEntityType is returned by [Factory.ForEntity] when the catalog
// has no schema for the requested entity type.
var ErrUnknownEntityType = errors.New("validate: unknown entity type")

// SupportedSchemaVersions is the closed set of descriptor schema_version
// values currently accepted (spec §3: "currently a closed set").
var SupportedSchemaVersions = map[string]bool{
	"1.0.0": true,
}
