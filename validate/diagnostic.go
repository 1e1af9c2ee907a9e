package validate

import (
	"regexp"

	"go.kgctl.dev/kg/descriptor"
)

// Model is the validated descriptor produced once Layer 3 finds zero
// errors. It is an alias of [descriptor.Descriptor] so downstream packages
// (apply, export) can consume it without importing validate.
type Model = descriptor.Descriptor

// schemaVersionPattern matches a dotted three-part semantic version, e.g.
// "1.0.0". Whether it is in SupportedSchemaVersions is a separate check.
var schemaVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// DiagnosticType tags every Layer 1-5 finding. Values are stable strings so
// they can be compared across process boundaries (e.g. in CLI JSON output).
type DiagnosticType string

// Diagnostic type tags, grouped by the layer that produces them.
const (
	// Layer 1 -- syntax.
	DiagTypeYAMLSyntaxError   DiagnosticType = "yaml_syntax_error"
	DiagTypeEmptyYAMLContent  DiagnosticType = "empty_yaml_content"

	// Layer 2 -- structure.
	DiagTypeMissingRequiredField     DiagnosticType = "missing_required_field"
	DiagTypeUnsupportedSchemaVersion DiagnosticType = "unsupported_schema_version"
	DiagTypeInvalidNamespaceFormat   DiagnosticType = "invalid_namespace_format"
	DiagTypeInvalidEntityMapping     DiagnosticType = "invalid_entity_mapping"

	// Layer 3 -- field format.
	DiagTypeUnknownEntityType    DiagnosticType = "unknown_entity_type"
	DiagTypeInvalidFieldType     DiagnosticType = "invalid_field_type"
	DiagTypeExtraForbidden       DiagnosticType = "extra_forbidden"
	DiagTypeEmptyRequiredArray   DiagnosticType = "empty_required_array"
	DiagTypeInvalidEntityShape   DiagnosticType = "invalid_entity_shape"

	// Layer 4 -- business logic.
	DiagTypeInvalidDependencyReference DiagnosticType = "invalid_dependency_reference"
	DiagTypeInvalidExternalDependency  DiagnosticType = "invalid_external_dependency"
	DiagTypeEmptyPackageName           DiagnosticType = "empty_package_name"
	DiagTypeEmptyVersion               DiagnosticType = "empty_version"
	DiagTypeUnsupportedEcosystem       DiagnosticType = "unsupported_ecosystem"
	DiagTypeInvalidInternalDependency  DiagnosticType = "invalid_internal_dependency"
	DiagTypeInvalidInternalNamespace   DiagnosticType = "invalid_internal_namespace"
	DiagTypeEmptyEntityName            DiagnosticType = "empty_entity_name"
	DiagTypeDuplicateEntityName        DiagnosticType = "duplicate_entity_name"
	DiagTypeMultipleOwnerDomains       DiagnosticType = "multiple_owner_domains" // warning only

	// Layer 5 -- reference existence.
	DiagTypeReferenceNotFound DiagnosticType = "reference_not_found"
)

// Diagnostic is one finding from any pipeline layer.
type Diagnostic struct {
	Type    DiagnosticType
	Message string
	Field   string
	Entity  string
	Line    int
	Column  int
	Help    string
}

// Result is the outcome of running the pipeline (or a prefix of it) over a
// descriptor.
type Result struct {
	IsValid  bool
	Errors   []Diagnostic
	Warnings []Diagnostic
	Model    *Model // nil unless Layer 3 produced a validated model
}

// Strict promotes every warning to an error, matching spec §4.4's strict
// mode and testable property 6. The receiver is left unmodified; a new
// Result is returned.
func (r Result) Strict() Result {
	out := Result{
		IsValid: r.IsValid && len(r.Warnings) == 0,
		Errors:  append([]Diagnostic(nil), r.Errors...),
		Model:   r.Model,
	}

	out.Errors = append(out.Errors, r.Warnings...)
	if len(r.Warnings) > 0 {
		out.IsValid = false
	}

	return out
}
