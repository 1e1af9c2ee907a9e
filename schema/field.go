package schema

// FieldType is the semantic type of a field's value.
type FieldType string

// Supported field types.
const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeArray    FieldType = "array"
	FieldTypeObject   FieldType = "object"
)

// Validation is an additional semantic check layered on top of a field's
// base type.
type Validation string

// Supported validation tags.
const (
	ValidationNone  Validation = ""
	ValidationEmail Validation = "email"
	ValidationURL   Validation = "url"
	ValidationEnum  Validation = "enum"
)

// Deprecation carries schema-evolution metadata for a field or relationship
// that is on its way out but not yet removed. A deprecated-but-present
// member is treated as an allowed additive change by the evolution
// validator; only outright removal is forbidden.
type Deprecation struct {
	Deprecated      bool   `yaml:"deprecated,omitempty"`
	DeprecatedSince string `yaml:"deprecated_since,omitempty"`
	RemovalVersion  string `yaml:"removal_version,omitempty"`
	MigrationNote   string `yaml:"migration_note,omitempty"`
}

// FieldDefinition describes one field of an [EntitySchema]. Instances are
// built once at catalog load time and never mutated afterward.
type FieldDefinition struct {
	Name       string
	Type       FieldType
	Required   bool
	Validation Validation

	// Constraints. A nil pointer means "unset", so a set value of 0 (e.g.
	// MinLength of 0) stays distinct from no constraint; an empty Pattern,
	// AllowedValues or ItemType means "unset".
	MinLength     *int
	MaxLength     *int
	MinItems      *int
	MaxItems      *int
	Pattern       string
	AllowedValues []string
	ItemType      FieldType

	Indexed bool

	Deprecation
}

// Clone returns a deep-enough copy for safe reuse across schema versions
// during projection/rollback; slices and pointers are copied rather than
// shared.
func (f FieldDefinition) Clone() FieldDefinition {
	out := f

	if f.MinLength != nil {
		v := *f.MinLength
		out.MinLength = &v
	}

	if f.MaxLength != nil {
		v := *f.MaxLength
		out.MaxLength = &v
	}

	if f.MinItems != nil {
		v := *f.MinItems
		out.MinItems = &v
	}

	if f.MaxItems != nil {
		v := *f.MaxItems
		out.MaxItems = &v
	}

	if f.AllowedValues != nil {
		out.AllowedValues = append([]string(nil), f.AllowedValues...)
	}

	return out
}
