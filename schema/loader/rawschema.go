package loader

// rawBaseSchema is the direct unmarshal target for a _base/<name>/<ver>.yaml
// file.
type rawBaseSchema struct {
	SchemaType        string         `yaml:"schema_type"`
	SchemaVersion     string         `yaml:"schema_version"`
	Governance        string         `yaml:"governance"`
	ReadonlyMetadata  map[string]rawField `yaml:"readonly_metadata"`
	ValidationRules   map[string]any `yaml:"validation_rules"`
	DeletionPolicy    string         `yaml:"deletion_policy"`
	AllowCustomFields *bool          `yaml:"allow_custom_fields"`
}

// rawEntitySchema is the direct unmarshal target for an
// <entity_type>/<ver>.yaml file.
type rawEntitySchema struct {
	EntityType        string                      `yaml:"entity_type"`
	SchemaVersion     string                      `yaml:"schema_version"`
	Extends           string                      `yaml:"extends"`
	Description       string                      `yaml:"description"`
	RequiredMetadata  map[string]rawField         `yaml:"required_metadata"`
	OptionalMetadata  map[string]rawField         `yaml:"optional_metadata"`
	ReadonlyMetadata  map[string]rawField         `yaml:"readonly_metadata"`
	Relationships     map[string]rawRelationship  `yaml:"relationships"`
	ValidationRules   map[string]any              `yaml:"validation_rules"`
	DgraphType        string                      `yaml:"dgraph_type"`
	DgraphPredicates  map[string]string           `yaml:"dgraph_predicates"`
	Governance        string                      `yaml:"governance"`
	DeletionPolicy    string                      `yaml:"deletion_policy"`
	AutoCreation      *bool                       `yaml:"auto_creation"`
	AllowCustomFields *bool                       `yaml:"allow_custom_fields"`
}

// rawField is the direct unmarshal target for one field definition entry.
type rawField struct {
	Type            string   `yaml:"type"`
	Validation      string   `yaml:"validation"`
	MinLength       *int     `yaml:"min_length"`
	MaxLength       *int     `yaml:"max_length"`
	MinItems        *int     `yaml:"min_items"`
	MaxItems        *int     `yaml:"max_items"`
	Pattern         string   `yaml:"pattern"`
	AllowedValues   []string `yaml:"allowed_values"`
	Items           string   `yaml:"items"`
	Indexed         bool     `yaml:"indexed"`
	Deprecated      bool     `yaml:"deprecated"`
	DeprecatedSince string   `yaml:"deprecated_since"`
	RemovalVersion  string   `yaml:"removal_version"`
	MigrationNote   string   `yaml:"migration_note"`
}

// rawRelationship is the direct unmarshal target for one relationship
// definition entry.
type rawRelationship struct {
	TargetTypes     []string `yaml:"target_types"`
	Cardinality     string   `yaml:"cardinality"`
	Direction       string   `yaml:"direction"`
	Deprecated      bool     `yaml:"deprecated"`
	DeprecatedSince string   `yaml:"deprecated_since"`
	RemovalVersion  string   `yaml:"removal_version"`
	MigrationNote   string   `yaml:"migration_note"`
}
