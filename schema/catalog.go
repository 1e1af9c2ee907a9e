package schema

import "time"

// Catalog is the full set of loaded entity schemas, keyed by entity type.
// A Catalog is immutable after [go.kgctl.dev/kg/schema/loader] returns it; a
// reload produces a fresh Catalog that replaces the old one with a single
// assignment (see the loader package doc for the concurrency contract).
type Catalog struct {
	Schemas       map[string]*EntitySchema
	LoadedAt      time.Time
	BaseDerived   map[string]bool // entity_type -> true if it used `extends`
}

// New returns an empty Catalog ready to be populated by the loader.
func New() *Catalog {
	return &Catalog{
		Schemas:     make(map[string]*EntitySchema),
		BaseDerived: make(map[string]bool),
	}
}

// EntityTypes returns the catalog's entity types. Order is unspecified.
func (c *Catalog) EntityTypes() []string {
	types := make([]string, 0, len(c.Schemas))
	for t := range c.Schemas {
		types = append(types, t)
	}

	return types
}

// Has reports whether entityType is defined in the catalog.
func (c *Catalog) Has(entityType string) bool {
	_, ok := c.Schemas[entityType]

	return ok
}

// Get returns the schema for entityType, if present.
func (c *Catalog) Get(entityType string) (*EntitySchema, bool) {
	s, ok := c.Schemas[entityType]

	return s, ok
}

// StandaloneTypes returns entity types that did not use `extends`.
func (c *Catalog) StandaloneTypes() []string {
	var out []string

	for t := range c.Schemas {
		if !c.BaseDerived[t] {
			out = append(out, t)
		}
	}

	return out
}
