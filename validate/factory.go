package validate

import (
	"fmt"
	"sync"

	"go.kgctl.dev/kg/schema"
)

// cacheKey identifies one cached [EntityValidator].
type cacheKey struct {
	entityType    string
	schemaVersion string
}

// Factory produces per-schema validators from a loaded catalog. Validators
// are cached per (entity_type, schema_version); [Factory.ClearCache] must
// be called explicitly to drop the cache, e.g. after a catalog reload.
//
// A Factory is safe for concurrent use.
type Factory struct {
	cat   *schema.Catalog
	mu    sync.Mutex
	cache map[cacheKey]*EntityValidator
}

// NewFactory builds a Factory over cat.
func NewFactory(cat *schema.Catalog) *Factory {
	return &Factory{
		cat:   cat,
		cache: make(map[cacheKey]*EntityValidator),
	}
}

// ClearCache drops every cached validator. Callers should invoke this after
// swapping in a reloaded catalog.
func (f *Factory) ClearCache() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cache = make(map[cacheKey]*EntityValidator)
}

// ForEntity returns the (possibly cached) validator for entityType.
func (f *Factory) ForEntity(entityType string) (*EntityValidator, error) {
	es, ok := f.cat.Get(entityType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	key := cacheKey{entityType: entityType, schemaVersion: es.SchemaVersion}

	f.mu.Lock()
	defer f.mu.Unlock()

	if v, ok := f.cache[key]; ok {
		return v, nil
	}

	v := buildEntityValidator(es)
	f.cache[key] = v

	return v, nil
}

// EntityValidator validates one entity body against its [schema.EntitySchema].
// Instances are immutable once built and safe for concurrent use.
type EntityValidator struct {
	schema *schema.EntitySchema
	checks map[string][]fieldCheck // field name -> check program
}

// fieldCheck is one constraint in a field's check program. It returns a
// non-nil Diagnostic when the constraint is violated.
type fieldCheck func(fieldName string, value any) *Diagnostic

// Validate checks an entity body (already-decoded generic value tree) and
// returns every violation found. entityName is used only to enrich
// diagnostic context.
func (v *EntityValidator) Validate(entityName string, body map[string]any) []Diagnostic {
	var diags []Diagnostic

	seen := make(map[string]bool, len(body))

	for name, value := range body {
		if name == "relationships" || name == "depends_on" {
			seen[name] = true

			continue
		}

		seen[name] = true

		checks, known := v.checks[name]
		if !known {
			if v.schema.AllowCustomFields {
				continue
			}

			diags = append(diags, Diagnostic{
				Type:    DiagTypeExtraForbidden,
				Message: fmt.Sprintf("unexpected field %q", name),
				Field:   name,
				Entity:  entityName,
				Help:    fmt.Sprintf("remove %q or declare it in the %q schema", name, v.schema.EntityType),
			})

			continue
		}

		for _, check := range checks {
			if d := check(name, value); d != nil {
				d.Entity = entityName
				diags = append(diags, *d)
			}
		}
	}

	for _, f := range v.schema.RequiredFields {
		if !seen[f.Name] {
			diags = append(diags, Diagnostic{
				Type:    DiagTypeMissingRequiredField,
				Message: fmt.Sprintf("missing required field %q", f.Name),
				Field:   f.Name,
				Entity:  entityName,
				Help:    fmt.Sprintf("add %q to the entity body", f.Name),
			})
		}
	}

	return diags
}

// buildEntityValidator compiles the check program for every declared field
// of es, once, at validator-construction time.
func buildEntityValidator(es *schema.EntitySchema) *EntityValidator {
	v := &EntityValidator{
		schema: es,
		checks: make(map[string][]fieldCheck),
	}

	for _, f := range es.AllFields() {
		v.checks[f.Name] = buildFieldChecks(f)
	}

	return v
}

// buildFieldChecks assembles the ordered constraint list for one field.
// Type checking always runs first since later checks assume the value is
// shaped correctly.
func buildFieldChecks(f schema.FieldDefinition) []fieldCheck {
	checks := []fieldCheck{typeCheck(f)}

	switch f.Validation {
	case schema.ValidationEmail:
		checks = append(checks, emailCheck())
	case schema.ValidationURL:
		checks = append(checks, urlCheck())
	case schema.ValidationEnum:
		checks = append(checks, enumCheck(f.AllowedValues))
	}

	if f.Type == schema.FieldTypeString {
		checks = append(checks, stringLengthCheck(f.MinLength, f.MaxLength))

		if f.Pattern != "" {
			checks = append(checks, patternCheck(f.Pattern))
		}
	}

	if f.Type == schema.FieldTypeArray {
		checks = append(checks, arrayChecks(f)...)
	}

	return checks
}
