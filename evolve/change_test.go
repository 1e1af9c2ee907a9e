package evolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/evolve"
	"go.kgctl.dev/kg/schema"
)

func minLen(n int) *int { return &n }

func baseCatalog() *schema.Catalog {
	cat := schema.New()
	cat.Schemas["repository"] = &schema.EntitySchema{
		EntityType:    "repository",
		SchemaVersion: "1.0.0",
		RequiredFields: []schema.FieldDefinition{
			{Name: "owners", Type: schema.FieldTypeArray, Required: true, MinLength: minLen(1)},
		},
		OptionalFields: []schema.FieldDefinition{
			{Name: "description", Type: schema.FieldTypeString},
		},
		Relationships: []schema.RelationshipDefinition{
			{Name: "depends_on", TargetTypes: []string{"repository", "external_dependency_version"}, Cardinality: schema.CardinalityManyToMany},
		},
	}

	return cat
}

func TestableProperty10IdenticalCatalogsZeroChanges(t *testing.T) {
	oldCat := baseCatalog()
	newCat := baseCatalog()

	changes := evolve.Detect(oldCat, newCat)

	assert.True(t, changes.IsEmpty(), "expected no changes, got %s", cmp.Diff(oldCat, newCat))
	assert.Empty(t, evolve.CheckAdditive(changes))
}

func TestableProperty11AdditiveChangesValidate(t *testing.T) {
	oldCat := baseCatalog()
	newCat := baseCatalog()

	repo := newCat.Schemas["repository"]
	repo.OptionalFields = append(repo.OptionalFields, schema.FieldDefinition{Name: "homepage", Type: schema.FieldTypeString})
	repo.Relationships = append(repo.Relationships, schema.RelationshipDefinition{Name: "maintained_by", TargetTypes: []string{"team"}})
	newCat.Schemas["team"] = &schema.EntitySchema{EntityType: "team", SchemaVersion: "1.0.0"}

	changes := evolve.Detect(oldCat, newCat)

	require.False(t, changes.IsEmpty())
	assert.Empty(t, evolve.CheckAdditive(changes), "purely additive changes must not violate the additive-only rule")
}

func TestableProperty12RemovalsAreRejected(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cat *schema.Catalog)
		wantKind evolve.ViolationKind
	}{
		{
			name: "field removed",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].OptionalFields = nil
			},
			wantKind: evolve.ViolationFieldRemoved,
		},
		{
			name: "relationship removed",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].Relationships = nil
			},
			wantKind: evolve.ViolationRelationshipRemoved,
		},
		{
			name: "entity type removed",
			mutate: func(cat *schema.Catalog) {
				delete(cat.Schemas, "repository")
			},
			wantKind: evolve.ViolationEntityTypeRemoved,
		},
		{
			name: "optional field made required",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].OptionalFields[0].Required = true
			},
			wantKind: evolve.ViolationFieldBecameRequired,
		},
		{
			name: "field type changed",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].RequiredFields[0].Type = schema.FieldTypeString
			},
			wantKind: evolve.ViolationFieldTypeChanged,
		},
		{
			name: "relationship target types shrunk",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].Relationships[0].TargetTypes = []string{"repository"}
			},
			wantKind: evolve.ViolationRelationshipTargetsShrunk,
		},
		{
			name: "new field added as required",
			mutate: func(cat *schema.Catalog) {
				cat.Schemas["repository"].RequiredFields = append(cat.Schemas["repository"].RequiredFields,
					schema.FieldDefinition{Name: "new_required", Type: schema.FieldTypeString, Required: true})
			},
			wantKind: evolve.ViolationRequiredFieldAdded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			oldCat := baseCatalog()
			newCat := baseCatalog()
			tc.mutate(newCat)

			changes := evolve.Detect(oldCat, newCat)
			violations := evolve.CheckAdditive(changes)

			require.NotEmpty(t, violations)

			var found bool

			for _, v := range violations {
				if v.Kind == tc.wantKind {
					found = true
				}
			}

			assert.True(t, found, "expected violation kind %s, got %+v", tc.wantKind, violations)
		})
	}
}
