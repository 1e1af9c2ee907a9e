package backing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/storage/backing"
)

func TestableProperty13SharedFieldNameProjectsOnce(t *testing.T) {
	cat := schema.New()
	cat.Schemas["repository"] = &schema.EntitySchema{
		EntityType: "repository",
		RequiredFields: []schema.FieldDefinition{
			{Name: "owners", Type: schema.FieldTypeArray},
		},
		OptionalFields: []schema.FieldDefinition{
			{Name: "name", Type: schema.FieldTypeString},
		},
	}
	cat.Schemas["service"] = &schema.EntitySchema{
		EntityType: "service",
		RequiredFields: []schema.FieldDefinition{
			{Name: "name", Type: schema.FieldTypeString},
			{Name: "replicas", Type: schema.FieldTypeInteger},
		},
	}

	proj := backing.Project(cat)

	require.True(t, proj.EntityIDIndexed)
	require.True(t, proj.EntityTypeIndexed)

	var nameCount int

	for _, p := range proj.Predicates {
		if p.Name == "name" {
			nameCount++
		}
	}

	assert.Equal(t, 1, nameCount, "shared field name must project exactly one predicate declaration")
	assert.Len(t, proj.Types, 2)

	byType := map[string]backing.TypeDeclaration{}
	for _, td := range proj.Types {
		byType[td.EntityType] = td
	}

	assert.ElementsMatch(t, []string{"owners", "name"}, byType["repository"].Fields)
	assert.ElementsMatch(t, []string{"name", "replicas"}, byType["service"].Fields)
}

func TestPredicateTypeDerivation(t *testing.T) {
	cat := schema.New()
	cat.Schemas["widget"] = &schema.EntitySchema{
		EntityType: "widget",
		RequiredFields: []schema.FieldDefinition{
			{Name: "label", Type: schema.FieldTypeString},
			{Name: "count", Type: schema.FieldTypeInteger},
			{Name: "enabled", Type: schema.FieldTypeBoolean},
			{Name: "tags", Type: schema.FieldTypeArray},
			{Name: "meta", Type: schema.FieldTypeObject},
			{Name: "created", Type: schema.FieldTypeDatetime},
		},
	}

	proj := backing.Project(cat)

	want := map[string]backing.PredicateType{
		"label":   backing.PredicateString,
		"count":   backing.PredicateInt,
		"enabled": backing.PredicateBool,
		"tags":    backing.PredicateStringList,
		"meta":    backing.PredicateString,
		"created": backing.PredicateDatetime,
	}

	got := map[string]backing.PredicateType{}
	indexed := map[string]bool{}

	for _, p := range proj.Predicates {
		got[p.Name] = p.Type
		indexed[p.Name] = p.ExactIndex
	}

	assert.Equal(t, want, got)
	assert.True(t, indexed["label"])
	assert.True(t, indexed["count"])
	assert.True(t, indexed["enabled"])
	assert.False(t, indexed["tags"])
	assert.False(t, indexed["created"])
}
