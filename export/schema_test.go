package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/export"
	"go.kgctl.dev/kg/schema"
)

func demoCatalog() *schema.Catalog {
	cat := schema.New()
	cat.Schemas["repository"] = &schema.EntitySchema{
		EntityType: "repository",
		RequiredFields: []schema.FieldDefinition{
			{Name: "owners", Type: schema.FieldTypeArray, ItemType: schema.FieldTypeString},
		},
		OptionalFields: []schema.FieldDefinition{
			{Name: "description", Type: schema.FieldTypeString},
		},
		ReadonlyFields: []schema.FieldDefinition{
			{Name: "created_at", Type: schema.FieldTypeDatetime},
		},
	}

	return cat
}

func TestBuildCatalogSchemaShape(t *testing.T) {
	s := export.BuildCatalogSchema(demoCatalog())

	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"namespace", "entity"}, s.Required)

	entity := s.Properties["entity"]
	require.NotNil(t, entity)
	assert.NotNil(t, entity.AdditionalProperties.Not, "entity must be closed to undeclared entity types")

	repoArray := entity.Properties["repository"]
	require.NotNil(t, repoArray)
	assert.Equal(t, "array", repoArray.Type)

	entityDef := repoArray.Items.AdditionalProperties
	require.NotNil(t, entityDef)
	assert.Equal(t, 1, *repoArray.Items.MinProperties)
	assert.Equal(t, 1, *repoArray.Items.MaxProperties)

	_, hasOwners := entityDef.Properties["owners"]
	assert.True(t, hasOwners)
	_, hasCreatedAt := entityDef.Properties["created_at"]
	assert.False(t, hasCreatedAt, "readonly fields must be excluded")
	assert.Contains(t, entityDef.Required, "owners")
	assert.NotContains(t, entityDef.Required, "description")

	require.Contains(t, s.Defs, "externalDependencyURI")
	require.Contains(t, s.Defs, "internalDependencyURI")
}

func TestUpdateEditorConfigCreatesAndMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, export.UpdateEditorConfig(path, "schemas/kg.schema.json", []string{"**/*.kg.yaml"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kg.schema.json")

	require.NoError(t, export.UpdateEditorConfig(path, "schemas/other.schema.json", []string{"**/*.other.yaml"}))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kg.schema.json")
	assert.Contains(t, string(data), "other.schema.json")
}
