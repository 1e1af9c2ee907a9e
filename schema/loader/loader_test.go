package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/schema/loader"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadRepositorySchema(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "_base", "governed", "1.0.0.yaml"), `
schema_type: governed
schema_version: "1.0.0"
governance: platform-team
deletion_policy: manual
readonly_metadata:
  created_at:
    type: datetime
`)

	writeFile(t, filepath.Join(dir, "repository", "1.0.0.yaml"), `
entity_type: repository
schema_version: "1.0.0"
extends: governed
required_metadata:
  owners:
    type: array
    items: string
    min_items: 1
  git_repo_url:
    type: string
    validation: url
optional_metadata:
  description:
    type: string
relationships:
  depends_on:
    target_types: [external_dependency_version, repository]
    cardinality: many_to_many
    direction: outbound
dgraph_type: Repository
`)

	writeFile(t, filepath.Join(dir, "external_dependency_version", "1.0.0.yaml"), `
entity_type: external_dependency_version
schema_version: "1.0.0"
required_metadata:
  ecosystem:
    type: string
  version:
    type: string
dgraph_type: ExternalDependencyVersion
`)

	ld := loader.New()

	cat, err := ld.Load(dir)
	require.NoError(t, err)

	repo, ok := cat.Get("repository")
	require.True(t, ok)
	assert.Equal(t, "Repository", repo.BackingType)
	assert.True(t, cat.BaseDerived["repository"])
	assert.Equal(t, "manual", string(repo.DeletionPolicy))
	assert.Equal(t, "platform-team", string(repo.Governance))

	_, hasCreatedAt := repo.Field("created_at")
	assert.True(t, hasCreatedAt, "inherited readonly field should be present")

	rel, ok := repo.Relationship("depends_on")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"external_dependency_version", "repository"}, rel.TargetTypes)
}

func TestLoadRejectsUnknownRelationshipTarget(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "repository", "1.0.0.yaml"), `
entity_type: repository
schema_version: "1.0.0"
required_metadata:
  owners:
    type: array
relationships:
  depends_on:
    target_types: [nonexistent_type]
    cardinality: many_to_many
    direction: outbound
dgraph_type: Repository
`)

	_, err := loader.New().Load(dir)
	require.Error(t, err)

	var catErr *loader.CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.ErrorIs(t, catErr, loader.ErrValidation)
	assert.Contains(t, catErr.Messages()[0], "unknown entity type")
}

// TestLoadRejectsFieldRelationshipNameConflict is scenario S6: a schema
// with both a field and a relationship named has_version must fail catalog
// load, naming the entity and the conflicting name.
func TestLoadRejectsFieldRelationshipNameConflict(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "external_dependency_package", "1.0.0.yaml"), `
entity_type: external_dependency_package
schema_version: "1.0.0"
required_metadata:
  has_version:
    type: string
relationships:
  has_version:
    target_types: [external_dependency_package]
    cardinality: one_to_many
    direction: outbound
dgraph_type: ExternalDependencyPackage
`)

	_, err := loader.New().Load(dir)
	require.Error(t, err)

	var catErr *loader.CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.ErrorIs(t, catErr, loader.ErrValidation)
	assert.Contains(t, catErr.Messages()[0], "external_dependency_package")
	assert.Contains(t, catErr.Messages()[0], "has_version")
}

func TestLoadMissingExtendsTarget(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "repository", "1.0.0.yaml"), `
entity_type: repository
schema_version: "1.0.0"
extends: nonexistent_base
required_metadata:
  owners:
    type: array
dgraph_type: Repository
`)

	_, err := loader.New().Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrInheritanceTarget)
}

func TestReloadLeavesOldCatalogOnFailure(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "repository", "1.0.0.yaml"), `
entity_type: repository
schema_version: "1.0.0"
required_metadata:
  owners:
    type: array
dgraph_type: Repository
`)

	ld := loader.New()

	good, err := ld.Load(dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "repository", "2.0.0.yaml"), `
entity_type: repository
schema_version: "2.0.0"
dgraph_type: ""
`)

	_, err = ld.Reload(dir)
	require.Error(t, err)

	// The caller's reference to the previously-loaded catalog is untouched.
	_, ok := good.Get("repository")
	assert.True(t, ok)
}
