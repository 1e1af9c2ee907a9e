package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kgctl.dev/kg/descriptor"
)

func TestExtractBasic(t *testing.T) {
	d := &descriptor.Descriptor{
		Namespace: "demo",
		Entity: map[string][]descriptor.Entry{
			"repository": {
				{
					Name: "r1",
					Body: map[string]any{
						"owners": []any{"a@x.com"},
						"relationships": map[string]any{
							"depends_on": []any{"external://pypi/requests/2.31.0"},
						},
					},
				},
			},
		},
	}

	records := descriptor.Extract(d, []string{"repository"})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "repository", r.EntityType)
	assert.Equal(t, "demo/r1", r.EntityID)
	assert.Equal(t, []any{"a@x.com"}, r.Metadata["owners"])
	_, hasRelKey := r.Metadata["relationships"]
	assert.False(t, hasRelKey)
	assert.Equal(t, []string{"external://pypi/requests/2.31.0"}, r.Relationships["depends_on"])
	assert.Equal(t, "demo", r.SystemMetadata["namespace"])
	assert.Equal(t, "r1", r.SystemMetadata["source_name"])
}

func TestExtractLegacyDependsOnStaysInMetadata(t *testing.T) {
	d := &descriptor.Descriptor{
		Namespace: "demo",
		Entity: map[string][]descriptor.Entry{
			"repository": {
				{
					Name: "r1",
					Body: map[string]any{
						"depends_on": []any{"external://pypi/requests/2.31.0"},
					},
				},
			},
		},
	}

	records := descriptor.Extract(d, []string{"repository"})
	require.Len(t, records, 1)

	assert.Equal(t, []any{"external://pypi/requests/2.31.0"}, records[0].Metadata["depends_on"])
	assert.Empty(t, records[0].Relationships)
}
