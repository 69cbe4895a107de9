package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

type layerEntry struct {
	Layer string `validate:"required,layer"`
}

type resourceEntry struct {
	Type     string
	Resource string `validate:"resource_kind"`
}

type catalogEntry struct {
	Path string `validate:"catalog_file"`
}

func TestValidator_LayerRule(t *testing.T) {
	v := config.NewValidator()

	assert.NoError(t, v.Validate(layerEntry{Layer: "core"}))
	assert.NoError(t, v.Validate(layerEntry{Layer: "ARMOR"}))

	err := v.Validate(layerEntry{Layer: "hangar"})
	var failure *config.ValidationFailure
	require.True(t, errors.As(err, &failure))
	require.Len(t, failure.Problems, 1)
	assert.Contains(t, failure.Problems[0], "field 'Layer' failed validation: layer")
	assert.Contains(t, failure.Problems[0], "hangar")
}

func TestValidator_ResourceKindRule(t *testing.T) {
	v := config.NewValidator()

	tests := []struct {
		name  string
		entry resourceEntry
		ok    bool
	}{
		{"storage with kind", resourceEntry{Type: "ResourceStorage", Resource: "energy"}, true},
		{"hyphenated kind", resourceEntry{Type: "ResourceConsumption", Resource: "fuel-cells"}, true},
		{"storage without kind", resourceEntry{Type: "ResourceStorage"}, false},
		{"generation without kind", resourceEntry{Type: "ResourceGeneration"}, false},
		{"uppercase kind", resourceEntry{Type: "ResourceStorage", Resource: "Energy"}, false},
		{"weapon needs no kind", resourceEntry{Type: "BeamWeapon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.entry)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_CatalogFileRule(t *testing.T) {
	v := config.NewValidator()

	assert.NoError(t, v.Validate(catalogEntry{Path: "ships/catalog.toml"}))
	assert.NoError(t, v.Validate(catalogEntry{Path: "catalog.YML"}))
	assert.Error(t, v.Validate(catalogEntry{Path: "catalog.json"}))
}

func TestValidationFailure_SummaryJoinsProblems(t *testing.T) {
	failure := &config.ValidationFailure{Problems: []string{"first", "second"}}

	assert.Equal(t, "first; second", failure.Summary())
	assert.Contains(t, failure.Error(), "validation failed:")
}
