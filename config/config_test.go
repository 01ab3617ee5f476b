package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigYamlValid(t *testing.T) {
	s, err := unmarshalSettings(DefaultConfigYaml)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestUnmarshalRejectsNonPositiveDepth(t *testing.T) {
	_, err := unmarshalSettings([]byte("maxRecursionDepth: 0\n"))
	assert.Error(t, err)
}

func TestUnmarshalAppliesDefaultsForMissingFields(t *testing.T) {
	s, err := unmarshalSettings([]byte("strictEscapes: true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().MaxRecursionDepth, s.MaxRecursionDepth)
	assert.True(t, s.StrictEscapes)
}

func TestConfigPathUnderPerchanceDir(t *testing.T) {
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Contains(t, path, "perchance")
	assert.Contains(t, path, "config.yaml")
}
