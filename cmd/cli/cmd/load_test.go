package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInitiativesJSON(t *testing.T) {
	initiatives, err := loadInitiatives(filepath.Join("testdata", "initiatives.json"))
	require.NoError(t, err)
	require.Len(t, initiatives, 3)

	assert.Equal(t, "alpha", initiatives[0].ID)
	assert.True(t, initiatives[0].Cost.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1.0, initiatives[0].Confidence)
	assert.True(t, initiatives[2].Worst.Equal(decimal.NewFromInt(30)))
}

func TestLoadInitiativesYAML(t *testing.T) {
	fromYAML, err := loadInitiatives(filepath.Join("testdata", "initiatives.yaml"))
	require.NoError(t, err)
	fromJSON, err := loadInitiatives(filepath.Join("testdata", "initiatives.json"))
	require.NoError(t, err)

	require.Len(t, fromYAML, len(fromJSON))
	for i := range fromJSON {
		assert.Equal(t, fromJSON[i].ID, fromYAML[i].ID)
		assert.True(t, fromJSON[i].Cost.Equal(fromYAML[i].Cost))
		assert.Equal(t, fromJSON[i].Confidence, fromYAML[i].Confidence)
	}
}

func TestLoadInitiativesRejectsDuplicateIDs(t *testing.T) {
	path := writeTemp(t, "dup.json", `[
  {"id": "a", "cost": 1, "confidence": 0.5, "r_best": 3, "r_median": 2, "r_worst": 1},
  {"id": "a", "cost": 1, "confidence": 0.5, "r_best": 3, "r_median": 2, "r_worst": 1}
]`)
	_, err := loadInitiatives(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadInitiativesRejectsNegativeCost(t *testing.T) {
	path := writeTemp(t, "neg.json", `[
  {"id": "a", "cost": -1, "confidence": 0.5, "r_best": 3, "r_median": 2, "r_worst": 1}
]`)
	_, err := loadInitiatives(path)
	require.Error(t, err)
}

func TestLoadInitiativesRejectsMalformedFile(t *testing.T) {
	path := writeTemp(t, "bad.json", `{not json`)
	_, err := loadInitiatives(path)
	require.Error(t, err)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
