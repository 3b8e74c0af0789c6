package catalogio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRefDoc = `{
  "version": 1,
  "created_at": "2024-01-01T00:00:00Z",
  "references": [
    {
      "id": "grch38",
      "display_name": "GRCh38",
      "assembly": "GRCh38",
      "source": "NCBI",
      "contigs": [
        {"name": "chr1", "length": 248956422, "md5": "6aef897c3d6ff0c78aff06ac189178dd", "aliases": ["1"], "role": "assembled-molecule"}
      ]
    },
    {
      "id": "hg19",
      "display_name": "hg19",
      "assembly": "GRCh37",
      "source": "UCSC",
      "contigs": [
        {"name": "chr1", "length": 249250621, "md5": "1b22b98cdeb4a9304cb5d48026a85128", "role": "assembled-molecule"}
      ]
    }
  ]
}`

func TestLoadParsesTwoReferences(t *testing.T) {
	cat, warnings, err := Load(strings.NewReader(twoRefDoc))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, cat.Len())

	ref, ok := cat.Get("grch38")
	require.True(t, ok)
	assert.Equal(t, "GRCh38", ref.DisplayName)
	assert.Contains(t, ref.Contigs[0].Aliases, "1")
}

func TestLoadWarnsButSucceedsOnNewerVersion(t *testing.T) {
	doc := strings.Replace(twoRefDoc, `"version": 1`, `"version": 99`, 1)
	cat, warnings, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "newer than supported version")
	assert.Equal(t, 2, cat.Len())
}

func TestLoadRejectsDuplicateSignature(t *testing.T) {
	doc := strings.Replace(twoRefDoc, "1b22b98cdeb4a9304cb5d48026a85128", "6aef897c3d6ff0c78aff06ac189178dd", 1)
	doc = strings.Replace(doc, `"length": 249250621`, `"length": 248956422`, 1)
	_, _, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, _, err := Load(strings.NewReader(`{"version":1,"created_at":"2024-01-01T00:00:00Z","references":[]}`))
	assert.Error(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cat, _, err := Load(strings.NewReader(twoRefDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	reloaded, warnings, err := Load(&buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, cat.Len(), reloaded.Len())
}
