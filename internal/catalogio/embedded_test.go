package catalogio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultHasThreeBuilds(t *testing.T) {
	cat, warnings, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 3, cat.Len())

	for _, id := range []string{"grch38-ncbi", "grch37-hg19", "t2t-chm13v2"} {
		_, ok := cat.Get(id)
		assert.True(t, ok, "expected catalog to contain %s", id)
	}
}
