package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTSVParsesWithHeaderAndAliases(t *testing.T) {
	data := "name\tlength\tmd5\taliases\n" +
		"chr1\t248956422\t6aef897c3d6ff0c78aff06ac189178dd\tNC_000001.11,1\n" +
		"chr2\t242193529\t\t\n"
	qh, warnings, err := TSV(strings.NewReader(data), TSVColumns{Name: 0, Length: 1, MD5: 2, Aliases: 3, Header: true})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, qh.Contigs, 2)
	assert.Equal(t, "6aef897c3d6ff0c78aff06ac189178dd", qh.Contigs[0].MD5)
	assert.ElementsMatch(t, []string{"NC_000001.11", "1"}, qh.Contigs[0].Aliases)
	assert.Empty(t, qh.Contigs[1].MD5)
}

func TestTSVWithoutHeaderAndNoOptionalColumns(t *testing.T) {
	data := "chr1\t100\nchr2\t200\n"
	qh, warnings, err := TSV(strings.NewReader(data), TSVColumns{Name: 0, Length: 1, MD5: -1, Aliases: -1, Header: false})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, qh.Contigs, 2)
}
