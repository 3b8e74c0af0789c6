package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFAIParsesBasicIndex(t *testing.T) {
	data := "chr1\t248956422\t6\t70\t71\n" +
		"chr2\t242193529\t248956576\t70\t71\n"
	qh, warnings, err := FAI(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, qh.Contigs, 2)
	assert.Equal(t, "chr1", qh.Contigs[0].Name)
	assert.Equal(t, uint64(248956422), qh.Contigs[0].Length)
}

func TestFAISkipsMalformedLines(t *testing.T) {
	data := "chr1\t100\t0\t70\t71\n" +
		"garbage-line\n" +
		"chr2\t200\t200\t70\t71\n"
	qh, warnings, err := FAI(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Len(t, qh.Contigs, 2)
}
