package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samHeader = "@HD\tVN:1.6\tSO:coordinate\n" +
	"@SQ\tSN:chr1\tLN:248956422\tM5:6aef897c3d6ff0c78aff06ac189178dd\tAN:1,NC_000001.11\n" +
	"@SQ\tSN:chr2\tLN:242193529\tM5:f98db672eb0993dcfdabafe2a882905c\n" +
	"@PG\tID:bwa\tPN:bwa\n"

func TestSAMHeaderParsesSQLines(t *testing.T) {
	qh, warnings, err := SAMHeader(strings.NewReader(samHeader))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, qh.Contigs, 2)
	assert.Equal(t, "chr1", qh.Contigs[0].Name)
	assert.Equal(t, uint64(248956422), qh.Contigs[0].Length)
	assert.Equal(t, "6aef897c3d6ff0c78aff06ac189178dd", qh.Contigs[0].MD5)
	assert.Contains(t, qh.Contigs[0].Aliases, "NC_000001.11")
	assert.Equal(t, "chr2", qh.Contigs[1].Name)
}

func TestSAMHeaderStopsAtFirstAlignmentRecord(t *testing.T) {
	body := samHeader + "read1\t0\tchr1\t1\t60\t10M\t*\t0\t0\tACGTACGTAC\tIIIIIIIIII\n"
	qh, _, err := SAMHeader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, qh.Contigs, 2)
}

func TestSAMHeaderWarnsOnMissingLength(t *testing.T) {
	bad := "@SQ\tSN:chr1\n"
	_, warnings, err := SAMHeader(strings.NewReader(bad))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "LN")
}

func TestDictDelegatesToSAMHeader(t *testing.T) {
	qh, _, err := Dict(strings.NewReader(samHeader))
	require.NoError(t, err)
	assert.Len(t, qh.Contigs, 2)
}
