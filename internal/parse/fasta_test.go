package parse

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFASTAComputesMD5FromSequence(t *testing.T) {
	data := ">chr1 test\nACGTacgt\nACGT\n>chr2\nTTTT\n"
	qh, warnings, err := FASTA(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, qh.Contigs, 2)

	want := md5.Sum([]byte("ACGTACGTACGT"))
	assert.Equal(t, hex.EncodeToString(want[:]), qh.Contigs[0].MD5)
	assert.Equal(t, uint64(12), qh.Contigs[0].Length)
	assert.Equal(t, "chr1", qh.Contigs[0].Name)
}

func TestFASTASkipsEmptyRecords(t *testing.T) {
	data := ">empty\n>chr1\nACGT\n"
	qh, warnings, err := FASTA(strings.NewReader(data))
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Len(t, qh.Contigs, 1)
}
