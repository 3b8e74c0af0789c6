package matching

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

func mustContig(t *testing.T, name string, length uint64, md5 string, aliases ...string) model.Contig {
	t.Helper()
	c, err := model.NewContig(name, length, md5, aliases, model.RoleUnknown)
	require.NoError(t, err)
	return c
}

func mustQuery(t *testing.T, contigs ...model.Contig) model.QueryHeader {
	t.Helper()
	h, err := model.NewQueryHeader(contigs)
	require.NoError(t, err)
	return h
}

func mustRef(t *testing.T, id string, contigs ...model.Contig) model.KnownReference {
	t.Helper()
	r, err := model.NewKnownReference(id, id, "", "", "https://example.org/"+id+".fa", "", contigs, nil)
	require.NoError(t, err)
	return r
}

func mustCatalog(t *testing.T, refs ...model.KnownReference) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, r := range refs {
		require.NoError(t, c.Add(r))
	}
	return c
}

const (
	md5A = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	md5B = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	md5C = "cccccccccccccccccccccccccccccccc"
	md5D = "dddddddddddddddddddddddddddddddd"
)
