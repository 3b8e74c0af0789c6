package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

func TestFindCandidatesPrefersMD5Evidence(t *testing.T) {
	nameOnly := mustRef(t, "name-only", mustContig(t, "chr1", 100, ""))
	md5Match := mustRef(t, "md5-match", mustContig(t, "chr9", 999, md5A))
	cat := mustCatalog(t, nameOnly, md5Match)

	query := mustQuery(t,
		mustContig(t, "chr1", 100, ""),
		mustContig(t, "chr9", 999, md5A),
	)

	positions := findCandidates(cat, query.DerivedSets, 5)
	assert.NotEmpty(t, positions)
	assert.Equal(t, "md5-match", cat.At(positions[0]).ID)
}

func TestFindCandidatesCapsAtTwiceLimit(t *testing.T) {
	var refs []model.KnownReference
	for i := 0; i < 10; i++ {
		refs = append(refs, mustRef(t, name(i), mustContig(t, "chr1", uint64(100+i), "")))
	}
	cat := mustCatalog(t, refs...)

	query := mustQuery(t, mustContig(t, "chr1", 100, ""))
	for i := 1; i < 10; i++ {
		query = mustQuery(t, append(query.Contigs, mustContig(t, "chr1", uint64(100+i), ""))...)
	}

	positions := findCandidates(cat, query.DerivedSets, 2)
	assert.LessOrEqual(t, len(positions), 4)
}
