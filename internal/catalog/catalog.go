// Package catalog owns the read-only, in-memory store of known
// reference genomes and the inverted indexes used to prune candidates
// before scoring.
package catalog

import (
	"fmt"
	"sort"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// Catalog is an ordered collection of KnownReferences plus four
// inverted indexes. It is built once at load time and never mutated
// afterwards; concurrent readers need no synchronization.
type Catalog struct {
	refs []model.KnownReference

	byID         map[string]int
	byMD5        map[string][]int
	byNameLength map[model.NameLengthKey][]int
	bySignature  map[string]int
}

// New builds an empty Catalog. Use Add to populate it, typically from
// package catalogio's loader.
func New() *Catalog {
	return &Catalog{
		byID:         make(map[string]int),
		byMD5:        make(map[string][]int),
		byNameLength: make(map[model.NameLengthKey][]int),
		bySignature:  make(map[string]int),
	}
}

// Add appends ref to the catalog and inserts it into all four indexes.
// It returns an error if ref's id is already present or if ref's
// signature collides with an existing reference's signature
// (CatalogCorrupt, per §4.3's rejection of duplicate signatures).
func (c *Catalog) Add(ref model.KnownReference) error {
	if _, dup := c.byID[ref.ID]; dup {
		return fmt.Errorf("catalog: duplicate reference id %q", ref.ID)
	}
	if ref.Signature != "" {
		if existing, dup := c.bySignature[ref.Signature]; dup {
			return fmt.Errorf("catalog: reference %q has the same signature as already-loaded reference %q",
				ref.ID, c.refs[existing].ID)
		}
	}

	pos := len(c.refs)
	c.refs = append(c.refs, ref)
	c.byID[ref.ID] = pos

	for m := range ref.MD5Set {
		c.byMD5[m] = append(c.byMD5[m], pos)
	}
	for k := range ref.NameLengthSet {
		c.byNameLength[k] = append(c.byNameLength[k], pos)
	}
	if ref.Signature != "" {
		c.bySignature[ref.Signature] = pos
	}
	return nil
}

// Len returns the number of references in the catalog.
func (c *Catalog) Len() int { return len(c.refs) }

// All returns the references in catalog (insertion) order. The slice
// must not be mutated by callers.
func (c *Catalog) All() []model.KnownReference { return c.refs }

// Get returns the reference with the given id.
func (c *Catalog) Get(id string) (model.KnownReference, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return model.KnownReference{}, false
	}
	return c.refs[pos], true
}

// At returns the reference at catalog position pos, as returned in an
// Overlap by CandidatesByMD5 or CandidatesByNameLength.
func (c *Catalog) At(pos int) model.KnownReference { return c.refs[pos] }

// FindBySignature returns the single reference whose dictionary
// signature matches sig exactly, if any.
func (c *Catalog) FindBySignature(sig string) (model.KnownReference, bool) {
	if sig == "" {
		return model.KnownReference{}, false
	}
	pos, ok := c.bySignature[sig]
	if !ok {
		return model.KnownReference{}, false
	}
	return c.refs[pos], true
}

// Overlap pairs a catalog position with the number of postings that
// matched it, for ranking candidate references by evidence strength.
type Overlap struct {
	Pos   int
	Count int
}

// CandidatesByMD5 returns catalog positions containing at least one of
// query's checksums, sorted by descending overlap count, with ties
// broken by ascending catalog position (insertion order).
func (c *Catalog) CandidatesByMD5(query model.DerivedSets) []Overlap {
	counts := make(map[int]int)
	for m := range query.MD5Set {
		for _, pos := range c.byMD5[m] {
			counts[pos]++
		}
	}
	return sortOverlaps(counts)
}

// CandidatesByNameLength returns catalog positions sharing at least one
// (name, length) pair with query (over the union of primary names and
// aliases on both sides), sorted the same way as CandidatesByMD5.
func (c *Catalog) CandidatesByNameLength(query model.DerivedSets) []Overlap {
	counts := make(map[int]int)
	for k := range query.NameLengthSet {
		for _, pos := range c.byNameLength[k] {
			counts[pos]++
		}
	}
	return sortOverlaps(counts)
}

func sortOverlaps(counts map[int]int) []Overlap {
	out := make([]Overlap, 0, len(counts))
	for pos, n := range counts {
		out = append(out, Overlap{Pos: pos, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pos < out[j].Pos
	})
	return out
}
