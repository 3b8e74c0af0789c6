package model

import "github.com/fulcrumgenomics/ref-solver/internal/ids"

// MaxContigs bounds the number of contigs accepted in either a
// QueryHeader or a KnownReference, guarding memory and CPU use.
const MaxContigs = 100_000

// DerivedSets holds the per-dictionary indexes recomputed any time a
// QueryHeader or KnownReference's contig list changes: the set of
// checksums present, the set of (name, length) pairs spanning primary
// names and aliases, and the set-identity signature over the checksums.
type DerivedSets struct {
	MD5Set        map[string]struct{}
	NameLengthSet map[NameLengthKey]struct{}
	Signature     string
}

// computeDerivedSets builds a DerivedSets from contigs. It is the only
// place derived sets are computed, so QueryHeader and KnownReference
// construction always agree with each other and with a freshly loaded
// catalog entry.
func computeDerivedSets(contigs []Contig) DerivedSets {
	md5Set := make(map[string]struct{})
	nlSet := make(map[NameLengthKey]struct{})
	for _, c := range contigs {
		if c.MD5 != "" {
			md5Set[c.MD5] = struct{}{}
		}
		for _, k := range c.NameLengthKeys() {
			nlSet[k] = struct{}{}
		}
	}
	flat := make([]string, 0, len(md5Set))
	for m := range md5Set {
		flat = append(flat, m)
	}
	return DerivedSets{
		MD5Set:        md5Set,
		NameLengthSet: nlSet,
		Signature:     ids.ComputeSignature(flat),
	}
}
