package model

import "fmt"

// QueryHeader is the ordered sequence dictionary a parser produces from
// an alignment, variant, or reference file. It is immutable once
// constructed, and its derived sets are computed eagerly so the
// matching engine never recomputes them per candidate.
type QueryHeader struct {
	Contigs    []Contig
	Convention NamingConvention
	DerivedSets
}

// NewQueryHeader constructs a QueryHeader from an ordered contig list.
// Order is preserved and is observable to scoring (it is the basis of
// the order-score computation). Construction fails if contigs exceeds
// MaxContigs, per the InputTooLarge error class of §7.
func NewQueryHeader(contigs []Contig) (QueryHeader, error) {
	if len(contigs) > MaxContigs {
		return QueryHeader{}, fmt.Errorf("model: query has %d contigs, exceeds cap of %d", len(contigs), MaxContigs)
	}
	cp := append([]Contig(nil), contigs...)
	return QueryHeader{
		Contigs:     cp,
		Convention:  DetectNamingConvention(cp),
		DerivedSets: computeDerivedSets(cp),
	}, nil
}
