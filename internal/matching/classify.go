package matching

import (
	"strings"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// ContigClass is the per-contig verdict underpinning every score and
// diagnosis.
type ContigClass int

const (
	// ClassUnmatched means no reference contig shares a (name-or-alias,
	// length) pair with the query contig.
	ClassUnmatched ContigClass = iota
	// ClassExact means the matched contigs' checksums agree.
	ClassExact
	// ClassMd5Conflict means the matched contigs share coordinates but
	// disagree on checksum: same (name,length), different sequence.
	ClassMd5Conflict
	// ClassNameLengthNoMd5 means the contigs matched by coordinate but
	// at least one side lacks a checksum to verify against.
	ClassNameLengthNoMd5
)

// ContigVerdict is the outcome of classifying one query contig against
// one reference.
type ContigVerdict struct {
	Query  model.Contig
	Ref    *model.Contig // nil if Class == ClassUnmatched
	RefPos int           // index into the reference's Contigs, valid iff Ref != nil
	Class  ContigClass
}

// findReferenceContig locates the reference contig matching q by the
// lookup rule of §4.5.1: query name-or-alias against reference
// name-or-alias, at equal length. Ties prefer a reference contig whose
// *primary* name matches over one matched only via alias, then the
// first encountered in the reference's contig order.
func findReferenceContig(q model.Contig, ref model.KnownReference) (pos int, ok bool) {
	queryNames := make([]string, 0, 1+len(q.Aliases))
	queryNames = append(queryNames, q.Name)
	queryNames = append(queryNames, q.Aliases...)

	aliasPos := -1
	for i, rc := range ref.Contigs {
		if rc.Length != q.Length {
			continue
		}
		for _, qn := range queryNames {
			if rc.Name == qn {
				// A primary-name match beats any alias match, so it is
				// safe to return immediately.
				return i, true
			}
		}
		if aliasPos != -1 {
			continue
		}
		for _, qn := range queryNames {
			for _, ra := range rc.Aliases {
				if ra == qn {
					aliasPos = i
					break
				}
			}
			if aliasPos != -1 {
				break
			}
		}
	}

	if aliasPos == -1 {
		return 0, false
	}
	return aliasPos, true
}

// classifyContig classifies q against the matched reference contig (if
// any) found in ref.
func classifyContig(q model.Contig, ref model.KnownReference) ContigVerdict {
	pos, ok := findReferenceContig(q, ref)
	if !ok {
		return ContigVerdict{Query: q, Class: ClassUnmatched}
	}
	rc := ref.Contigs[pos]

	class := ClassNameLengthNoMd5
	if q.MD5 != "" && rc.MD5 != "" {
		if strings.EqualFold(q.MD5, rc.MD5) {
			class = ClassExact
		} else {
			class = ClassMd5Conflict
		}
	}
	rcCopy := rc
	return ContigVerdict{Query: q, Ref: &rcCopy, RefPos: pos, Class: class}
}
