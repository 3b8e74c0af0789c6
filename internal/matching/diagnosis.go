package matching

import (
	"fmt"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// ConflictKind classifies a conflict surfaced in a Diagnosis.
type ConflictKind int

const (
	// ConflictSequenceMismatch is a same-(name,length), different-MD5
	// pair not involving the mitochondrial genome.
	ConflictSequenceMismatch ConflictKind = iota
	// ConflictMitochondrialMismatch is a SequenceMismatch on a contig
	// recognized as mitochondrial.
	ConflictMitochondrialMismatch
	// ConflictUnknownContig is a primary chromosome or mitochondrial
	// contig with no coordinate match at all.
	ConflictUnknownContig
)

// Conflict is one diagnosed disagreement between the query and a
// scored reference.
type Conflict struct {
	Kind        ConflictKind
	ContigName   string
	QueryMD5     string
	ReferenceMD5 string
}

// SuggestionKind classifies a remediation hint.
type SuggestionKind int

const (
	SuggestionRename SuggestionKind = iota
	SuggestionReorder
	SuggestionReplaceContig
	SuggestionRealign
	SuggestionUseAsIs
)

// Suggestion is an advisory remediation hint. The core never executes
// it; it exists only to be rendered to a user.
type Suggestion struct {
	Kind    SuggestionKind
	Message string
}

// MatchType summarizes the overall relationship between a query and a
// scored reference.
type MatchType int

const (
	MatchNone MatchType = iota
	MatchExact
	MatchReordered
	MatchRenamed
	MatchReorderedAndRenamed
	MatchPartial
	MatchMixed
)

func (m MatchType) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchReordered:
		return "reordered"
	case MatchRenamed:
		return "renamed"
	case MatchReorderedAndRenamed:
		return "reordered-and-renamed"
	case MatchPartial:
		return "partial"
	case MatchMixed:
		return "mixed"
	default:
		return "no-match"
	}
}

// Diagnosis is the per-contig classification, conflicts list, and
// remediation suggestions produced for one scored reference.
type Diagnosis struct {
	ExactMatches      []ContigVerdict
	RenamedMatches    []ContigVerdict
	NameLengthMatches []ContigVerdict
	QueryOnly         []ContigVerdict

	Conflicts   []Conflict
	Reordered   bool
	MatchType   MatchType
	Suggestions []Suggestion
}

// mixedImbalanceFactor: a mitochondrial mismatch is treated as a minor
// blemish in an otherwise clean match (→ Mixed) rather than a partial
// match when good matches outnumber conflicts by at least this factor.
const mixedImbalanceFactor = 5

// isRenamed reports whether a matched verdict's reference contig goes
// by a name the query didn't use for it: same coordinates, different
// name, per §4.6's definition of a renamed match.
func isRenamed(v ContigVerdict) bool {
	return v.Ref != nil && v.Ref.Name != v.Query.Name && !v.Query.HasName(v.Ref.Name)
}

// diagnose derives a Diagnosis from the verdicts and score computed by
// scoreReference, per §4.6.
func diagnose(ref model.KnownReference, st scoreState) Diagnosis {
	d := Diagnosis{Reordered: !st.score.OrderPreserved}

	good := st.score.Exact + st.score.NameLengthOnly
	var mitoConflicts int

	for _, v := range st.verdicts {
		switch v.Class {
		case ClassExact:
			if isRenamed(v) {
				d.RenamedMatches = append(d.RenamedMatches, v)
			} else {
				d.ExactMatches = append(d.ExactMatches, v)
			}
		case ClassNameLengthNoMd5:
			if isRenamed(v) {
				d.RenamedMatches = append(d.RenamedMatches, v)
			} else {
				d.NameLengthMatches = append(d.NameLengthMatches, v)
			}
		case ClassMd5Conflict:
			mito := v.Query.IsMitochondrial() || (v.Ref != nil && v.Ref.IsMitochondrial())
			kind := ConflictSequenceMismatch
			if mito {
				kind = ConflictMitochondrialMismatch
				mitoConflicts++
			}
			refMD5 := ""
			if v.Ref != nil {
				refMD5 = v.Ref.MD5
			}
			d.Conflicts = append(d.Conflicts, Conflict{
				Kind:         kind,
				ContigName:   v.Query.Name,
				QueryMD5:     v.Query.MD5,
				ReferenceMD5: refMD5,
			})
		case ClassUnmatched:
			if v.Query.IsPrimaryChromosome() || v.Query.IsMitochondrial() {
				d.Conflicts = append(d.Conflicts, Conflict{
					Kind:       ConflictUnknownContig,
					ContigName: v.Query.Name,
				})
			} else {
				d.QueryOnly = append(d.QueryOnly, v)
			}
		}
	}

	totalQuery := len(st.verdicts)
	hasConflicts := len(d.Conflicts) > 0
	// Any unmatched contig not routed to QueryOnly was promoted into
	// Conflicts as ConflictUnknownContig, so "all matched" just needs
	// every contig to be good or a (non-promoted) conflict.
	allMatched := good+st.score.Conflict == totalQuery && totalQuery > 0

	switch {
	case good == 0 && st.score.Conflict == 0:
		d.MatchType = MatchNone
	case allMatched && len(d.RenamedMatches) == 0 && !hasConflicts:
		if d.Reordered {
			d.MatchType = MatchReordered
		} else {
			d.MatchType = MatchExact
		}
	case allMatched && !hasConflicts:
		if d.Reordered {
			d.MatchType = MatchReorderedAndRenamed
		} else {
			d.MatchType = MatchRenamed
		}
	case mitoConflicts > 0 && good >= mixedImbalanceFactor*len(d.Conflicts):
		d.MatchType = MatchMixed
	default:
		d.MatchType = MatchPartial
	}

	d.Suggestions = buildSuggestions(ref, d)
	return d
}

func buildSuggestions(ref model.KnownReference, d Diagnosis) []Suggestion {
	var s []Suggestion

	if len(d.RenamedMatches) > 0 {
		s = append(s, Suggestion{
			Kind:    SuggestionRename,
			Message: fmt.Sprintf("update the sequence dictionary's contig names to match %s", ref.DisplayName),
		})
	}
	if d.Reordered {
		s = append(s, Suggestion{
			Kind:    SuggestionReorder,
			Message: fmt.Sprintf("reorder contigs to match %s's contig order", ref.DisplayName),
		})
	}
	for _, c := range d.Conflicts {
		switch c.Kind {
		case ConflictMitochondrialMismatch:
			url := ref.DownloadURL
			if url == "" {
				url = ref.DisplayName
			}
			s = append(s, Suggestion{
				Kind:    SuggestionReplaceContig,
				Message: fmt.Sprintf("replace contig %q with the sequence from %s", c.ContigName, url),
			})
		case ConflictSequenceMismatch:
			s = append(s, Suggestion{
				Kind:    SuggestionRealign,
				Message: fmt.Sprintf("contig %q has the same coordinates but a different sequence; realign against %s", c.ContigName, ref.DisplayName),
			})
		}
	}
	if d.MatchType == MatchExact && len(d.Conflicts) == 0 {
		s = append(s, Suggestion{Kind: SuggestionUseAsIs, Message: fmt.Sprintf("file matches %s exactly; no action needed", ref.DisplayName)})
	}
	return s
}
