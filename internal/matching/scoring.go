package matching

import (
	"sort"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// Confidence buckets the composite score into a coarse label for
// display.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceExact
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// confidenceFromComposite maps a composite score in [0,1] to a
// Confidence bucket per §4.5.3.
func confidenceFromComposite(composite float64) Confidence {
	switch {
	case composite >= 1.0:
		return ConfidenceExact
	case composite >= 0.95:
		return ConfidenceHigh
	case composite >= 0.80:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Weights are the three composite-score weights of §4.5.3. They need
// not sum to 1; Normalized returns a copy that does.
type Weights struct {
	MatchQuality float64
	Coverage     float64
	Order        float64
}

// DefaultWeights are the (0.70, 0.20, 0.10) defaults of §4.5.3.
func DefaultWeights() Weights {
	return Weights{MatchQuality: 0.70, Coverage: 0.20, Order: 0.10}
}

// Normalized rescales w to sum to 1. A degenerate all-zero (or
// negative-summing) Weights reverts to DefaultWeights.
func (w Weights) Normalized() Weights {
	sum := w.MatchQuality + w.Coverage + w.Order
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		MatchQuality: w.MatchQuality / sum,
		Coverage:     w.Coverage / sum,
		Order:        w.Order / sum,
	}
}

// DefaultConflictCredit is the default value of p in §4.5.2's
// match_quality formula.
const DefaultConflictCredit = 0.1

// MatchScore is the result of scoring one QueryHeader against one
// KnownReference: the per-contig counters, the three component scores,
// the weighted composite, and the derived confidence bucket.
type MatchScore struct {
	Exact          int
	NameLengthOnly int
	Conflict       int
	Unmatched      int

	MatchQuality   float64
	CoverageScore  float64
	OrderScore     float64
	OrderPreserved bool

	Composite  float64
	Confidence Confidence
}

// scoreState carries the per-contig classification alongside the
// score, since diagnosis needs the same verdicts scoring computed.
type scoreState struct {
	verdicts []ContigVerdict
	score    MatchScore
}

// scoreReference classifies every query contig against ref and derives
// the MatchScore, per §4.5.
func scoreReference(query model.QueryHeader, ref model.KnownReference, conflictCredit float64, weights Weights) scoreState {
	verdicts := make([]ContigVerdict, len(query.Contigs))
	var e, n, c, u int
	for i, qc := range query.Contigs {
		v := classifyContig(qc, ref)
		verdicts[i] = v
		switch v.Class {
		case ClassExact:
			e++
		case ClassNameLengthNoMd5:
			n++
		case ClassMd5Conflict:
			c++
		default:
			u++
		}
	}

	q := len(query.Contigs)
	r := len(ref.Contigs)

	var matchQuality float64
	if q > 0 {
		matchQuality = (float64(e) + float64(n) + conflictCredit*float64(c)) / float64(q)
	}

	var coverage float64
	if r > 0 {
		coverage = (float64(e) + float64(n)) / float64(r)
		if coverage > 1 {
			coverage = 1
		}
	}

	orderPreserved, orderScore := analyzeOrder(verdicts)

	w := weights.Normalized()
	composite := w.MatchQuality*matchQuality + w.Coverage*coverage + w.Order*orderScore
	composite = clamp01(composite)

	return scoreState{
		verdicts: verdicts,
		score: MatchScore{
			Exact:          e,
			NameLengthOnly: n,
			Conflict:       c,
			Unmatched:      u,
			MatchQuality:   matchQuality,
			CoverageScore:  coverage,
			OrderScore:     orderScore,
			OrderPreserved: orderPreserved,
			Composite:      composite,
			Confidence:     confidenceFromComposite(composite),
		},
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// analyzeOrder computes order_preserved and order_score per §4.5.2: the
// length of the longest strictly increasing subsequence of matched
// reference positions (in query order), divided by the number of
// matched contigs. Fewer than two matches trivially preserves order
// with a neutral (zero) score.
func analyzeOrder(verdicts []ContigVerdict) (preserved bool, score float64) {
	var positions []int
	for _, v := range verdicts {
		// Only contigs without evidence of a coordinate conflict count
		// as "matched" for ordering purposes: a contig whose sequence
		// disagrees with the reference at the same coordinates is not
		// reliable evidence of the file's layout relative to it.
		if v.Ref != nil && v.Class != ClassMd5Conflict {
			positions = append(positions, v.RefPos)
		}
	}
	if len(positions) < 2 {
		return true, 0
	}

	preserved = allStrictlyIncreasing(positions)
	lis := longestStrictlyIncreasingSubsequence(positions)
	return preserved, float64(lis) / float64(len(positions))
}

func allStrictlyIncreasing(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

// longestStrictlyIncreasingSubsequence returns the length of the
// longest strictly increasing subsequence of xs, computed in
// O(L log L) via patience sorting.
func longestStrictlyIncreasingSubsequence(xs []int) int {
	tails := make([]int, 0, len(xs))
	for _, x := range xs {
		i := sort.SearchInts(tails, x)
		if i == len(tails) {
			tails = append(tails, x)
		} else {
			tails[i] = x
		}
	}
	return len(tails)
}
