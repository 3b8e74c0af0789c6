// Package matching implements the candidate finder, scoring algorithm,
// diagnosis producer, and orchestrating engine that together answer
// "which reference genome produced this file, and how does it differ".
package matching

import (
	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// findCandidates prunes the catalog to at most 2*limit positions worth
// scoring, preferring MD5-based evidence over name/length evidence and
// preserving first-seen order between the two passes.
func findCandidates(cat *catalog.Catalog, query model.DerivedSets, limit int) []int {
	seen := make(map[int]struct{})
	var order []int

	add := func(overlaps []catalog.Overlap) {
		for _, o := range overlaps {
			if _, ok := seen[o.Pos]; ok {
				continue
			}
			seen[o.Pos] = struct{}{}
			order = append(order, o.Pos)
		}
	}

	add(cat.CandidatesByMD5(query))
	add(cat.CandidatesByNameLength(query))

	max := 2 * limit
	if max < 0 {
		max = 0
	}
	if len(order) > max {
		order = order[:max]
	}
	return order
}
