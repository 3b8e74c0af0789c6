package matching

import (
	"sort"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// Config holds the engine's scoring and filtering parameters. A zero
// Config is not valid; use DefaultConfig.
type Config struct {
	ConflictCredit float64
	Weights        Weights
	MinComposite   float64
}

// DefaultConfig returns the engine defaults specified in §4.5 and §4.7:
// conflict credit 0.1, weights (0.70, 0.20, 0.10), minimum composite
// 0.1.
func DefaultConfig() Config {
	return Config{
		ConflictCredit: DefaultConflictCredit,
		Weights:        DefaultWeights(),
		MinComposite:   0.1,
	}
}

// ScoreOne scores query against a single reference directly, bypassing
// the catalog and candidate finder. It's the entry point for a
// one-reference-at-a-time comparison, as opposed to FindMatches'
// whole-catalog search.
func ScoreOne(query model.QueryHeader, ref model.KnownReference, cfg Config) MatchScore {
	return scoreReference(query, ref, cfg.ConflictCredit, cfg.Weights).score
}

// DiagnoseOne produces the Diagnosis for the same query/reference pair
// ScoreOne scores, for callers that need both.
func DiagnoseOne(query model.QueryHeader, ref model.KnownReference, cfg Config) (MatchScore, Diagnosis) {
	st := scoreReference(query, ref, cfg.ConflictCredit, cfg.Weights)
	return st.score, diagnose(ref, st)
}

// Engine orchestrates the candidate finder, scorer, and diagnosis
// producer against a fixed, read-only Catalog. An Engine is safe for
// concurrent use by multiple goroutines.
type Engine struct {
	catalog *catalog.Catalog
	config  Config
}

// NewEngine returns an Engine backed by cat, configured with cfg.
func NewEngine(cat *catalog.Catalog, cfg Config) *Engine {
	return &Engine{catalog: cat, config: cfg}
}

// MatchResult is one candidate reference annotated with its score and
// diagnosis, as returned by FindMatches.
type MatchResult struct {
	Reference model.KnownReference
	Score     MatchScore
	Diagnosis Diagnosis
}

// FindMatches scores query against the engine's catalog and returns up
// to limit results, ordered by descending composite score (ties broken
// by ascending catalog insertion position), with any result scoring
// below the configured minimum composite dropped. It never fails: a
// query that matches nothing yields an empty, non-nil slice.
func (e *Engine) FindMatches(query model.QueryHeader, limit int) []MatchResult {
	if limit <= 0 {
		return []MatchResult{}
	}

	if ref, ok := e.catalog.FindBySignature(query.Signature); ok {
		st := scoreReference(query, ref, e.config.ConflictCredit, e.config.Weights)
		return []MatchResult{{
			Reference: ref,
			Score:     st.score,
			Diagnosis: diagnose(ref, st),
		}}
	}

	positions := findCandidates(e.catalog, query.DerivedSets, limit)

	type ranked struct {
		pos    int
		result MatchResult
	}
	results := make([]ranked, 0, len(positions))
	for _, pos := range positions {
		ref := e.catalog.At(pos)
		st := scoreReference(query, ref, e.config.ConflictCredit, e.config.Weights)
		results = append(results, ranked{
			pos: pos,
			result: MatchResult{
				Reference: ref,
				Score:     st.score,
				Diagnosis: diagnose(ref, st),
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].result.Score.Composite != results[j].result.Score.Composite {
			return results[i].result.Score.Composite > results[j].result.Score.Composite
		}
		return results[i].pos < results[j].pos
	})

	out := make([]MatchResult, 0, limit)
	for _, r := range results {
		if r.result.Score.Composite < e.config.MinComposite {
			continue
		}
		out = append(out, r.result)
		if len(out) == limit {
			break
		}
	}
	return out
}
