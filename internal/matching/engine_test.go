package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// Scenario 1: perfect match with MD5s.
func TestScenarioPerfectMatch(t *testing.T) {
	ref := mustRef(t, "grch38",
		mustContig(t, "chr1", 248956422, md5A),
		mustContig(t, "chr2", 242193529, md5B),
		mustContig(t, "chr3", 198295559, md5C),
	)
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t,
		mustContig(t, "chr1", 248956422, md5A),
		mustContig(t, "chr2", 242193529, md5B),
		mustContig(t, "chr3", 198295559, md5C),
	)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, MatchExact, r.Diagnosis.MatchType)
	assert.Equal(t, 3, r.Score.Exact)
	assert.Zero(t, r.Score.NameLengthOnly)
	assert.Zero(t, r.Score.Conflict)
	assert.Zero(t, r.Score.Unmatched)
	assert.GreaterOrEqual(t, r.Score.Composite, 0.95)
	assert.GreaterOrEqual(t, r.Score.Confidence, ConfidenceHigh)
	assertHasSuggestion(t, r.Diagnosis.Suggestions, SuggestionUseAsIs)
}

// Scenario 2: name+length only, no MD5 anywhere.
func TestScenarioNameLengthOnlyNoMD5(t *testing.T) {
	ref := mustRef(t, "grch38",
		mustContig(t, "chr1", 248956422, ""),
		mustContig(t, "chr2", 242193529, ""),
		mustContig(t, "chr3", 198295559, ""),
	)
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t,
		mustContig(t, "chr1", 248956422, ""),
		mustContig(t, "chr2", 242193529, ""),
		mustContig(t, "chr3", 198295559, ""),
	)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 3, r.Score.NameLengthOnly)
	assert.Zero(t, r.Score.Conflict)
	assert.InDelta(t, 1.0, r.Score.MatchQuality, 1e-9)
	assert.InDelta(t, 1.0, r.Score.CoverageScore, 1e-9)
	assert.InDelta(t, 1.0, r.Score.OrderScore, 1e-9)
	assert.GreaterOrEqual(t, r.Score.Composite, 0.90)
}

// Scenario 3: MD5 conflict across the board.
func TestScenarioMD5ConflictAcrossBoard(t *testing.T) {
	ref := mustRef(t, "grch38",
		mustContig(t, "chr1", 100, md5A),
		mustContig(t, "chr2", 200, md5B),
		mustContig(t, "chr3", 300, md5C),
	)
	cat := mustCatalog(t, ref)
	// The expected composite (0.07) is below DefaultConfig's minimum of
	// 0.1, so the threshold is lowered to keep the result in the output.
	cfg := DefaultConfig()
	cfg.MinComposite = 0
	engine := NewEngine(cat, cfg)

	query := mustQuery(t,
		mustContig(t, "chr1", 100, md5D),
		mustContig(t, "chr2", 200, md5D),
		mustContig(t, "chr3", 300, md5D),
	)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	assert.Zero(t, r.Score.Exact)
	assert.Zero(t, r.Score.NameLengthOnly)
	assert.Equal(t, 3, r.Score.Conflict)
	assert.Zero(t, r.Score.Unmatched)
	assert.InDelta(t, 0.1, r.Score.MatchQuality, 1e-9)
	assert.Zero(t, r.Score.CoverageScore)
	assert.LessOrEqual(t, r.Score.Composite, 0.1+1e-9)
	assert.Equal(t, ConfidenceLow, r.Score.Confidence)
	assertHasSuggestion(t, r.Diagnosis.Suggestions, SuggestionRealign)
}

// Scenario 4: renamed dictionary via aliases.
func TestScenarioRenamedDictionary(t *testing.T) {
	ref := mustRef(t, "ncbi-build",
		mustContig(t, "1", 100, "", "chr1"),
		mustContig(t, "2", 200, "", "chr2"),
		mustContig(t, "MT", 300, "", "chrM"),
	)
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t,
		mustContig(t, "chr1", 100, ""),
		mustContig(t, "chr2", 200, ""),
		mustContig(t, "chrM", 300, ""),
	)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 3, r.Score.NameLengthOnly)
	assert.Contains(t, []MatchType{MatchRenamed, MatchReorderedAndRenamed}, r.Diagnosis.MatchType)
	assertHasSuggestion(t, r.Diagnosis.Suggestions, SuggestionRename)
}

// Scenario 4b: renamed dictionary matched via alias with equal MD5s —
// the common case of a UCSC-named BAM against an NCBI-primary-named
// catalog entry, which must report Renamed, not Exact.
func TestScenarioRenamedDictionaryWithMD5(t *testing.T) {
	ref := mustRef(t, "ncbi-build",
		mustContig(t, "1", 100, md5A, "chr1"),
		mustContig(t, "2", 200, md5B, "chr2"),
		mustContig(t, "MT", 300, md5C, "chrM"),
	)
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t,
		mustContig(t, "chr1", 100, md5A),
		mustContig(t, "chr2", 200, md5B),
		mustContig(t, "chrM", 300, md5C),
	)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 3, r.Score.Exact)
	assert.Zero(t, r.Score.NameLengthOnly)
	assert.Empty(t, r.Diagnosis.ExactMatches)
	assert.Len(t, r.Diagnosis.RenamedMatches, 3)
	assert.Contains(t, []MatchType{MatchRenamed, MatchReorderedAndRenamed}, r.Diagnosis.MatchType)
	assertHasSuggestion(t, r.Diagnosis.Suggestions, SuggestionRename)
	assertNoSuggestion(t, r.Diagnosis.Suggestions, SuggestionUseAsIs)
}

// Scenario 5: mitochondrial mismatch inside an otherwise clean match.
func TestScenarioMitochondrialMismatch(t *testing.T) {
	var refContigs, queryContigs []model.Contig
	for i := 1; i <= 24; i++ {
		name := primaryChromName(i)
		md5 := md5Hex(i)
		refContigs = append(refContigs, mustContig(t, name, uint64(1000+i), md5))
		queryContigs = append(queryContigs, mustContig(t, name, uint64(1000+i), md5))
	}
	refContigs = append(refContigs, mustContig(t, "chrM", 16569, md5A))
	queryContigs = append(queryContigs, mustContig(t, "chrM", 16569, md5B))

	ref := mustRef(t, "grch38", refContigs...)
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())
	query := mustQuery(t, queryContigs...)

	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	r := results[0]
	require.Len(t, r.Diagnosis.Conflicts, 1)
	assert.Equal(t, ConflictMitochondrialMismatch, r.Diagnosis.Conflicts[0].Kind)
	assert.Equal(t, MatchMixed, r.Diagnosis.MatchType)
	assertHasSuggestion(t, r.Diagnosis.Suggestions, SuggestionReplaceContig)
	assertNoSuggestion(t, r.Diagnosis.Suggestions, SuggestionUseAsIs)
}

// Scenario 6: signature short-circuit.
func TestScenarioSignatureShortCircuit(t *testing.T) {
	contigs := []model.Contig{
		mustContig(t, "chr1", 100, md5A),
		mustContig(t, "chr2", 200, md5B),
	}
	ref := mustRef(t, "grch38", contigs...)
	decoy := mustRef(t, "decoy", mustContig(t, "chrD", 999, md5D))
	cat := mustCatalog(t, ref, decoy)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t, contigs...)
	results := engine.FindMatches(query, 5)
	require.Len(t, results, 1)
	assert.Equal(t, "grch38", results[0].Reference.ID)

	// The short-circuit result must equal the slow-path computation
	// for the same pair.
	st := scoreReference(query, ref, engine.config.ConflictCredit, engine.config.Weights)
	assert.Equal(t, st.score.Composite, results[0].Score.Composite)
}

func TestFindMatchesEmptyForNoCandidates(t *testing.T) {
	ref := mustRef(t, "grch38", mustContig(t, "chr1", 100, md5A))
	cat := mustCatalog(t, ref)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t, mustContig(t, "zzz", 999999, md5D))
	results := engine.FindMatches(query, 5)
	assert.Empty(t, results)
}

func TestFindMatchesRespectsLimit(t *testing.T) {
	var refs []model.KnownReference
	for i := 0; i < 5; i++ {
		refs = append(refs, mustRef(t, name(i), mustContig(t, "chr1", 100, "")))
	}
	cat := mustCatalog(t, refs...)
	engine := NewEngine(cat, DefaultConfig())

	query := mustQuery(t, mustContig(t, "chr1", 100, ""))
	results := engine.FindMatches(query, 2)
	assert.Len(t, results, 2)
}

func name(i int) string {
	return string(rune('a' + i))
}

func primaryChromName(i int) string {
	switch i {
	case 23:
		return "chrX"
	case 24:
		return "chrY"
	default:
		return "chr" + itoa(i)
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func md5Hex(i int) string {
	base := itoa(i)
	pad := make([]byte, 32-len(base))
	for j := range pad {
		pad[j] = '0'
	}
	return string(pad) + base
}

func assertHasSuggestion(t *testing.T, suggestions []Suggestion, kind SuggestionKind) {
	t.Helper()
	for _, s := range suggestions {
		if s.Kind == kind {
			return
		}
	}
	t.Fatalf("expected a suggestion of kind %v, got %+v", kind, suggestions)
}

func assertNoSuggestion(t *testing.T, suggestions []Suggestion, kind SuggestionKind) {
	t.Helper()
	for _, s := range suggestions {
		if s.Kind == kind {
			t.Fatalf("did not expect a suggestion of kind %v, got %+v", kind, suggestions)
		}
	}
}
