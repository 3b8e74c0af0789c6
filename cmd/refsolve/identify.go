package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/config"
	"github.com/fulcrumgenomics/ref-solver/internal/matching"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
	"github.com/fulcrumgenomics/ref-solver/internal/parse"
)

var (
	inputFormat string
	outputJSON  bool
)

var identifyCmd = &cobra.Command{
	Use:   "identify <dictionary-file>",
	Short: "Identify which catalog reference a sequence dictionary matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func runIdentify(cmd *cobra.Command, args []string) error {
	query, warnings, err := parseDictionaryFile(args[0], inputFormat)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	cat, cfg, err := loadCatalogAndConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Scoring.MinComposite = minScore
	}
	n := limit
	if !cmd.Flags().Changed("limit") && cfg.Scoring.DefaultLimit > 0 {
		n = cfg.Scoring.DefaultLimit
	}

	engine := matching.NewEngine(cat, cfg.MatchingConfig())
	results := engine.FindMatches(query, n)
	if outputJSON {
		return printResultsJSON(results)
	}
	printResults(results)
	return nil
}

func parseDictionaryFile(path, format string) (model.QueryHeader, []parse.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.QueryHeader{}, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if format == "auto" {
		format = detectFormat(path)
	}
	switch format {
	case "sam":
		return parse.SAMHeader(f)
	case "dict":
		return parse.Dict(f)
	case "fai":
		return parse.FAI(f)
	case "ncbi-report":
		return parse.NCBIReport(f)
	case "fasta":
		return parse.FASTA(f)
	default:
		return model.QueryHeader{}, nil, fmt.Errorf("unrecognized format %q; pass --format explicitly", format)
	}
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dict":
		return "dict"
	case ".fai":
		return "fai"
	case ".sam":
		return "sam"
	case ".txt":
		return "ncbi-report"
	case ".fa", ".fasta", ".fna":
		return "fasta"
	default:
		return "sam"
	}
}

func loadCatalogAndConfig() (*catalog.Catalog, config.Config, error) {
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return nil, config.Config{}, err
	}

	if catalogPath == "" {
		catalogPath = cfg.Server.Catalog
	}
	cat, err := resolveCatalog()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, cfg, nil
}

// matchResultJSON is the --json rendering of one MatchResult, in the
// same field shape internal/httpapi returns over the wire so scripts
// can treat the CLI and the HTTP API interchangeably.
type matchResultJSON struct {
	ReferenceID string   `json:"reference_id"`
	DisplayName string   `json:"display_name"`
	Composite   float64  `json:"composite"`
	Confidence  string   `json:"confidence"`
	MatchType   string   `json:"match_type"`
	Exact       int      `json:"exact"`
	NameOnly    int      `json:"name_only"`
	Conflict    int      `json:"conflict"`
	Unmatched   int      `json:"unmatched"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func printResultsJSON(results []matching.MatchResult) error {
	out := make([]matchResultJSON, 0, len(results))
	for _, r := range results {
		m := matchResultJSON{
			ReferenceID: r.Reference.ID,
			DisplayName: r.Reference.DisplayName,
			Composite:   r.Score.Composite,
			Confidence:  r.Score.Confidence.String(),
			MatchType:   r.Diagnosis.MatchType.String(),
			Exact:       r.Score.Exact,
			NameOnly:    r.Score.NameLengthOnly,
			Conflict:    r.Score.Conflict,
			Unmatched:   r.Score.Unmatched,
		}
		for _, s := range r.Diagnosis.Suggestions {
			m.Suggestions = append(m.Suggestions, s.Message)
		}
		out = append(out, m)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResults(results []matching.MatchResult) {
	if len(results) == 0 {
		fmt.Println("no candidate reference matched")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REFERENCE\tCOMPOSITE\tCONFIDENCE\tMATCH TYPE\tEXACT\tNAME-ONLY\tCONFLICT\tUNMATCHED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.Reference.ID, r.Score.Composite, r.Score.Confidence, r.Diagnosis.MatchType,
			r.Score.Exact, r.Score.NameLengthOnly, r.Score.Conflict, r.Score.Unmatched)
	}
	w.Flush()

	for _, r := range results {
		for _, s := range r.Diagnosis.Suggestions {
			fmt.Printf("[%s] %s\n", r.Reference.ID, s.Message)
		}
	}
}
