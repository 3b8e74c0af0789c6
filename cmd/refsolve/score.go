package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulcrumgenomics/ref-solver/internal/matching"
)

var scoreReferenceID string

func init() {
	scoreCmd.Flags().StringVar(&scoreReferenceID, "reference", "", "Catalog reference id to score against (required)")
	scoreCmd.Flags().StringVar(&inputFormat, "format", "auto", "Input format: auto|sam|dict|fai|ncbi-report|fasta")
}

var scoreCmd = &cobra.Command{
	Use:   "score <dictionary-file>",
	Short: "Score a sequence dictionary against one specific catalog reference",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	if scoreReferenceID == "" {
		return fmt.Errorf("--reference is required")
	}

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
	ref, ok := cat.Get(scoreReferenceID)
	if !ok {
		return fmt.Errorf("no reference %q in catalog", scoreReferenceID)
	}

	st, diag := matching.DiagnoseOne(query, ref, cfg.MatchingConfig())
	fmt.Printf("reference:   %s\n", ref.ID)
	fmt.Printf("composite:   %.3f\n", st.Composite)
	fmt.Printf("confidence:  %s\n", st.Confidence)
	fmt.Printf("match type:  %s\n", diag.MatchType)
	fmt.Printf("exact:       %d\n", st.Exact)
	fmt.Printf("name-only:   %d\n", st.NameLengthOnly)
	fmt.Printf("conflict:    %d\n", st.Conflict)
	fmt.Printf("unmatched:   %d\n", st.Unmatched)
	fmt.Printf("order score: %.3f\n", st.OrderScore)
	for _, s := range diag.Suggestions {
		fmt.Printf("suggestion:  %s\n", s.Message)
	}
	return nil
}
