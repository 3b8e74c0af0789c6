// Command refsolve identifies which published reference genome a
// sequence dictionary (a SAM/BAM header, a .dict, a .fai, or an NCBI
// assembly report) was built against.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulcrumgenomics/ref-solver/internal/logging"
)

var (
	catalogPath string
	configPath  string
	limit       int
	minScore    float64
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "refsolve",
	Short: "Identify reference genomes from sequence dictionaries",
	Long: `refsolve matches the sequence dictionary of a SAM/BAM header, Picard
.dict file, FASTA .fai index, or NCBI assembly report against a catalog
of published reference genome builds, and reports how well each
candidate build matches, or why none do.`,
	Example: `  # Identify against the bundled catalog
  refsolve identify aligned.bam.header

  # Score one specific candidate by id
  refsolve score --reference grch38-ncbi query.dict

  # List the references in a catalog
  refsolve catalog list --catalog my-catalog.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Configure(logging.Options{Debug: debug})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a catalog JSON file (defaults to the bundled catalog)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	identifyCmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of candidate matches to report")
	identifyCmd.Flags().Float64Var(&minScore, "min-score", 0, "Override the configured minimum composite score")
	identifyCmd.Flags().StringVar(&inputFormat, "format", "auto", "Input format: auto|sam|dict|fai|ncbi-report|fasta")
	identifyCmd.Flags().BoolVar(&outputJSON, "json", false, "Render results as JSON instead of a text table")

	rootCmd.AddCommand(identifyCmd, scoreCmd, catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
