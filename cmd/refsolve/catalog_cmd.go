package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/catalogio"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the reference catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every reference in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <reference-id>",
	Short: "Show one reference's contigs",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func resolveCatalog() (*catalog.Catalog, error) {
	var cat *catalog.Catalog
	var warnings []string
	var err error

	if catalogPath == "" {
		cat, warnings, err = catalogio.LoadDefault()
	} else {
		var f *os.File
		f, err = os.Open(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", catalogPath, err)
		}
		defer f.Close()
		cat, warnings, err = catalogio.Load(f)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return cat, err
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := resolveCatalog()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDISPLAY NAME\tASSEMBLY\tCONTIGS")
	for _, ref := range cat.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", ref.ID, ref.DisplayName, ref.Assembly, len(ref.Contigs))
	}
	w.Flush()
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := resolveCatalog()
	if err != nil {
		return err
	}

	ref, ok := cat.Get(args[0])
	if !ok {
		return fmt.Errorf("no reference %q in catalog", args[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLENGTH\tMD5\tROLE\tALIASES")
	for _, c := range ref.Contigs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%v\n", c.Name, c.Length, c.MD5, c.SequenceRole, c.Aliases)
	}
	w.Flush()
	return nil
}
