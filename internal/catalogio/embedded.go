package catalogio

import (
	"bytes"
	_ "embed"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
)

//go:embed default_catalog.json
var defaultCatalogJSON []byte

// LoadDefault builds the catalog bundled with the binary: GRCh38,
// GRCh37/hg19, and T2T-CHM13v2.0. Operators who want a different set of
// references load their own file with Load instead.
func LoadDefault() (*catalog.Catalog, []string, error) {
	return Load(bytes.NewReader(defaultCatalogJSON))
}
