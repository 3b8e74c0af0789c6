// Package catalogio reads and writes the on-disk JSON representation of
// a catalog.Catalog: the format a default catalog ships in and that an
// operator's custom catalog file follows.
package catalogio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fulcrumgenomics/ref-solver/internal/catalog"
	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// FormatVersion is the current catalog file schema version. A file
// carrying a newer version is still loaded — a version bump only ever
// adds fields this build doesn't know to validate — but Load reports
// the mismatch as a warning so the caller can surface it.
const FormatVersion = 1

// document is the on-disk envelope: a version tag, a provenance
// timestamp, and the reference list.
type document struct {
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	References []refEntry `json:"references"`
}

type refEntry struct {
	ID                      string        `json:"id"`
	DisplayName             string        `json:"display_name"`
	Assembly                string        `json:"assembly"`
	Source                  string        `json:"source"`
	DownloadURL             string        `json:"download_url,omitempty"`
	ReportURL               string        `json:"report_url,omitempty"`
	Contigs                 []contigEntry `json:"contigs"`
	ContigsMissingFromFASTA []string      `json:"contigs_missing_from_fasta,omitempty"`
}

type contigEntry struct {
	Name    string   `json:"name"`
	Length  uint64   `json:"length"`
	MD5     string   `json:"md5,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
	Role    string   `json:"role,omitempty"`
}

// Load reads a catalog document from r and builds a catalog.Catalog,
// enforcing the same duplicate-id and duplicate-signature rejection
// rules as catalog.Catalog.Add (a file that would fail to Add is
// considered corrupt, not partially loadable). A document whose
// version is newer than FormatVersion is still loaded; the mismatch is
// returned as a warning, not an error, to allow forward-compatible
// additions a newer writer may have made. Unknown fields are rejected in
// a document of the current version and ignored in a newer one.
func Load(r io.Reader) (*catalog.Catalog, []string, error) {
	var warnings []string

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("catalogio: reading catalog: %w", err)
	}
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, fmt.Errorf("catalogio: decoding catalog: %w", err)
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if probe.Version <= FormatVersion {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("catalogio: decoding catalog: %w", err)
	}
	if doc.Version > FormatVersion {
		warnings = append(warnings, fmt.Sprintf("catalog format version %d is newer than supported version %d; unrecognized fields were ignored", doc.Version, FormatVersion))
	}
	if len(doc.References) == 0 {
		return nil, warnings, fmt.Errorf("catalogio: catalog has no references")
	}

	cat := catalog.New()
	for _, re := range doc.References {
		if len(re.Contigs) == 0 {
			return nil, warnings, fmt.Errorf("catalogio: reference %q has no contigs", re.ID)
		}
		contigs := make([]model.Contig, 0, len(re.Contigs))
		for _, ce := range re.Contigs {
			c, err := model.NewContig(ce.Name, ce.Length, ce.MD5, ce.Aliases, model.ParseSequenceRole(ce.Role))
			if err != nil {
				return nil, warnings, fmt.Errorf("catalogio: reference %q: %w", re.ID, err)
			}
			contigs = append(contigs, c)
		}
		ref, err := model.NewKnownReference(re.ID, re.DisplayName, re.Assembly, re.Source, re.DownloadURL, re.ReportURL, contigs, re.ContigsMissingFromFASTA)
		if err != nil {
			return nil, warnings, fmt.Errorf("catalogio: %w", err)
		}
		if err := cat.Add(ref); err != nil {
			return nil, warnings, fmt.Errorf("catalogio: %w", err)
		}
	}
	return cat, warnings, nil
}

// Save writes cat to w in the document format Load understands. The
// created_at timestamp is the caller's responsibility to supply
// (package catalogio has no clock access, by design: see the module's
// prohibition on ambient time/randomness in code paths that must stay
// deterministic for tests).
func Save(w io.Writer, cat *catalog.Catalog, createdAt time.Time) error {
	doc := document{
		Version:   FormatVersion,
		CreatedAt: createdAt,
	}
	for _, ref := range cat.All() {
		re := refEntry{
			ID:                      ref.ID,
			DisplayName:             ref.DisplayName,
			Assembly:                ref.Assembly,
			Source:                  ref.Source,
			DownloadURL:             ref.DownloadURL,
			ReportURL:               ref.ReportURL,
			ContigsMissingFromFASTA: ref.ContigsMissingFromFASTA,
		}
		for _, c := range ref.Contigs {
			re.Contigs = append(re.Contigs, contigEntry{
				Name:    c.Name,
				Length:  c.Length,
				MD5:     c.MD5,
				Aliases: c.Aliases,
				Role:    c.SequenceRole.String(),
			})
		}
		doc.References = append(doc.References, re)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("catalogio: encoding catalog: %w", err)
	}
	return nil
}
