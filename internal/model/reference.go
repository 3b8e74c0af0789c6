package model

import "fmt"

// KnownReference is one catalog entry: a published reference genome
// build together with its sequence dictionary and provenance metadata.
type KnownReference struct {
	ID          string
	DisplayName string
	Assembly    string
	Source      string
	DownloadURL string
	ReportURL   string

	Contigs []Contig

	// ContigsMissingFromFASTA lists names declared in the official
	// assembly report but absent from this FASTA distribution, e.g.
	// CHM13's reuse of the rCRS mitochondrial sequence.
	ContigsMissingFromFASTA []string

	DerivedSets
}

// NewKnownReference constructs a KnownReference, validating the
// (name, length) uniqueness invariant across primary names and
// computing derived sets. It fails if contigs exceeds MaxContigs.
func NewKnownReference(id, displayName, assembly, source, downloadURL, reportURL string, contigs []Contig, missing []string) (KnownReference, error) {
	if id == "" {
		return KnownReference{}, fmt.Errorf("model: reference id must not be empty")
	}
	if displayName == "" {
		return KnownReference{}, fmt.Errorf("model: reference %q: display name must not be empty", id)
	}
	if len(contigs) > MaxContigs {
		return KnownReference{}, fmt.Errorf("model: reference %q has %d contigs, exceeds cap of %d", id, len(contigs), MaxContigs)
	}

	seen := make(map[NameLengthKey]struct{}, len(contigs))
	for _, c := range contigs {
		key := NameLengthKey{Name: c.Name, Length: c.Length}
		if _, dup := seen[key]; dup {
			return KnownReference{}, fmt.Errorf("model: reference %q: duplicate primary (name,length) pair %v", id, key)
		}
		seen[key] = struct{}{}
	}

	cp := append([]Contig(nil), contigs...)
	return KnownReference{
		ID:                      id,
		DisplayName:             displayName,
		Assembly:                assembly,
		Source:                  source,
		DownloadURL:             downloadURL,
		ReportURL:               reportURL,
		Contigs:                 cp,
		ContigsMissingFromFASTA: append([]string(nil), missing...),
		DerivedSets:             computeDerivedSets(cp),
	}, nil
}
