// Package parse builds model.QueryHeader values from the surface
// formats an alignment, variant, or reference file might carry its
// sequence dictionary in. These are the "external collaborators" of
// the core: every parser funnels through model.NewQueryHeader so
// derived-set population happens in exactly one place.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// Warning is a non-fatal diagnostic raised while building a
// QueryHeader: a problem with one contig's data that the §7
// InvalidContig error class downgrades to a dropped field rather than
// a failure.
type Warning struct {
	Contig  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Contig, w.Message)
}

// SAMHeader parses the @SQ lines of a SAM header (the same text also
// found verbatim at the top of an uncompressed BAM/CRAM, and shared by
// Picard .dict files) into a QueryHeader.
//
// Tag parsing is done directly against the @SQ line grammar rather than
// through a full alignment reader, since only the header is available
// for this use case; the resulting contigs are nonetheless assembled
// into biogo/hts/sam Reference and Header values so downstream code
// that already speaks biogo/hts (e.g. a BAM reader's h.Refs()) can be
// handed the same types this package produces.
func SAMHeader(r io.Reader) (model.QueryHeader, []Warning, error) {
	var warnings []Warning
	var refs []*sam.Reference
	// md5 and aliases aren't round-tripped through sam.Reference (the
	// type has no accessor for either); tracked here in parallel, keyed
	// by reference index, and joined back in after sam.NewHeader has
	// validated the dictionary.
	var md5s []string
	var aliasLists [][]string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "@SQ\t") {
			if strings.HasPrefix(line, "@") {
				continue
			}
			// A non-header line ends the header block (e.g. the first
			// alignment record of a plain SAM file).
			break
		}
		tags := parseTags(line[len("@SQ\t"):])

		name := tags["SN"]
		if name == "" {
			warnings = append(warnings, Warning{Contig: "(unknown)", Message: "missing SN tag, skipping"})
			continue
		}
		lengthStr := tags["LN"]
		length, err := strconv.ParseUint(lengthStr, 10, 64)
		if err != nil || length == 0 {
			warnings = append(warnings, Warning{Contig: name, Message: "missing or invalid LN tag, skipping"})
			continue
		}

		var aliases []string
		if an := tags["AN"]; an != "" {
			aliases = strings.Split(an, ",")
		}

		md5 := tags["M5"]
		ref, err := sam.NewReference(name, tags["AS"], tags["SP"], int(length), tags["UR"], nil)
		if err != nil {
			warnings = append(warnings, Warning{Contig: name, Message: err.Error()})
			continue
		}
		refs = append(refs, ref)
		md5s = append(md5s, md5)
		aliasLists = append(aliasLists, aliases)
	}
	if err := sc.Err(); err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: reading SAM header: %w", err)
	}

	h, err := sam.NewHeader(nil, refs)
	if err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: assembling SAM header: %w", err)
	}

	contigs, cWarnings := contigsFromSAMRefs(h.Refs(), md5s, aliasLists)
	warnings = append(warnings, cWarnings...)

	qh, err := model.NewQueryHeader(contigs)
	if err != nil {
		return model.QueryHeader{}, warnings, err
	}
	return qh, warnings, nil
}

// Dict parses a Picard-style .dict file, which shares the @SQ line
// grammar with a SAM header.
func Dict(r io.Reader) (model.QueryHeader, []Warning, error) {
	return SAMHeader(r)
}

func parseTags(rest string) map[string]string {
	tags := make(map[string]string)
	for _, field := range strings.Split(rest, "\t") {
		parts := strings.SplitN(field, ":", 2)
		if len(parts) != 2 {
			continue
		}
		tags[parts[0]] = parts[1]
	}
	return tags
}

func contigsFromSAMRefs(refs []*sam.Reference, md5s []string, aliasLists [][]string) ([]model.Contig, []Warning) {
	var contigs []model.Contig
	var warnings []Warning
	for i, r := range refs {
		c, err := model.NewContig(r.Name(), uint64(r.Len()), md5s[i], aliasLists[i], model.RoleUnknown)
		if err != nil {
			warnings = append(warnings, Warning{Contig: r.Name(), Message: err.Error()})
			continue
		}
		if c.MD5 == "" && md5s[i] != "" {
			warnings = append(warnings, Warning{Contig: r.Name(), Message: "invalid M5 tag, dropping checksum"})
		}
		contigs = append(contigs, c)
	}
	return contigs, warnings
}
