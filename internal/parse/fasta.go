package parse

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// FASTA parses a multi-FASTA file into a QueryHeader whose contigs
// carry a real MD5 checksum computed directly from the sequence data,
// per the SAM specification's definition of an M5 checksum: the
// uppercased sequence with no line breaks. Contrast with SAMHeader and
// FAI, which only ever see a checksum someone else already computed.
func FASTA(r io.Reader) (model.QueryHeader, []Warning, error) {
	var warnings []Warning
	var contigs []model.Contig

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			warnings = append(warnings, Warning{Contig: "(unknown)", Message: "unrecognized sequence record, skipping"})
			continue
		}

		name := s.Name()
		length := s.Len()
		if length <= 0 {
			warnings = append(warnings, Warning{Contig: name, Message: "empty sequence, skipping"})
			continue
		}

		raw := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			raw[i] = byte(l)
		}
		sum := md5.Sum([]byte(strings.ToUpper(string(raw))))
		c, err := model.NewContig(name, uint64(length), hex.EncodeToString(sum[:]), nil, model.RoleUnknown)
		if err != nil {
			warnings = append(warnings, Warning{Contig: name, Message: err.Error()})
			continue
		}
		contigs = append(contigs, c)
	}
	if err := sc.Error(); err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: reading FASTA: %w", err)
	}

	qh, err := model.NewQueryHeader(contigs)
	if err != nil {
		return model.QueryHeader{}, warnings, err
	}
	return qh, warnings, nil
}
