package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// FAI parses a samtools .fai FASTA index: one line per contig,
// NAME\tLENGTH\tOFFSET\tLINEBASES\tLINEWIDTH. Only name and length carry
// sequence-identity information; the trailing offset columns are
// consumed and discarded.
func FAI(r io.Reader) (model.QueryHeader, []Warning, error) {
	var warnings []Warning
	var contigs []model.Contig

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			warnings = append(warnings, Warning{Contig: line, Message: "malformed .fai line, skipping"})
			continue
		}
		name := fields[0]
		length, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil || length == 0 {
			warnings = append(warnings, Warning{Contig: name, Message: "invalid length, skipping"})
			continue
		}
		c, err := model.NewContig(name, length, "", nil, model.RoleUnknown)
		if err != nil {
			warnings = append(warnings, Warning{Contig: name, Message: err.Error()})
			continue
		}
		contigs = append(contigs, c)
	}
	if err := sc.Err(); err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: reading .fai: %w", err)
	}

	qh, err := model.NewQueryHeader(contigs)
	if err != nil {
		return model.QueryHeader{}, warnings, err
	}
	return qh, warnings, nil
}
