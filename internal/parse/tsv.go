package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// TSVColumns names which columns of a generic tab-separated file carry
// contig name, length, and (optionally) md5 and aliases. Column indices
// are 0-based.
type TSVColumns struct {
	Name    int
	Length  int
	MD5     int // -1 if absent
	Aliases int // -1 if absent; value is comma-separated
	Header  bool
}

// TSV parses an arbitrary tab-separated contig listing using the given
// column mapping, for catalogs and dictionaries that arrive as a
// spreadsheet export rather than one of the named formats.
func TSV(r io.Reader, cols TSVColumns) (model.QueryHeader, []Warning, error) {
	var warnings []Warning
	var contigs []model.Contig

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		if first && cols.Header {
			first = false
			continue
		}
		first = false

		fields := strings.Split(line, "\t")
		field := func(i int) string {
			if i < 0 || i >= len(fields) {
				return ""
			}
			return fields[i]
		}

		name := field(cols.Name)
		if name == "" {
			warnings = append(warnings, Warning{Contig: line, Message: "missing name column, skipping"})
			continue
		}
		length, err := strconv.ParseUint(field(cols.Length), 10, 64)
		if err != nil || length == 0 {
			warnings = append(warnings, Warning{Contig: name, Message: "invalid length column, skipping"})
			continue
		}

		var aliases []string
		if a := field(cols.Aliases); a != "" {
			aliases = strings.Split(a, ",")
		}

		c, err := model.NewContig(name, length, field(cols.MD5), aliases, model.RoleUnknown)
		if err != nil {
			warnings = append(warnings, Warning{Contig: name, Message: err.Error()})
			continue
		}
		contigs = append(contigs, c)
	}
	if err := sc.Err(); err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: reading TSV: %w", err)
	}

	qh, err := model.NewQueryHeader(contigs)
	if err != nil {
		return model.QueryHeader{}, warnings, err
	}
	return qh, warnings, nil
}
