package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fulcrumgenomics/ref-solver/internal/model"
)

// ncbiColumn indexes the columns of an NCBI assembly_report.txt, whose
// header line (the last comment before the data, "# Sequence-Name\t...")
// is read to locate each field rather than assumed fixed, since NCBI has
// added columns across report versions.
type ncbiColumn int

const (
	colSequenceName ncbiColumn = iota
	colSequenceRole
	colGenBankAccn
	colRefSeqAccn
	colSequenceLength
	colUCSCStyleName
	ncbiColumnCount
)

var ncbiColumnNames = map[string]ncbiColumn{
	"Sequence-Name":   colSequenceName,
	"Sequence-Role":   colSequenceRole,
	"GenBank-Accn":    colGenBankAccn,
	"RefSeq-Accn":     colRefSeqAccn,
	"Sequence-Length": colSequenceLength,
	"UCSC-style-name": colUCSCStyleName,
}

var ncbiRoleNames = map[string]model.SequenceRole{
	"assembled-molecule":   model.RoleAssembledMolecule,
	"alt-scaffold":         model.RoleAltScaffold,
	"fix-patch":            model.RoleFixPatch,
	"novel-patch":          model.RoleNovelPatch,
	"unlocalized-scaffold": model.RoleUnlocalizedScaffold,
	"unplaced-scaffold":    model.RoleUnplacedScaffold,
}

// NCBIReport parses an NCBI genome assembly_report.txt into a
// QueryHeader, using the GenBank and RefSeq accessions and the
// UCSC-style name as aliases of the report's primary Sequence-Name.
func NCBIReport(r io.Reader) (model.QueryHeader, []Warning, error) {
	var warnings []Warning
	var contigs []model.Contig
	var colIndex map[ncbiColumn]int

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			header := strings.TrimPrefix(line, "# ")
			if idx := headerColumns(header); idx != nil {
				colIndex = idx
			}
			continue
		}
		if colIndex == nil {
			return model.QueryHeader{}, warnings, fmt.Errorf("parse: NCBI report has no recognizable header line")
		}

		fields := strings.Split(line, "\t")
		get := func(col ncbiColumn) string {
			i, ok := colIndex[col]
			if !ok || i >= len(fields) {
				return ""
			}
			return fields[i]
		}

		name := get(colSequenceName)
		if name == "" {
			continue
		}
		lengthStr := get(colSequenceLength)
		length, err := strconv.ParseUint(lengthStr, 10, 64)
		if err != nil || length == 0 {
			warnings = append(warnings, Warning{Contig: name, Message: "invalid Sequence-Length, skipping"})
			continue
		}

		role := model.RoleUnknown
		if r, ok := ncbiRoleNames[strings.TrimSpace(get(colSequenceRole))]; ok {
			role = r
		}

		var aliases []string
		for _, a := range []string{get(colGenBankAccn), get(colRefSeqAccn), get(colUCSCStyleName)} {
			if a != "" && a != "na" {
				aliases = append(aliases, a)
			}
		}

		c, err := model.NewContig(name, length, "", aliases, role)
		if err != nil {
			warnings = append(warnings, Warning{Contig: name, Message: err.Error()})
			continue
		}
		contigs = append(contigs, c)
	}
	if err := sc.Err(); err != nil {
		return model.QueryHeader{}, warnings, fmt.Errorf("parse: reading NCBI report: %w", err)
	}

	qh, err := model.NewQueryHeader(contigs)
	if err != nil {
		return model.QueryHeader{}, warnings, err
	}
	return qh, warnings, nil
}

// headerColumns recognizes the NCBI report's column header line and
// returns a column index, or nil if the line doesn't look like one.
func headerColumns(header string) map[ncbiColumn]int {
	fields := strings.Split(header, "\t")
	found := make(map[ncbiColumn]int)
	for i, f := range fields {
		if col, ok := ncbiColumnNames[strings.TrimSpace(f)]; ok {
			found[col] = i
		}
	}
	if _, ok := found[colSequenceName]; !ok {
		return nil
	}
	if _, ok := found[colSequenceLength]; !ok {
		return nil
	}
	return found
}
