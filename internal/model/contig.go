// Package model defines the core data types shared by the catalog and
// matching engine: contigs, query headers, and known references, along
// with the derived sets each carries for fast lookup.
package model

import (
	"fmt"
	"strings"

	"github.com/fulcrumgenomics/ref-solver/internal/ids"
)

// SequenceRole classifies a contig's place in an assembly, mirroring the
// role column of an NCBI assembly report.
type SequenceRole int

const (
	RoleUnknown SequenceRole = iota
	RoleAssembledMolecule
	RoleAltScaffold
	RoleFixPatch
	RoleNovelPatch
	RoleUnlocalizedScaffold
	RoleUnplacedScaffold
)

var roleNames = map[SequenceRole]string{
	RoleUnknown:             "unknown",
	RoleAssembledMolecule:   "assembled-molecule",
	RoleAltScaffold:         "alt-scaffold",
	RoleFixPatch:            "fix-patch",
	RoleNovelPatch:          "novel-patch",
	RoleUnlocalizedScaffold: "unlocalized-scaffold",
	RoleUnplacedScaffold:    "unplaced-scaffold",
}

var roleValues = func() map[string]SequenceRole {
	m := make(map[string]SequenceRole, len(roleNames))
	for k, v := range roleNames {
		m[v] = k
	}
	return m
}()

// String returns the kebab-case wire representation of the role.
func (r SequenceRole) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// ParseSequenceRole parses the kebab-case role spelling used by NCBI
// assembly reports and by the catalog JSON format. Unrecognized input
// maps to RoleUnknown rather than failing, since the role is advisory.
func ParseSequenceRole(s string) SequenceRole {
	if r, ok := roleValues[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r
	}
	return RoleUnknown
}

// MarshalJSON implements json.Marshaler.
func (r SequenceRole) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *SequenceRole) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*r = ParseSequenceRole(s)
	return nil
}

// Contig is a single named sequence with a length and optional
// checksum, alias set, and assembly metadata. Contigs are immutable
// once constructed.
type Contig struct {
	Name         string
	Length       uint64
	MD5          string // normalized lowercase hex, empty if absent
	Assembly     string
	URI          string
	Species      string
	Aliases      []string
	SequenceRole SequenceRole
}

// NewContig constructs a Contig, validating and normalizing md5. An
// invalid md5 is dropped silently (the caller is expected to surface
// the accompanying warning; see package parse). length must be
// positive or an error is returned per the InvalidContig error class.
func NewContig(name string, length uint64, md5 string, aliases []string, role SequenceRole) (Contig, error) {
	if name == "" {
		return Contig{}, fmt.Errorf("model: contig name must not be empty")
	}
	if length == 0 {
		return Contig{}, fmt.Errorf("model: contig %q: length must be positive", name)
	}
	normalized := ""
	if md5 != "" {
		if n, ok := ids.NormalizeMD5(md5); ok {
			normalized = n
		}
		// Invalid MD5 is dropped, not an error: §7 InvalidContig downgrade.
	}
	c := Contig{
		Name:         name,
		Length:       length,
		MD5:          normalized,
		Aliases:      append([]string(nil), aliases...),
		SequenceRole: role,
	}
	return c, nil
}

// namePrimaryChromosomes enumerates the canonical 1-22,X,Y spellings
// under both NCBI and UCSC naming, used to recognize primary
// chromosomes regardless of convention.
var namePrimaryChromosomes = func() map[string]struct{} {
	m := make(map[string]struct{})
	ncbi := []string{
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
		"21", "22", "X", "Y",
	}
	for _, n := range ncbi {
		m[n] = struct{}{}
		m["chr"+n] = struct{}{}
	}
	return m
}()

// IsPrimaryChromosome reports whether the contig's primary name is one
// of 1-22, X, Y under either NCBI or UCSC spelling. Aliases are not
// consulted: the classification is about how the file itself names the
// contig.
func (c Contig) IsPrimaryChromosome() bool {
	_, ok := namePrimaryChromosomes[c.Name]
	return ok
}

var mitochondrialNames = map[string]struct{}{
	"mt": {}, "m": {}, "chrm": {}, "chrmt": {}, "mito": {},
	"mitochondrion": {}, "rcrs": {}, "nc_012920.1": {},
}

// IsMitochondrial reports whether the contig's primary name denotes the
// mitochondrial genome, recognizing common spellings across reference
// builds plus any name containing "mitochon".
func (c Contig) IsMitochondrial() bool {
	lower := strings.ToLower(c.Name)
	if _, ok := mitochondrialNames[lower]; ok {
		return true
	}
	return strings.Contains(lower, "mitochon")
}

// HasName reports whether name equals the contig's primary name or any
// of its aliases.
func (c Contig) HasName(name string) bool {
	if c.Name == name {
		return true
	}
	for _, a := range c.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

// NameLengthKey is the (name, length) pair used as an index and lookup
// key throughout the catalog and matcher. Every primary name and every
// alias of a contig participates under this key.
type NameLengthKey struct {
	Name   string
	Length uint64
}

// NameLengthKeys returns one key for the contig's primary name and one
// for every alias, all sharing the contig's length.
func (c Contig) NameLengthKeys() []NameLengthKey {
	keys := make([]NameLengthKey, 0, 1+len(c.Aliases))
	keys = append(keys, NameLengthKey{Name: c.Name, Length: c.Length})
	for _, a := range c.Aliases {
		keys = append(keys, NameLengthKey{Name: a, Length: c.Length})
	}
	return keys
}
