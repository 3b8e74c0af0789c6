// Package ids provides validation and normalization of sequence MD5
// checksums and the set-identity signature hash used to recognize a
// dictionary independent of contig order.
package ids

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// IsValidMD5 reports whether s is a 32 character hexadecimal string, as
// used for the M5 tag of a SAM/BAM/CRAM sequence dictionary entry.
// Case is not significant.
func IsValidMD5(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeMD5 lowercases s and reports whether it is a valid MD5 hex
// string. Invalid input yields the empty string with ok false.
func NormalizeMD5(s string) (normalized string, ok bool) {
	if !IsValidMD5(s) {
		return "", false
	}
	return strings.ToLower(s), true
}

// ComputeSignature returns the set-identity hash of md5s: the MD5 of the
// lexicographically sorted, comma-joined checksums. The signature is
// invariant to the order of md5s and is the empty string for an empty
// set.
func ComputeSignature(md5s []string) string {
	if len(md5s) == 0 {
		return ""
	}
	sorted := make([]string, len(md5s))
	copy(sorted, md5s)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(strings.Join(sorted, ",")))
	return hex.EncodeToString(sum[:])
}

// ComputeSignatureSet is a convenience wrapper over ComputeSignature for
// callers holding their checksums in a set rather than a slice.
func ComputeSignatureSet(md5s map[string]struct{}) string {
	if len(md5s) == 0 {
		return ""
	}
	flat := make([]string, 0, len(md5s))
	for m := range md5s {
		flat = append(flat, m)
	}
	return ComputeSignature(flat)
}
