package phewas

import "strings"

// Record is one line of a delimited PheWAS file.
type Record []string

// SplitRecord splits a line on a literal delimiter. No quoting rules apply.
// Line endings are trimmed from the final field.
func SplitRecord(line, delim string) Record {
	rec := Record(strings.Split(line, delim))
	rec[len(rec)-1] = strings.TrimRight(rec[len(rec)-1], "\r\n")

	return rec
}

// Field returns the value at idx, which the caller must have checked against
// the record length.
func (r Record) Field(idx int64) string {
	return r[idx]
}
