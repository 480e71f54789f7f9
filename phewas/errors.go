package phewas

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSNPColumn       = errors.New("unable to identify the column corresponding to SNP name")
	ErrMissingPhenotypeColumn = errors.New("unable to identify the column corresponding to phenotype name, which is required to join onto a node map")
)

// MissingColumnError reports a mandatory column that could not be resolved.
// Source is empty when the problem was found in the configuration itself.
type MissingColumnError struct {
	Source string
	Role   Role
	Name   string
	Header Record
}

func (e *MissingColumnError) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Unwrap().Error())
	if e.Source != "" {
		fmt.Fprintf(&b, " in file %s", e.Source)
	}
	if e.Name == "" {
		b.WriteString(" (no column name was configured)")
	} else {
		fmt.Fprintf(&b, " (looked for %q", e.Name)
		if e.Header != nil {
			fmt.Fprintf(&b, " in header %q", strings.Join(e.Header, " | "))
		}
		b.WriteString(")")
	}

	return b.String()
}

func (e *MissingColumnError) Unwrap() error {
	if e.Role == RolePhenotype {
		return ErrMissingPhenotypeColumn
	}

	return ErrMissingSNPColumn
}

// ParseError is returned when a numeric column cannot be parsed. It is fatal:
// rows are never silently skipped.
type ParseError struct {
	Role  Role
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s value %q: %v", e.Role, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
