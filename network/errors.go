package network

import "fmt"

// MalformedRecordError is the best-effort column count check.
type MalformedRecordError struct {
	Source string
	Line   int
	Fields int
	Want   int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s line %d: found %d fields, but the header requires at least %d", e.Source, e.Line, e.Fields, e.Want)
}

// RecordError locates a data error within a source.
type RecordError struct {
	Source string
	Line   int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
