package dataset

import "fmt"

// ParseError reports a field that could not be parsed. Row is the
// zero-based data row offset (header excluded).
type ParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: parsing %q: %v", e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a data row whose field count does not match the
// header row.
type SchemaError struct {
	Row  int
	Want int
	Got  int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("row %d: expected %d columns, got %d", e.Row, e.Want, e.Got)
}
