package sbud

import "fmt"

// ParseError reports malformed input: an SBUD document, a base64 payload or
// a YAML label file.
type ParseError struct {
	Source  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
