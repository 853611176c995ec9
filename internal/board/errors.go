package board

import "fmt"

// ParseError reports a malformed FEN/EPD string, an illegal square edit,
// or an unparsable move string. The position is left unchanged when a
// ParseError is returned from a parsing entry point.
type ParseError struct {
	reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.reason)
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{reason: fmt.Sprintf(format, args...)}
}

// InvariantError reports a failure of the debug consistency checker
// (CheckInvariants). It is never returned by ordinary play; it exists so
// that a caller running with extra verification enabled can detect a bug
// in this package rather than silently computing garbage.
type InvariantError struct {
	reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.reason)
}

func invariantErrorf(format string, args ...any) error {
	return &InvariantError{reason: fmt.Sprintf(format, args...)}
}
