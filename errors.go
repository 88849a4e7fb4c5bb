package twen

import "fmt"

// LexError reports a malformed numeric literal.
type LexError struct {
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("invalid number %q", e.Text)
}

// SyntaxError reports an unexpected token where a factor was required,
// a missing expected token, or an assignment to a non-identifier.
type SyntaxError struct {
	Got      TokenKind
	Expected TokenKind
	Missing  bool
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Got)
	}
	return fmt.Sprintf("unexpected token %s", e.Got)
}

// SemanticError reports a build-time violation: an unknown function
// name, a wrong argument count, or a wrong-kind argument where a store
// reference is required.
type SemanticError struct {
	Msg string
}

func (e *SemanticError) Error() string {
	return e.Msg
}

// GraphError reports an operation on a node id that is already dead.
type GraphError struct {
	ID int
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("node %d does not exist", e.ID)
}
