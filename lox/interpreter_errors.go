package lox

import "fmt"

// ErrorKind classifies runtime failures. The internal return signal is not
// an error and never appears here; statement execution carries it as a
// separate result.
type ErrorKind string

const (
	ErrOperand           ErrorKind = "OperandError"
	ErrUndefinedVariable ErrorKind = "UndefinedVariable"
	ErrUndefinedProperty ErrorKind = "UndefinedProperty"
	ErrNotCallable       ErrorKind = "NotCallable"
	ErrArity             ErrorKind = "ArityError"
	ErrInternal          ErrorKind = "InternalError"
)

// RuntimeError aborts the remainder of the current Interpret call. There is
// no partial-statement recovery; the driver reports the message and, in
// REPL mode, accepts the next line against the surviving globals.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Pos     Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Message)
}

func errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
