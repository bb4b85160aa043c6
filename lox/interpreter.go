package lox

import (
	"errors"
	"io"
	"maps"
	"os"
)

// Options configures an Interpreter. The zero value writes program output
// to standard out.
type Options struct {
	Stdout io.Writer
}

// Interpreter is the tree-walking evaluator. It owns the globals and the
// accumulated side table; the current environment is threaded through the
// recursive walk, so an aborted statement never leaves a stale scope
// behind.
type Interpreter struct {
	globals *Env
	locals  Locals
	stdout  io.Writer
}

func NewInterpreter(opts Options) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	in := &Interpreter{
		globals: newEnv(nil),
		locals:  make(Locals),
		stdout:  opts.Stdout,
	}
	in.globals.Define("clock", NewBuiltin("clock", nil, builtinClock))
	return in
}

// Interpret executes top-level statements in order, halting at the first
// failure. The locals table from Resolve is merged into the interpreter's
// own, so a REPL can feed separately resolved lines to one interpreter and
// keep its globals across them. When the final statement is an expression
// statement its value is returned for the driver to echo; otherwise the
// result is nil.
func (in *Interpreter) Interpret(statements []Statement, locals Locals) (Value, error) {
	maps.Copy(in.locals, locals)

	last := NewNil()
	for _, stmt := range statements {
		val, returned, err := in.executeStatement(stmt, in.globals)
		if err != nil {
			return NewNil(), err
		}
		if returned {
			// The resolver rejects top-level returns, so the signal can
			// only get here through an interpreter defect.
			return NewNil(), errorAt(ErrInternal, stmt.Pos(), "return escaped top-level code.")
		}
		last = val
	}
	return last, nil
}

// Run compiles, resolves, and interprets source against the interpreter.
// Parse and resolve failures are reported together and nothing executes
// when any occurred.
func (in *Interpreter) Run(source string) (Value, error) {
	statements, err := Compile(source)
	if err != nil {
		return NewNil(), err
	}
	locals, resolveErrs := Resolve(statements)
	if len(resolveErrs) > 0 {
		errs := make([]error, len(resolveErrs))
		for i, resolveErr := range resolveErrs {
			errs[i] = resolveErr
		}
		return NewNil(), errors.Join(errs...)
	}
	return in.Interpret(statements, locals)
}

// Globals returns a snapshot of the global frame, for driver display.
func (in *Interpreter) Globals() map[string]Value {
	out := make(map[string]Value, len(in.globals.values))
	maps.Copy(out, in.globals.values)
	return out
}
