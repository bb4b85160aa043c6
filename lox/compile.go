package lox

import "errors"

// Compile scans and parses source into a statement list. All parse errors
// are reported together.
func Compile(source string) ([]Statement, error) {
	p := newParser(source)
	statements, errs := p.ParseProgram()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return statements, nil
}
