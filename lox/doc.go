// Package lox implements the Lox scripting language: a rune-based lexer, a
// Pratt parser, a static resolver, and a tree-walking interpreter.
//
// The language supports:
//   - Variable declarations with lexical scoping and shadowing.
//   - First-class functions and closures capturing their defining scope.
//   - Classes with single inheritance, `this`, `super`, and an `init`
//     constructor invoked when a class is called.
//   - Arithmetic, comparison, equality, and short-circuiting and/or.
//   - Control flow via if/else, while, and for (desugared to while).
//   - A `print` statement and a `clock()` builtin.
//
// Programs run in two phases. Resolve walks the parsed statements once and
// computes, for every local variable reference, the number of environment
// frames between the reference and its binding; static errors (duplicate
// declarations, misplaced return/this/super, self-referential initializers)
// are reported from this pass and block execution. Interpret then walks the
// same statements, using the resolved distances for local access and name
// lookup against the globals for everything else, which is what lets a REPL
// define globals across lines.
//
// Comments beginning with `//` are ignored.
package lox
