package lox

import "fmt"

// Locals is the resolver's side table: for every local variable reference,
// the number of environment frames between the reference and its binding.
// References without an entry are globals and get looked up by name at run
// time. Keys are node identities, so distinct references to the same name
// resolve independently.
type Locals map[Expression]int

// ResolveError is a static error found before execution. Any resolve error
// blocks interpretation of the program entirely.
type ResolveError struct {
	Pos     Position
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Message)
}

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type resolver struct {
	scopes []map[string]bool
	locals Locals
	errors []*ResolveError

	currentFunction functionType
	currentClass    classType
}

// Resolve runs the single static pass over the statements and returns the
// side table of scope distances. The pass keeps going after an error so a
// program's static problems are all reported at once; a non-empty error
// list means the table must not be executed.
func Resolve(statements []Statement) (Locals, []*ResolveError) {
	r := &resolver{locals: make(Locals)}
	r.resolveStatements(statements)
	return r.locals, r.errors
}

func (r *resolver) errorAt(pos Position, format string, args ...any) {
	r.errors = append(r.errors, &ResolveError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) resolveStatements(statements []Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *resolver) resolveStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name, s.Pos())
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name, s.Pos())
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ExpressionStmt:
		r.resolveExpression(s.Expression)
	case *PrintStmt:
		r.resolveExpression(s.Expression)
	case *IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}
	case *WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ReturnStmt:
		if r.currentFunction == funcNone {
			r.errorAt(s.Pos(), "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == funcInitializer {
				r.errorAt(s.Pos(), "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *ClassStmt:
		r.resolveClass(s)
	}
}

func (r *resolver) resolveClass(s *ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name, s.Pos())
	r.define(s.Name)

	if s.Superclass != nil {
		r.currentClass = classSubclass
		if s.Superclass.Name == s.Name {
			r.errorAt(s.Superclass.Pos(), "A class can't inherit from itself.")
		}
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range s.Methods {
		kind := funcMethod
		if method.Name == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *resolver) resolveFunction(fn *FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param, fn.Pos())
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) resolveExpression(expr Expression) {
	switch e := expr.(type) {
	case *LiteralExpr:
	case *VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				r.errorAt(e.Pos(), "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, e.Name)
	case *AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(expr, e.Name)
	case *BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *UnaryExpr:
		r.resolveExpression(e.Right)
	case *CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *GetExpr:
		r.resolveExpression(e.Object)
	case *SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *GroupingExpr:
		r.resolveExpression(e.Expression)
	case *ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Pos(), "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, "this")
	case *SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Pos(), "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.errorAt(e.Pos(), "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(expr, "super")
	}
}

// resolveLocal scans the scope stack from innermost outward and records the
// distance to the first scope owning the name. References to names in no
// local scope get no entry and fall through to the globals at run time.
func (r *resolver) resolveLocal(expr Expression, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks the name as existing-but-uninitialized in the innermost
// scope. Top-level declarations target the globals and are exempt from the
// duplicate check, since a REPL redefines them freely.
func (r *resolver) declare(name string, pos Position) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name]; ok {
		r.errorAt(pos, "Already a variable with this name in this scope.")
	}
	scope[name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}
