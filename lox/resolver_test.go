package lox

import (
	"strings"
	"testing"
)

func resolveSource(t *testing.T, source string) (Locals, []*ResolveError) {
	t.Helper()
	statements, err := Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return Resolve(statements)
}

func resolveExpectError(t *testing.T, source, message string) {
	t.Helper()
	_, errs := resolveSource(t, source)
	if len(errs) == 0 {
		t.Fatalf("expected resolve error %q, got none", message)
	}
	for _, err := range errs {
		if err.Message == message {
			return
		}
	}
	t.Fatalf("expected %q among errors, got %v", message, errs)
}

func resolveExpectClean(t *testing.T, source string) Locals {
	t.Helper()
	locals, errs := resolveSource(t, source)
	if len(errs) > 0 {
		t.Fatalf("unexpected resolve errors: %v", errs)
	}
	return locals
}

func TestResolveLocalDistances(t *testing.T) {
	locals := resolveExpectClean(t, `
var g = 1;
{
  var a = 2;
  {
    a;
    g;
  }
}
`)
	// a sits one scope out from its use; g is global and gets no entry.
	distances := map[string]bool{}
	for expr, d := range locals {
		v, ok := expr.(*VariableExpr)
		if !ok {
			continue
		}
		if v.Name == "a" && d == 1 {
			distances["a"] = true
		}
		if v.Name == "g" {
			t.Fatalf("global g should not be in the side table, got distance %d", d)
		}
	}
	if !distances["a"] {
		t.Fatalf("expected a at distance 1, got %v", locals)
	}
}

func TestResolveParameterDistanceZero(t *testing.T) {
	locals := resolveExpectClean(t, `fun id(x) { return x; }`)
	found := false
	for expr, d := range locals {
		if v, ok := expr.(*VariableExpr); ok && v.Name == "x" {
			if d != 0 {
				t.Fatalf("expected distance 0 for parameter, got %d", d)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("parameter use not resolved")
	}
}

func TestResolveSelfInitializerRead(t *testing.T) {
	resolveExpectError(t, `
{
  var a = a;
}
`, "Can't read local variable in its own initializer.")
}

func TestResolveGlobalSelfInitializerAllowed(t *testing.T) {
	// At top level the name searches globals at runtime instead.
	resolveExpectClean(t, `var a = 1; var a = a;`)
}

func TestResolveDuplicateLocalDeclaration(t *testing.T) {
	resolveExpectError(t, `
{
  var twice = 1;
  var twice = 2;
}
`, "Already a variable with this name in this scope.")
}

func TestResolveDuplicateGlobalAllowed(t *testing.T) {
	resolveExpectClean(t, `var twice = 1; var twice = 2;`)
}

func TestResolveTopLevelReturn(t *testing.T) {
	resolveExpectError(t, `return 1;`, "Can't return from top-level code.")
}

func TestResolveReturnValueFromInit(t *testing.T) {
	resolveExpectError(t, `
class Thing {
  init() { return 42; }
}
`, "Can't return a value from an initializer.")
}

func TestResolveBareReturnFromInitAllowed(t *testing.T) {
	resolveExpectClean(t, `
class Thing {
  init() { return; }
}
`)
}

func TestResolveThisOutsideClass(t *testing.T) {
	resolveExpectError(t, `print this;`, "Can't use 'this' outside of a class.")
	resolveExpectError(t, `fun f() { return this; }`, "Can't use 'this' outside of a class.")
}

func TestResolveThisInsideMethodAllowed(t *testing.T) {
	resolveExpectClean(t, `
class Thing {
  self() { return this; }
}
`)
}

func TestResolveSuperOutsideClass(t *testing.T) {
	resolveExpectError(t, `print super.x;`, "Can't use 'super' outside of a class.")
}

func TestResolveSuperWithoutSuperclass(t *testing.T) {
	resolveExpectError(t, `
class Orphan {
  method() { return super.method(); }
}
`, "Can't use 'super' in a class with no superclass.")
}

func TestResolveSelfInheritance(t *testing.T) {
	resolveExpectError(t, `class Ouroboros < Ouroboros {}`, "A class can't inherit from itself.")
}

func TestResolveCollectsMultipleErrors(t *testing.T) {
	_, errs := resolveSource(t, `
return 1;
{
  var a = a;
}
`)
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 errors, got %d: %v", len(errs), errs)
	}
}

func TestResolveErrorRendering(t *testing.T) {
	_, errs := resolveSource(t, "\nreturn 1;")
	if len(errs) == 0 {
		t.Fatalf("expected errors")
	}
	if !strings.HasPrefix(errs[0].Error(), "[line 2] Error: ") {
		t.Fatalf("unexpected rendering: %q", errs[0].Error())
	}
}
