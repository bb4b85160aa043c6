package lox

import (
	"strings"
	"testing"
)

func parseProgram(t *testing.T, source string) []Statement {
	t.Helper()
	p := newParser(source)
	statements, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs)
	}
	return statements
}

func parseExpectErrors(t *testing.T, source string) []error {
	t.Helper()
	p := newParser(source)
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatalf("expected parse errors, got none")
	}
	return errs
}

func TestParseVarStatement(t *testing.T) {
	statements := parseProgram(t, `var answer = 42;`)
	if len(statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(statements))
	}
	stmt, ok := statements[0].(*VarStmt)
	if !ok {
		t.Fatalf("expected *VarStmt, got %T", statements[0])
	}
	if stmt.Name != "answer" {
		t.Fatalf("expected name answer, got %q", stmt.Name)
	}
	lit, ok := stmt.Initializer.(*LiteralExpr)
	if !ok {
		t.Fatalf("expected literal initializer, got %T", stmt.Initializer)
	}
	if lit.Value.Number() != 42 {
		t.Fatalf("expected 42, got %v", lit.Value)
	}
}

func TestParseVarWithoutInitializer(t *testing.T) {
	statements := parseProgram(t, `var x;`)
	stmt := statements[0].(*VarStmt)
	if stmt.Initializer != nil {
		t.Fatalf("expected nil initializer, got %T", stmt.Initializer)
	}
}

func TestParsePrecedence(t *testing.T) {
	statements := parseProgram(t, `1 + 2 * 3;`)
	expr := statements[0].(*ExpressionStmt).Expression
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr, got %T", expr)
	}
	if bin.Operator != tokenPlus {
		t.Fatalf("expected + at root, got %v", bin.Operator)
	}
	right, ok := bin.Right.(*BinaryExpr)
	if !ok || right.Operator != tokenAsterisk {
		t.Fatalf("expected * on the right, got %T", bin.Right)
	}
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	statements := parseProgram(t, `(1 + 2) * 3;`)
	expr := statements[0].(*ExpressionStmt).Expression
	bin := expr.(*BinaryExpr)
	if bin.Operator != tokenAsterisk {
		t.Fatalf("expected * at root, got %v", bin.Operator)
	}
	if _, ok := bin.Left.(*GroupingExpr); !ok {
		t.Fatalf("expected grouping on the left, got %T", bin.Left)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	statements := parseProgram(t, `a = b = 1;`)
	expr := statements[0].(*ExpressionStmt).Expression
	assign, ok := expr.(*AssignExpr)
	if !ok {
		t.Fatalf("expected *AssignExpr, got %T", expr)
	}
	if assign.Name != "a" {
		t.Fatalf("expected target a, got %q", assign.Name)
	}
	inner, ok := assign.Value.(*AssignExpr)
	if !ok || inner.Name != "b" {
		t.Fatalf("expected nested assignment to b, got %T", assign.Value)
	}
}

func TestParsePropertyAssignmentBecomesSet(t *testing.T) {
	statements := parseProgram(t, `p.x = 1;`)
	expr := statements[0].(*ExpressionStmt).Expression
	set, ok := expr.(*SetExpr)
	if !ok {
		t.Fatalf("expected *SetExpr, got %T", expr)
	}
	if set.Name != "x" {
		t.Fatalf("expected property x, got %q", set.Name)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	errs := parseExpectErrors(t, `1 = 2;`)
	if !strings.Contains(errs[0].Error(), "invalid assignment target") {
		t.Fatalf("unexpected error: %v", errs[0])
	}
}

func TestParseCallChain(t *testing.T) {
	statements := parseProgram(t, `f(1)(2);`)
	expr := statements[0].(*ExpressionStmt).Expression
	outer, ok := expr.(*CallExpr)
	if !ok {
		t.Fatalf("expected *CallExpr, got %T", expr)
	}
	inner, ok := outer.Callee.(*CallExpr)
	if !ok {
		t.Fatalf("expected nested call callee, got %T", outer.Callee)
	}
	if len(inner.Arguments) != 1 || len(outer.Arguments) != 1 {
		t.Fatalf("unexpected argument counts: %d, %d", len(inner.Arguments), len(outer.Arguments))
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	// or binds looser than and.
	statements := parseProgram(t, `a or b and c;`)
	expr := statements[0].(*ExpressionStmt).Expression
	or, ok := expr.(*LogicalExpr)
	if !ok || or.Operator != tokenOr {
		t.Fatalf("expected or at root, got %T", expr)
	}
	and, ok := or.Right.(*LogicalExpr)
	if !ok || and.Operator != tokenAnd {
		t.Fatalf("expected and on the right, got %T", or.Right)
	}
}

func TestParseFunctionStatement(t *testing.T) {
	statements := parseProgram(t, `fun add(a, b) { return a + b; }`)
	fn, ok := statements[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("expected *FunctionStmt, got %T", statements[0])
	}
	if fn.Name != "add" {
		t.Fatalf("expected name add, got %q", fn.Name)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("unexpected params: %v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
}

func TestParseClassStatement(t *testing.T) {
	statements := parseProgram(t, `
class Dog < Animal {
  init(name) { this.name = name; }
  speak() { print "woof"; }
}`)
	cls, ok := statements[0].(*ClassStmt)
	if !ok {
		t.Fatalf("expected *ClassStmt, got %T", statements[0])
	}
	if cls.Name != "Dog" {
		t.Fatalf("expected name Dog, got %q", cls.Name)
	}
	if cls.Superclass == nil || cls.Superclass.Name != "Animal" {
		t.Fatalf("expected superclass Animal, got %v", cls.Superclass)
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
}

func TestParseClassWithoutSuperclass(t *testing.T) {
	statements := parseProgram(t, `class Empty {}`)
	cls := statements[0].(*ClassStmt)
	if cls.Superclass != nil {
		t.Fatalf("expected no superclass, got %v", cls.Superclass)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	statements := parseProgram(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	block, ok := statements[0].(*BlockStmt)
	if !ok {
		t.Fatalf("expected enclosing block, got %T", statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer plus loop, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*VarStmt); !ok {
		t.Fatalf("expected var initializer, got %T", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected while loop, got %T", block.Statements[1])
	}
	body, ok := loop.Body.(*BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected body block with statement and increment, got %T", loop.Body)
	}
}

func TestParseForWithEmptyClauses(t *testing.T) {
	statements := parseProgram(t, `for (;;) print "loop";`)
	loop, ok := statements[0].(*WhileStmt)
	if !ok {
		t.Fatalf("expected while loop, got %T", statements[0])
	}
	cond, ok := loop.Condition.(*LiteralExpr)
	if !ok || !cond.Value.Bool() {
		t.Fatalf("expected literal true condition, got %T", loop.Condition)
	}
}

func TestParseSuperExpression(t *testing.T) {
	statements := parseProgram(t, `
class B < A {
  method() { return super.method(); }
}`)
	cls := statements[0].(*ClassStmt)
	ret := cls.Methods[0].Body[0].(*ReturnStmt)
	call := ret.Value.(*CallExpr)
	sup, ok := call.Callee.(*SuperExpr)
	if !ok {
		t.Fatalf("expected *SuperExpr callee, got %T", call.Callee)
	}
	if sup.Method != "method" {
		t.Fatalf("unexpected method name: %q", sup.Method)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// The parser synchronizes at statement boundaries and keeps going, so a
	// broken statement still surfaces later errors.
	p := newParser(`var = 1; var 2; print missing_semicolon`)
	_, errs := p.ParseProgram()
	if len(errs) < 2 {
		t.Fatalf("expected multiple errors, got %d: %v", len(errs), errs)
	}
}

func TestParseErrorIncludesPosition(t *testing.T) {
	errs := parseExpectErrors(t, "var x = 1;\nvar = 2;")
	if !strings.Contains(errs[0].Error(), "2:") {
		t.Fatalf("expected line 2 in error, got: %v", errs[0])
	}
}

func TestCompileJoinsErrors(t *testing.T) {
	_, err := Compile(`var = 1;`)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Fatalf("unexpected error: %v", err)
	}
}
