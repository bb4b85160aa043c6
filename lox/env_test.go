package lox

import "testing"

func TestEnvDefineAndGet(t *testing.T) {
	env := newEnv(nil)
	env.Define("x", NewNumber(1))

	val, ok := env.Get("x")
	if !ok {
		t.Fatalf("expected x to be defined")
	}
	if val.Number() != 1 {
		t.Fatalf("expected 1, got %v", val)
	}
	if _, ok := env.Get("missing"); ok {
		t.Fatalf("expected missing to be undefined")
	}
}

func TestEnvGetSearchesParentChain(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewString("root"))
	child := newEnv(root)
	grandchild := newEnv(child)

	val, ok := grandchild.Get("x")
	if !ok || val.Str() != "root" {
		t.Fatalf("expected root value through chain, got %v", val)
	}
}

func TestEnvDefineShadowsParent(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewString("root"))
	child := newEnv(root)
	child.Define("x", NewString("child"))

	val, _ := child.Get("x")
	if val.Str() != "child" {
		t.Fatalf("expected child value, got %v", val)
	}
	val, _ = root.Get("x")
	if val.Str() != "root" {
		t.Fatalf("parent value clobbered: %v", val)
	}
}

func TestEnvAssignWritesNearestOwner(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewNumber(1))
	child := newEnv(root)

	if !child.Assign("x", NewNumber(2)) {
		t.Fatalf("assign failed for defined variable")
	}
	val, _ := root.Get("x")
	if val.Number() != 2 {
		t.Fatalf("expected assignment to reach root, got %v", val)
	}
	if _, ok := child.values["x"]; ok {
		t.Fatalf("assign created a new binding in the child frame")
	}
}

func TestEnvAssignUndefinedFails(t *testing.T) {
	env := newEnv(nil)
	if env.Assign("ghost", NewNumber(1)) {
		t.Fatalf("expected assignment to undefined variable to fail")
	}
}

func TestEnvGetAt(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewString("far"))
	child := newEnv(root)
	child.Define("x", NewString("near"))

	val, ok := child.GetAt(0, "x")
	if !ok || val.Str() != "near" {
		t.Fatalf("distance 0: expected near, got %v", val)
	}
	val, ok = child.GetAt(1, "x")
	if !ok || val.Str() != "far" {
		t.Fatalf("distance 1: expected far, got %v", val)
	}
	if _, ok := child.GetAt(5, "x"); ok {
		t.Fatalf("expected lookup past the chain to fail")
	}
}

func TestEnvAssignAt(t *testing.T) {
	root := newEnv(nil)
	root.Define("x", NewNumber(1))
	child := newEnv(root)
	child.Define("x", NewNumber(10))

	if !child.AssignAt(1, "x", NewNumber(2)) {
		t.Fatalf("assign at distance 1 failed")
	}
	val, _ := root.Get("x")
	if val.Number() != 2 {
		t.Fatalf("expected 2 in root, got %v", val)
	}
	val, _ = child.GetAt(0, "x")
	if val.Number() != 10 {
		t.Fatalf("child binding disturbed: %v", val)
	}
}
