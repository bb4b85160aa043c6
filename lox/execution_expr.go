package lox

func (in *Interpreter) evalExpression(expr Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *GroupingExpr:
		return in.evalExpression(e.Expression, env)

	case *VariableExpr:
		return in.lookUpVariable(e.Name, expr, env)

	case *ThisExpr:
		return in.lookUpVariable("this", expr, env)

	case *AssignExpr:
		return in.evalAssign(e, env)

	case *BinaryExpr:
		return in.evalBinary(e, env)

	case *LogicalExpr:
		return in.evalLogical(e, env)

	case *UnaryExpr:
		return in.evalUnary(e, env)

	case *CallExpr:
		return in.evalCall(e, env)

	case *GetExpr:
		return in.evalGet(e, env)

	case *SetExpr:
		return in.evalSet(e, env)

	case *SuperExpr:
		return in.evalSuper(e, env)

	default:
		return NewNil(), errorAt(ErrInternal, expr.Pos(), "unhandled expression %T.", expr)
	}
}

// lookUpVariable uses the resolved distance when one was recorded and
// otherwise searches the globals by name. Locals are statically fixed;
// only global lookups can observe names defined after resolution.
func (in *Interpreter) lookUpVariable(name string, expr Expression, env *Env) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		val, ok := env.GetAt(distance, name)
		if !ok {
			return NewNil(), errorAt(ErrInternal, expr.Pos(), "resolved variable '%s' missing at distance %d.", name, distance)
		}
		return val, nil
	}
	val, ok := in.globals.Get(name)
	if !ok {
		return NewNil(), errorAt(ErrUndefinedVariable, expr.Pos(), "Undefined variable '%s'.", name)
	}
	return val, nil
}

func (in *Interpreter) evalAssign(e *AssignExpr, env *Env) (Value, error) {
	val, err := in.evalExpression(e.Value, env)
	if err != nil {
		return NewNil(), err
	}
	if distance, ok := in.locals[e]; ok {
		if !env.AssignAt(distance, e.Name, val) {
			return NewNil(), errorAt(ErrInternal, e.Pos(), "resolved variable '%s' missing at distance %d.", e.Name, distance)
		}
		return val, nil
	}
	if !in.globals.Assign(e.Name, val) {
		return NewNil(), errorAt(ErrUndefinedVariable, e.Pos(), "Undefined variable '%s'.", e.Name)
	}
	return val, nil
}

// evalLogical short-circuits: when the left operand decides the result it
// is returned as-is and the right operand is never evaluated.
func (in *Interpreter) evalLogical(e *LogicalExpr, env *Env) (Value, error) {
	left, err := in.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	if e.Operator == tokenOr {
		if left.Truthy() {
			return left, nil
		}
	} else if !left.Truthy() {
		return left, nil
	}
	return in.evalExpression(e.Right, env)
}

// evalCall evaluates the callee, then every argument left to right, and
// checks callability and exact arity before any part of the body runs.
func (in *Interpreter) evalCall(e *CallExpr, env *Env) (Value, error) {
	callee, err := in.evalExpression(e.Callee, env)
	if err != nil {
		return NewNil(), err
	}
	args := make([]Value, len(e.Arguments))
	for i, argExpr := range e.Arguments {
		if args[i], err = in.evalExpression(argExpr, env); err != nil {
			return NewNil(), err
		}
	}

	callable, ok := callee.AsCallable()
	if !ok {
		return NewNil(), errorAt(ErrNotCallable, e.Pos(), "'%s' is not callable.", callee)
	}
	if len(args) != callable.Arity() {
		return NewNil(), errorAt(ErrArity, e.Pos(), "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args, e.Pos())
}

func (in *Interpreter) evalGet(e *GetExpr, env *Env) (Value, error) {
	object, err := in.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	inst := object.Instance()
	if inst == nil {
		return NewNil(), errorAt(ErrOperand, e.Pos(), "Only instances have properties.")
	}
	val, ok := inst.Get(e.Name)
	if !ok {
		return NewNil(), errorAt(ErrUndefinedProperty, e.Pos(), "Undefined property '%s'.", e.Name)
	}
	return val, nil
}

func (in *Interpreter) evalSet(e *SetExpr, env *Env) (Value, error) {
	object, err := in.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	inst := object.Instance()
	if inst == nil {
		return NewNil(), errorAt(ErrOperand, e.Pos(), "Only instances have properties.")
	}
	val, err := in.evalExpression(e.Value, env)
	if err != nil {
		return NewNil(), err
	}
	inst.Set(e.Name, val)
	return val, nil
}

// evalSuper dispatches to the superclass's method table recorded at class
// definition, bypassing any override in the instance's own class. The
// instance itself sits one frame inside the `super` frame.
func (in *Interpreter) evalSuper(e *SuperExpr, env *Env) (Value, error) {
	distance, ok := in.locals[e]
	if !ok {
		return NewNil(), errorAt(ErrInternal, e.Pos(), "unresolved 'super' reference.")
	}
	superVal, ok := env.GetAt(distance, "super")
	if !ok {
		return NewNil(), errorAt(ErrInternal, e.Pos(), "'super' missing at distance %d.", distance)
	}
	thisVal, ok := env.GetAt(distance-1, "this")
	if !ok {
		return NewNil(), errorAt(ErrInternal, e.Pos(), "'this' missing below 'super' frame.")
	}
	method, found := superVal.Class().FindMethod(e.Method)
	if !found {
		return NewNil(), errorAt(ErrUndefinedProperty, e.Pos(), "Undefined property '%s'.", e.Method)
	}
	return NewFunction(method.Bind(thisVal)), nil
}
