package lox

// Callable is the capability shared by every invocable variant: builtin
// functions, user closures, and classes used as constructors.
type Callable interface {
	Call(in *Interpreter, args []Value, pos Position) (Value, error)
	Arity() int
}

// AsCallable selects the callable behavior for a value, or reports that the
// value cannot be invoked.
func (v Value) AsCallable() (Callable, bool) {
	switch v.kind {
	case KindBuiltin:
		return v.data.(*Builtin), true
	case KindFunction:
		return v.data.(*Function), true
	case KindClass:
		return v.data.(*ClassDef), true
	default:
		return nil, false
	}
}

func (b *Builtin) Call(in *Interpreter, args []Value, pos Position) (Value, error) {
	return b.Fn(in, args)
}

func (b *Builtin) Arity() int { return len(b.Params) }

// Call executes the function body inside a fresh child of the captured
// closure environment with parameters bound in order. A body that completes
// without an explicit return yields nil.
func (f *Function) Call(in *Interpreter, args []Value, pos Position) (Value, error) {
	env := newEnv(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param, args[i])
	}
	val, returned, err := in.executeStatements(f.Declaration.Body, env)
	if err != nil {
		return NewNil(), err
	}
	if returned {
		return val, nil
	}
	return NewNil(), nil
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

// Call constructs a new instance. When the class declares an `init` method
// it runs bound to the new instance; whatever init returns is discarded and
// the instance is the call's result.
func (c *ClassDef) Call(in *Interpreter, args []Value, pos Position) (Value, error) {
	instVal := NewInstance(newInstance(c))
	if initFn, ok := c.FindMethod("init"); ok {
		if _, err := initFn.Bind(instVal).Call(in, args, pos); err != nil {
			return NewNil(), err
		}
	}
	return instVal, nil
}

// Arity of a class is the arity of its init method, or zero without one.
func (c *ClassDef) Arity() int {
	if initFn, ok := c.FindMethod("init"); ok {
		return initFn.Arity()
	}
	return 0
}
