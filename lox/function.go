package lox

// Function is a user-defined closure: the declaration plus the environment
// captured where the function was defined, not where it is called.
type Function struct {
	Declaration *FunctionStmt
	Closure     *Env
}

// Bind produces a copy of the function whose closure is a fresh child
// environment with `this` defined, used for method access.
func (f *Function) Bind(instance Value) *Function {
	env := newEnv(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env}
}
