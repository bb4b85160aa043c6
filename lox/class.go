package lox

// ClassDef is a runtime class: its method table plus an optional superclass
// forming a single-inheritance chain.
type ClassDef struct {
	Name       string
	Superclass *ClassDef
	Methods    map[string]*Function
}

// FindMethod checks the local method table first, then walks the superclass
// chain.
func (c *ClassDef) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Instance pairs a class with a mutable field map. Fields shadow methods:
// Get consults the fields first and only then the method chain.
type Instance struct {
	Class  *ClassDef
	Fields map[string]Value
}

func newInstance(class *ClassDef) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Get reads a field, falling back to a freshly this-bound method closure.
// Methods are bound on every access; two reads of the same method yield
// distinct closures.
func (inst *Instance) Get(name string) (Value, bool) {
	if val, ok := inst.Fields[name]; ok {
		return val, true
	}
	if method, ok := inst.Class.FindMethod(name); ok {
		return NewFunction(method.Bind(NewInstance(inst))), true
	}
	return Value{}, false
}

// Set writes the field unconditionally, even when a method of the same name
// exists.
func (inst *Instance) Set(name string, val Value) {
	inst.Fields[name] = val
}
