package lox

func NewNil() Value              { return Value{kind: KindNil} }
func NewBool(b bool) Value       { return Value{kind: KindBool, data: b} }
func NewNumber(f float64) Value  { return Value{kind: KindNumber, data: f} }
func NewString(s string) Value   { return Value{kind: KindString, data: s} }
func NewClass(c *ClassDef) Value { return Value{kind: KindClass, data: c} }

func NewFunction(fn *Function) Value {
	return Value{kind: KindFunction, data: fn}
}

func NewInstance(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}

func NewBuiltin(name string, params []string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Params: params, Fn: fn}}
}
