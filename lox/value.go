package lox

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindBuiltin
	KindFunction
	KindClass
	KindInstance
)

// Value is the tagged result type flowing through the interpreter.
type Value struct {
	kind ValueKind
	data any
}

type Builtin struct {
	Name   string
	Params []string
	Fn     BuiltinFunc
}

type BuiltinFunc func(in *Interpreter, args []Value) (Value, error)

// Truthy reports the conditional interpretation of a value: nil and false
// are falsey, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.data.(bool)
	default:
		return true
	}
}

// Equal is structural and variant-sensitive: values of different kinds are
// never equal. Functions, builtins, and classes compare by identity;
// instances compare by class and field contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindNumber:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindBuiltin:
		return v.data.(*Builtin) == other.data.(*Builtin)
	case KindFunction:
		return v.data.(*Function) == other.data.(*Function)
	case KindClass:
		return v.data.(*ClassDef) == other.data.(*ClassDef)
	case KindInstance:
		return v.Instance().equal(other.Instance())
	default:
		return false
	}
}

func (inst *Instance) equal(other *Instance) bool {
	if inst == other {
		return true
	}
	if inst.Class != other.Class || len(inst.Fields) != len(other.Fields) {
		return false
	}
	for name, val := range inst.Fields {
		otherVal, ok := other.Fields[name]
		if !ok || !val.Equal(otherVal) {
			return false
		}
	}
	return true
}
