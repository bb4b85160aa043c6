package lox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// String renders the canonical text form of each variant: booleans as
// true/false, numbers in default decimal notation, strings verbatim, nil as
// "nil", and callables/classes/instances in their angle-bracket forms.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.data.(bool))
	case KindNumber:
		return formatNumber(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindBuiltin:
		b := v.data.(*Builtin)
		return fmt.Sprintf("<fun %s(%s)>", b.Name, strings.Join(b.Params, ", "))
	case KindFunction:
		fn := v.data.(*Function)
		return fmt.Sprintf("<fun %s(%s)>", fn.Declaration.Name, strings.Join(fn.Declaration.Params, ", "))
	case KindClass:
		return fmt.Sprintf("<class %s>", v.data.(*ClassDef).Name)
	case KindInstance:
		inst := v.data.(*Instance)
		names := make([]string, 0, len(inst.Fields))
		for name := range inst.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("instance %s(%s)", inst.Class.Name, strings.Join(names, ", "))
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
