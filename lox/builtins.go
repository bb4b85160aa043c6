package lox

import "time"

// builtinClock returns milliseconds since the Unix epoch as a Number.
func builtinClock(in *Interpreter, args []Value) (Value, error) {
	return NewNumber(float64(time.Now().UnixMilli())), nil
}
