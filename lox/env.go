package lox

// Env is one frame of the scope chain. Frames are shared: every closure
// holds a pointer to its defining frame, which stays live for as long as any
// holder remains.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Define inserts or overwrites the name in this frame only.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get searches this frame then each ancestor in order.
func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Assign writes into the nearest frame that already owns the name,
// reporting failure when no frame does.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, val)
	}
	return false
}

// GetAt reads the name from the frame exactly distance parents up, without
// searching. A miss means the resolver's precomputed distance is wrong.
func (e *Env) GetAt(distance int, name string) (Value, bool) {
	frame := e.ancestor(distance)
	if frame == nil {
		return Value{}, false
	}
	val, ok := frame.values[name]
	return val, ok
}

// AssignAt is the distance-addressed counterpart of Assign.
func (e *Env) AssignAt(distance int, name string, val Value) bool {
	frame := e.ancestor(distance)
	if frame == nil {
		return false
	}
	if _, ok := frame.values[name]; !ok {
		return false
	}
	frame.values[name] = val
	return true
}

func (e *Env) ancestor(distance int) *Env {
	frame := e
	for i := 0; i < distance; i++ {
		if frame.parent == nil {
			return nil
		}
		frame = frame.parent
	}
	return frame
}
