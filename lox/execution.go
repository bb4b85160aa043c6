package lox

import "fmt"

// executeStatements runs a statement list against env. The boolean result
// is the return signal: true means a return statement fired and the value
// slot carries its payload, to be converted into a call result by the
// nearest enclosing call frame. It is control transfer, not an error, and
// the two never mix.
func (in *Interpreter) executeStatements(statements []Statement, env *Env) (Value, bool, error) {
	last := NewNil()
	for _, stmt := range statements {
		val, returned, err := in.executeStatement(stmt, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		last = val
	}
	return last, false, nil
}

func (in *Interpreter) executeStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		val, err := in.evalExpression(s.Expression, env)
		if err != nil {
			return NewNil(), false, err
		}
		return val, false, nil

	case *PrintStmt:
		val, err := in.evalExpression(s.Expression, env)
		if err != nil {
			return NewNil(), false, err
		}
		fmt.Fprintln(in.stdout, val.String())
		return NewNil(), false, nil

	case *VarStmt:
		value := NewNil()
		if s.Initializer != nil {
			var err error
			if value, err = in.evalExpression(s.Initializer, env); err != nil {
				return NewNil(), false, err
			}
		}
		env.Define(s.Name, value)
		return NewNil(), false, nil

	case *BlockStmt:
		val, returned, err := in.executeStatements(s.Statements, newEnv(env))
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		return NewNil(), false, nil

	case *IfStmt:
		cond, err := in.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		branch := s.Then
		if !cond.Truthy() {
			branch = s.Else
		}
		if branch == nil {
			return NewNil(), false, nil
		}
		val, returned, err := in.executeStatement(branch, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		return NewNil(), false, nil

	case *WhileStmt:
		for {
			cond, err := in.evalExpression(s.Condition, env)
			if err != nil {
				return NewNil(), false, err
			}
			if !cond.Truthy() {
				return NewNil(), false, nil
			}
			val, returned, err := in.executeStatement(s.Body, env)
			if err != nil {
				return NewNil(), false, err
			}
			if returned {
				return val, true, nil
			}
		}

	case *FunctionStmt:
		env.Define(s.Name, NewFunction(&Function{Declaration: s, Closure: env}))
		return NewNil(), false, nil

	case *ReturnStmt:
		value := NewNil()
		if s.Value != nil {
			var err error
			if value, err = in.evalExpression(s.Value, env); err != nil {
				return NewNil(), false, err
			}
		}
		return value, true, nil

	case *ClassStmt:
		return NewNil(), false, in.executeClass(s, env)

	default:
		return NewNil(), false, errorAt(ErrInternal, stmt.Pos(), "unhandled statement %T.", stmt)
	}
}

// executeClass evaluates the optional superclass, closes every method over
// an environment that binds `super` when one exists, and assigns the
// finished class over its forward declaration so methods can refer to the
// class by name.
func (in *Interpreter) executeClass(s *ClassStmt, env *Env) error {
	env.Define(s.Name, NewNil())

	var superclass *ClassDef
	methodEnv := env
	if s.Superclass != nil {
		superVal, err := in.evalExpression(s.Superclass, env)
		if err != nil {
			return err
		}
		if superclass = superVal.Class(); superclass == nil {
			return errorAt(ErrOperand, s.Superclass.Pos(), "Superclass must be a class.")
		}
		methodEnv = newEnv(env)
		methodEnv.Define("super", superVal)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name] = &Function{Declaration: method, Closure: methodEnv}
	}

	env.Assign(s.Name, NewClass(&ClassDef{Name: s.Name, Superclass: superclass, Methods: methods}))
	return nil
}
