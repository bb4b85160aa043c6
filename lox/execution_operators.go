package lox

func (in *Interpreter) evalUnary(e *UnaryExpr, env *Env) (Value, error) {
	right, err := in.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator {
	case tokenMinus:
		if right.Kind() != KindNumber {
			return NewNil(), errorAt(ErrOperand, e.Pos(), "Unary minus must be applied to number, but value was %s.", right)
		}
		return NewNumber(-right.Number()), nil
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), errorAt(ErrInternal, e.Pos(), "unhandled unary operator %s.", e.Operator)
	}
}

func (in *Interpreter) evalBinary(e *BinaryExpr, env *Env) (Value, error) {
	left, err := in.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	right, err := in.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator {
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenPlus:
		if left.Kind() == KindNumber && right.Kind() == KindNumber {
			return NewNumber(left.Number() + right.Number()), nil
		}
		if left.Kind() == KindString && right.Kind() == KindString {
			return NewString(left.Str() + right.Str()), nil
		}
		return NewNil(), errorAt(ErrOperand, e.Pos(), "Operands must be numbers or strings.")
	}

	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNil(), errorAt(ErrOperand, e.Pos(), "Operands must be numbers.")
	}
	l, r := left.Number(), right.Number()

	switch e.Operator {
	case tokenMinus:
		return NewNumber(l - r), nil
	case tokenSlash:
		return NewNumber(l / r), nil
	case tokenAsterisk:
		return NewNumber(l * r), nil
	case tokenGT:
		return NewBool(l > r), nil
	case tokenGTE:
		return NewBool(l >= r), nil
	case tokenLT:
		return NewBool(l < r), nil
	case tokenLTE:
		return NewBool(l <= r), nil
	default:
		return NewNil(), errorAt(ErrInternal, e.Pos(), "unhandled binary operator %s.", e.Operator)
	}
}
