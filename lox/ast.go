package lox

// Node positions refer to the token that introduced the node; the resolver
// keys its side table on Expression identity, so every node is a pointer and
// every reference in the source gets a distinct node.
type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type LiteralExpr struct {
	Value    Value
	position Position
}

func (e *LiteralExpr) exprNode()     {}
func (e *LiteralExpr) Pos() Position { return e.position }

type VariableExpr struct {
	Name     string
	position Position
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.position }

type AssignExpr struct {
	Name     string
	Value    Expression
	position Position
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type LogicalExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *LogicalExpr) exprNode()     {}
func (e *LogicalExpr) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

type CallExpr struct {
	Callee    Expression
	Arguments []Expression
	position  Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

type GetExpr struct {
	Object   Expression
	Name     string
	position Position
}

func (e *GetExpr) exprNode()     {}
func (e *GetExpr) Pos() Position { return e.position }

type SetExpr struct {
	Object   Expression
	Name     string
	Value    Expression
	position Position
}

func (e *SetExpr) exprNode()     {}
func (e *SetExpr) Pos() Position { return e.position }

type ThisExpr struct {
	position Position
}

func (e *ThisExpr) exprNode()     {}
func (e *ThisExpr) Pos() Position { return e.position }

type SuperExpr struct {
	Method   string
	position Position
}

func (e *SuperExpr) exprNode()     {}
func (e *SuperExpr) Pos() Position { return e.position }

type GroupingExpr struct {
	Expression Expression
	position   Position
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) Pos() Position { return e.position }
