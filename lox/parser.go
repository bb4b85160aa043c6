package lox

import (
	"fmt"
	"strconv"
)

type parseError struct {
	pos Position
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
)

var precedences = map[TokenType]int{
	tokenAssign:   precAssign,
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precTerm,
	tokenMinus:    precTerm,
	tokenSlash:    precFactor,
	tokenAsterisk: precFactor,
	tokenLParen:   precCall,
	tokenDot:      precCall,
}

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseNumberLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenNil, p.parseNilLiteral)
	p.registerPrefix(tokenThis, p.parseThisExpression)
	p.registerPrefix(tokenSuper, p.parseSuperExpression)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)

	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenLTE] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenGTE] = p.parseInfixExpression
	p.infixFns[tokenAnd] = p.parseLogicalExpression
	p.infixFns[tokenOr] = p.parseLogicalExpression
	p.infixFns[tokenAssign] = p.parseAssignExpression
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenDot] = p.parsePropertyExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *parser) errorAt(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &parseError{pos: pos, msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorAt(p.peekToken.Pos, "expected %s, got %s instead", describeToken(Token{Type: tt}), describeToken(p.peekToken))
	return false
}

func describeToken(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return tok.Literal
	case tokenIdent, tokenNumber:
		if tok.Literal != "" {
			return fmt.Sprintf("%q", tok.Literal)
		}
		return "identifier"
	case tokenString:
		return "string"
	default:
		if tok.Literal != "" {
			return fmt.Sprintf("%q", tok.Literal)
		}
		return fmt.Sprintf("%q", string(tok.Type))
	}
}

func (p *parser) curPrecedence() int {
	return precedences[p.curToken.Type]
}

func (p *parser) peekPrecedence() int {
	return precedences[p.peekToken.Type]
}

// ParseProgram consumes the whole input and returns the statement list plus
// every parse error found. On an error the parser synchronizes at the next
// statement boundary and keeps going, so one bad statement does not mask
// the rest.
func (p *parser) ParseProgram() ([]Statement, []error) {
	var statements []Statement
	for p.curToken.Type != tokenEOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}
	return statements, p.errors
}

// synchronize skips to the next statement boundary after a parse error:
// just past a semicolon, or just before a statement keyword.
func (p *parser) synchronize() {
	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenSemicolon {
			return
		}
		switch p.peekToken.Type {
		case tokenClass, tokenFun, tokenVar, tokenFor, tokenIf, tokenWhile, tokenPrint, tokenReturn:
			return
		}
		p.nextToken()
	}
}

func (p *parser) parseDeclaration() Statement {
	switch p.curToken.Type {
	case tokenClass:
		return p.parseClassStatement()
	case tokenFun:
		return p.parseFunctionStatement()
	case tokenVar:
		return p.parseVarStatement()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenLBrace:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal
	var initializer Expression
	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		if initializer = p.parseExpression(precLowest); initializer == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &VarStmt{Name: name, Initializer: initializer, position: pos}
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &PrintStmt{Expression: expr, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	var value Expression
	if p.peekToken.Type != tokenSemicolon {
		p.nextToken()
		if value = p.parseExpression(precLowest); value == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseBlockStatement() Statement {
	pos := p.curToken.Pos
	statements := []Statement{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}
	if p.curToken.Type != tokenRBrace {
		p.errorAt(p.curToken.Pos, "expected %q, got %s instead", "}", describeToken(p.curToken))
		return nil
	}
	return &BlockStmt{Statements: statements, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(precLowest)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	p.nextToken()
	then := p.parseStatement()
	if then == nil {
		return nil
	}
	var alternate Statement
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		if alternate = p.parseStatement(); alternate == nil {
			return nil
		}
	}
	return &IfStmt{Condition: condition, Then: then, Else: alternate, position: pos}
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(precLowest)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseForStatement desugars `for (init; cond; incr) body` into the
// equivalent var/while/block nest, so the resolver and interpreter never
// see a dedicated for node.
func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()

	var initializer Statement
	switch p.curToken.Type {
	case tokenSemicolon:
	case tokenVar:
		if initializer = p.parseVarStatement(); initializer == nil {
			return nil
		}
	default:
		if initializer = p.parseExpressionStatement(); initializer == nil {
			return nil
		}
	}

	var condition Expression
	if p.peekToken.Type != tokenSemicolon {
		p.nextToken()
		if condition = p.parseExpression(precLowest); condition == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}

	var increment Expression
	if p.peekToken.Type != tokenRParen {
		p.nextToken()
		if increment = p.parseExpression(precLowest); increment == nil {
			return nil
		}
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}

	if increment != nil {
		body = &BlockStmt{
			Statements: []Statement{body, &ExpressionStmt{Expression: increment, position: increment.Pos()}},
			position:   body.Pos(),
		}
	}
	if condition == nil {
		condition = &LiteralExpr{Value: NewBool(true), position: pos}
	}
	var loop Statement = &WhileStmt{Condition: condition, Body: body, position: pos}
	if initializer != nil {
		loop = &BlockStmt{Statements: []Statement{initializer, loop}, position: pos}
	}
	return loop
}

func (p *parser) parseFunctionStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return p.parseFunctionRest(p.curToken.Literal, pos)
}

// parseFunctionRest parses the parameter list and body shared by function
// declarations and class methods; curToken sits on the name.
func (p *parser) parseFunctionRest(name string, pos Position) Statement {
	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	block := p.parseBlockStatement()
	if block == nil {
		return nil
	}
	return &FunctionStmt{Name: name, Params: params, Body: block.(*BlockStmt).Statements, position: pos}
}

func (p *parser) parseParameterList() ([]string, bool) {
	if !p.expectPeek(tokenLParen) {
		return nil, false
	}
	params := []string{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params, true
	}
	if !p.expectPeek(tokenIdent) {
		return nil, false
	}
	params = append(params, p.curToken.Literal)
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		if !p.expectPeek(tokenIdent) {
			return nil, false
		}
		params = append(params, p.curToken.Literal)
	}
	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return params, true
}

func (p *parser) parseClassStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	var superclass *VariableExpr
	if p.peekToken.Type == tokenLT {
		p.nextToken()
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		superclass = &VariableExpr{Name: p.curToken.Literal, position: p.curToken.Pos}
	}

	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	var methods []*FunctionStmt
	p.nextToken()
	for p.curToken.Type != tokenRBrace && p.curToken.Type != tokenEOF {
		if p.curToken.Type != tokenIdent {
			p.errorAt(p.curToken.Pos, "expected method name, got %s instead", describeToken(p.curToken))
			return nil
		}
		method := p.parseFunctionRest(p.curToken.Literal, p.curToken.Pos)
		if method == nil {
			return nil
		}
		methods = append(methods, method.(*FunctionStmt))
		p.nextToken()
	}
	if p.curToken.Type != tokenRBrace {
		p.errorAt(p.curToken.Pos, "expected %q, got %s instead", "}", describeToken(p.curToken))
		return nil
	}
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods, position: pos}
}

func (p *parser) parseExpressionStatement() Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ExpressionStmt{Expression: expr, position: pos}
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		if p.curToken.Type == tokenIllegal {
			p.errorAt(p.curToken.Pos, "%s", p.curToken.Literal)
		} else {
			p.errorAt(p.curToken.Pos, "unexpected %s", describeToken(p.curToken))
		}
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenSemicolon && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		if left = infix(left); left == nil {
			return nil
		}
	}
	return left
}

func (p *parser) parseIdentifier() Expression {
	return &VariableExpr{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	f, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorAt(p.curToken.Pos, "could not parse %q as a number", p.curToken.Literal)
		return nil
	}
	return &LiteralExpr{Value: NewNumber(f), position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &LiteralExpr{Value: NewString(p.curToken.Literal), position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &LiteralExpr{Value: NewBool(p.curToken.Type == tokenTrue), position: p.curToken.Pos}
}

func (p *parser) parseNilLiteral() Expression {
	return &LiteralExpr{Value: NewNil(), position: p.curToken.Pos}
}

func (p *parser) parseThisExpression() Expression {
	return &ThisExpr{position: p.curToken.Pos}
}

func (p *parser) parseSuperExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenDot) {
		return nil
	}
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &SuperExpr{Method: p.curToken.Literal, position: pos}
}

func (p *parser) parseGroupedExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &GroupingExpr{Expression: expr, position: pos}
}

func (p *parser) parsePrefixExpression() Expression {
	operator := p.curToken.Type
	pos := p.curToken.Pos
	p.nextToken()
	right := p.parseExpression(precUnary)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	operator := p.curToken.Type
	pos := p.curToken.Pos
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseLogicalExpression(left Expression) Expression {
	operator := p.curToken.Type
	pos := p.curToken.Pos
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &LogicalExpr{Left: left, Operator: operator, Right: right, position: pos}
}

// parseAssignExpression validates the target after parsing the right-hand
// side: identifiers become assignments, property accesses become sets, and
// anything else is rejected.
func (p *parser) parseAssignExpression(left Expression) Expression {
	equalsPos := p.curToken.Pos
	p.nextToken()
	value := p.parseExpression(precAssign - 1)
	if value == nil {
		return nil
	}
	switch target := left.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: target.Name, Value: value, position: target.Pos()}
	case *GetExpr:
		return &SetExpr{Object: target.Object, Name: target.Name, Value: value, position: target.Pos()}
	default:
		p.errorAt(equalsPos, "invalid assignment target")
		return nil
	}
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	pos := p.curToken.Pos
	arguments := []Expression{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return &CallExpr{Callee: callee, Arguments: arguments, position: pos}
	}
	p.nextToken()
	arg := p.parseExpression(precLowest)
	if arg == nil {
		return nil
	}
	arguments = append(arguments, arg)
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if arg = p.parseExpression(precLowest); arg == nil {
			return nil
		}
		arguments = append(arguments, arg)
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &CallExpr{Callee: callee, Arguments: arguments, position: pos}
}

func (p *parser) parsePropertyExpression(object Expression) Expression {
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &GetExpr{Object: object, Name: p.curToken.Literal, position: p.curToken.Pos}
}
