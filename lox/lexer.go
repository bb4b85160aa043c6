package lox

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := Position{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		return Token{Type: tokenEOF, Literal: "", Pos: pos}
	case '(':
		return l.makeToken(tokenLParen, pos)
	case ')':
		return l.makeToken(tokenRParen, pos)
	case '{':
		return l.makeToken(tokenLBrace, pos)
	case '}':
		return l.makeToken(tokenRBrace, pos)
	case ',':
		return l.makeToken(tokenComma, pos)
	case '.':
		return l.makeToken(tokenDot, pos)
	case ';':
		return l.makeToken(tokenSemicolon, pos)
	case '+':
		return l.makeToken(tokenPlus, pos)
	case '-':
		return l.makeToken(tokenMinus, pos)
	case '*':
		return l.makeToken(tokenAsterisk, pos)
	case '/':
		return l.makeToken(tokenSlash, pos)
	case '=':
		return l.makeTwoRuneToken(tokenAssign, tokenEQ, pos)
	case '!':
		return l.makeTwoRuneToken(tokenBang, tokenNotEQ, pos)
	case '<':
		return l.makeTwoRuneToken(tokenLT, tokenLTE, pos)
	case '>':
		return l.makeTwoRuneToken(tokenGT, tokenGTE, pos)
	case '"':
		return l.readString(pos)
	default:
		if isIdentStart(l.ch) {
			return l.readIdentifier(pos)
		}
		if isDigit(l.ch) {
			return l.readNumber(pos)
		}
		tok := Token{Type: tokenIllegal, Literal: "unexpected character " + strconv.QuoteRune(l.ch), Pos: pos}
		l.readRune()
		return tok
	}
}

func (l *lexer) makeToken(tt TokenType, pos Position) Token {
	tok := Token{Type: tt, Literal: string(l.ch), Pos: pos}
	l.readRune()
	return tok
}

// makeTwoRuneToken emits the doubled form when the current rune is followed
// by '=', otherwise the single form.
func (l *lexer) makeTwoRuneToken(single, doubled TokenType, pos Position) Token {
	first := l.ch
	if l.peekRune() == '=' {
		l.readRune()
		tok := Token{Type: doubled, Literal: string(first) + "=", Pos: pos}
		l.readRune()
		return tok
	}
	tok := Token{Type: single, Literal: string(first), Pos: pos}
	l.readRune()
	return tok
}

// readString consumes a double-quoted string literal. Strings may span
// lines and support no escape sequences.
func (l *lexer) readString(pos Position) Token {
	start := l.offset
	for {
		l.readRune()
		if l.ch == 0 {
			return Token{Type: tokenIllegal, Literal: "unterminated string", Pos: pos}
		}
		if l.ch == '"' {
			break
		}
	}
	literal := l.input[start : l.offset-l.width]
	l.readRune()
	return Token{Type: tokenString, Literal: literal, Pos: pos}
}

func (l *lexer) readNumber(pos Position) Token {
	start := l.offset - l.width
	for isDigit(l.ch) {
		l.readRune()
	}
	if l.ch == '.' && isDigit(l.peekRune()) {
		l.readRune()
		for isDigit(l.ch) {
			l.readRune()
		}
	}
	return Token{Type: tokenNumber, Literal: l.lexemeFrom(start), Pos: pos}
}

func (l *lexer) readIdentifier(pos Position) Token {
	start := l.offset - l.width
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readRune()
	}
	literal := l.lexemeFrom(start)
	if kw, ok := keywords[literal]; ok {
		return Token{Type: kw, Literal: literal, Pos: pos}
	}
	return Token{Type: tokenIdent, Literal: literal, Pos: pos}
}

// lexemeFrom returns the source text between start and the current rune,
// which has already been read but not consumed.
func (l *lexer) lexemeFrom(start int) string {
	return l.input[start : l.offset-l.width]
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readRune()
			}
		case unicode.IsSpace(l.ch):
			l.readRune()
		default:
			return
		}
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
