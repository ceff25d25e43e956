package asm

import (
	"strings"
)

// Lexer scans assembly text into tokens, in a single forward pass.
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer positioned at line 1, column 1.
func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Lex scans the whole input. The token list always ends with TOKEN_EOF.
func Lex(input []byte) (tokens []Token, err error) {
	lex := NewLexer(input)
	for {
		var tok Token
		tok, err = lex.Next()
		if err != nil {
			return
		}
		tokens = append(tokens, tok)
		if tok.Kind == TOKEN_EOF {
			return
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isWord(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// peek returns the byte n ahead of the cursor; NUL past the end.
func (lex *Lexer) peek(n int) byte {
	if lex.pos+n >= len(lex.input) {
		return 0
	}
	return lex.input[lex.pos+n]
}

func (lex *Lexer) advance() {
	if lex.input[lex.pos] == '\n' {
		lex.line++
		lex.col = 1
	} else {
		lex.col++
	}
	lex.pos++
}

func (lex *Lexer) fail(tok Token, err error) (Token, error) {
	return tok, ErrLex{Line: tok.Line, Col: tok.Col, Text: tok.Value, Err: err}
}

// Next returns the next token. A NUL byte, or the end of input, is EOF.
func (lex *Lexer) Next() (tok Token, err error) {
	for {
		ch := lex.peek(0)
		switch ch {
		case ' ', '\n', '\r', '\t':
			lex.advance()
			continue
		case ';':
			for lex.pos < len(lex.input) && lex.input[lex.pos] != '\n' {
				lex.advance()
			}
			continue
		}
		break
	}

	tok = Token{Line: lex.line, Col: lex.col}

	ch := lex.peek(0)
	switch {
	case ch == 0:
		tok.Kind = TOKEN_EOF
	case ch == ',':
		lex.advance()
		tok.Kind = TOKEN_COMMA
		tok.Value = ","
	case ch == ':':
		lex.advance()
		tok.Kind = TOKEN_COLON
		tok.Value = ":"
	case ch == '$':
		return lex.expr(tok)
	case isDigit(ch), (ch == '+' || ch == '-') && isDigit(lex.peek(1)):
		return lex.number(tok)
	case isWord(ch):
		start := lex.pos
		for isWord(lex.peek(0)) {
			lex.advance()
		}
		word := string(lex.input[start:lex.pos])
		upper := strings.ToUpper(word)
		if IsKeyword(upper) {
			tok.Kind = TOKEN_KEYWORD
			tok.Value = upper
		} else {
			tok.Kind = TOKEN_ID
			tok.Value = word
		}
	default:
		tok.Value = string(ch)
		return lex.fail(tok, ErrLexCharacter)
	}

	return
}

func (lex *Lexer) number(tok Token) (Token, error) {
	start := lex.pos
	if ch := lex.peek(0); ch == '+' || ch == '-' {
		lex.advance()
	}

	if lex.peek(0) == '0' && (lex.peek(1) == 'x' || lex.peek(1) == 'X') {
		lex.advance()
		lex.advance()
		digits := 0
		for isHex(lex.peek(0)) {
			lex.advance()
			digits++
		}
		if digits == 0 {
			tok.Value = string(lex.input[start:lex.pos])
			return lex.fail(tok, ErrLexUnterminated)
		}
	} else {
		for isDigit(lex.peek(0)) {
			lex.advance()
		}
	}

	tok.Kind = TOKEN_NUMBER
	tok.Value = string(lex.input[start:lex.pos])

	if isWord(lex.peek(0)) {
		for isWord(lex.peek(0)) {
			lex.advance()
		}
		tok.Value = string(lex.input[start:lex.pos])
		return lex.fail(tok, ErrLexNumber)
	}

	return tok, nil
}

// expr scans $( ... ) with balanced parentheses.
func (lex *Lexer) expr(tok Token) (Token, error) {
	lex.advance()
	if lex.peek(0) != '(' {
		tok.Value = "$"
		return lex.fail(tok, ErrLexCharacter)
	}
	lex.advance()

	start := lex.pos
	depth := 1
	for {
		ch := lex.peek(0)
		if ch == 0 {
			tok.Value = "$(" + string(lex.input[start:lex.pos])
			return lex.fail(tok, ErrLexUnterminated)
		}
		if ch == '(' {
			depth++
		} else if ch == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
		lex.advance()
	}

	tok.Kind = TOKEN_EXPR
	tok.Value = strings.TrimSpace(string(lex.input[start:lex.pos]))
	lex.advance()

	return tok, nil
}
