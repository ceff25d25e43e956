package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) (list []TokenKind) {
	for _, tok := range tokens {
		list = append(list, tok.Kind)
	}
	return
}

func values(tokens []Token) (list []string) {
	for _, tok := range tokens {
		list = append(list, tok.Value)
	}
	return
}

func TestLex(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex([]byte("start: mov r1, 0x10 ; count\n\tJne start"))
	assert.NoError(err)

	assert.Equal([]TokenKind{
		TOKEN_ID, TOKEN_COLON,
		TOKEN_KEYWORD, TOKEN_KEYWORD, TOKEN_COMMA, TOKEN_NUMBER,
		TOKEN_KEYWORD, TOKEN_ID,
		TOKEN_EOF,
	}, kinds(tokens))
	assert.Equal([]string{
		"start", ":",
		"MOV", "R1", ",", "0x10",
		"JNE", "start",
		"",
	}, values(tokens))

	jne := tokens[6]
	assert.Equal(2, jne.Line)
	assert.Equal(2, jne.Col)
}

func TestLex_Words(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		kind  TokenKind
		value string
	}){
		{"rp1", TOKEN_KEYWORD, "RP1"},
		{"Rr8", TOKEN_KEYWORD, "RR8"},
		{"RP9", TOKEN_ID, "RP9"},
		{"MOVX", TOKEN_ID, "MOVX"},
		{"Loop", TOKEN_ID, "Loop"},
		{"forward_label", TOKEN_ID, "forward_label"},
		{"int", TOKEN_KEYWORD, "INT"},
		{"sp", TOKEN_KEYWORD, "SP"},
		{"sub", TOKEN_KEYWORD, "SUB"},
		{"subr", TOKEN_ID, "subr"},
	}

	for _, entry := range table {
		tokens, err := Lex([]byte(entry.word))
		assert.NoError(err, entry.word)
		assert.Equal(2, len(tokens), entry.word)
		assert.Equal(entry.kind, tokens[0].Kind, entry.word)
		assert.Equal(entry.value, tokens[0].Value, entry.word)
	}
}

func TestLex_Numbers(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex([]byte("5 -5 +0x1F 0X0a 5-3"))
	assert.NoError(err)
	assert.Equal([]string{"5", "-5", "+0x1F", "0X0a", "5", "-3", ""}, values(tokens))
}

func TestLex_Expression(t *testing.T) {
	assert := assert.New(t)

	tokens, err := Lex([]byte("MOV R1, $( 1 + (2*3) )"))
	assert.NoError(err)
	assert.Equal(TOKEN_EXPR, tokens[3].Kind)
	assert.Equal("1 + (2*3)", tokens[3].Value)
	assert.Equal("$(1 + (2*3))", tokens[3].Text())
}

func TestLex_End(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"",
		"   \r\n\t",
		"; only a comment",
		"\x00MOV",
	}

	for _, text := range table {
		tokens, err := Lex([]byte(text))
		assert.NoError(err, text)
		assert.Equal([]TokenKind{TOKEN_EOF}, kinds(tokens), text)
	}

	tokens, err := Lex([]byte("INT\x00garbage!"))
	assert.NoError(err)
	assert.Equal([]TokenKind{TOKEN_KEYWORD, TOKEN_EOF}, kinds(tokens))

	// Keywords match case-insensitively, even in label position.
	tokens, err = Lex([]byte("sub:"))
	assert.NoError(err)
	assert.Equal([]TokenKind{TOKEN_KEYWORD, TOKEN_COLON, TOKEN_EOF}, kinds(tokens))

	tokens, err = Lex([]byte("RET ; done"))
	assert.NoError(err)
	assert.Equal([]TokenKind{TOKEN_KEYWORD, TOKEN_EOF}, kinds(tokens))
}

func TestLex_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		err  error
		line int
		col  int
	}){
		{"MOV R1, 0x", ErrLexUnterminated, 1, 9},
		{"MOV R1, 12ab", ErrLexNumber, 1, 9},
		{"MOV R1, 0x1G", ErrLexNumber, 1, 9},
		{"MOV R1, $(1+2", ErrLexUnterminated, 1, 9},
		{"MOV R1, $1", ErrLexCharacter, 1, 9},
		{"\n  @", ErrLexCharacter, 2, 3},
		{"MOV R1, -x", ErrLexCharacter, 1, 9},
	}

	for _, entry := range table {
		_, err := Lex([]byte(entry.text))
		assert.ErrorIs(err, entry.err, entry.text)

		var el ErrLex
		if assert.ErrorAs(err, &el, entry.text) {
			assert.Equal(entry.line, el.Line, entry.text)
			assert.Equal(entry.col, el.Col, entry.text)
		}
	}
}
