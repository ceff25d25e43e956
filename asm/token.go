package asm

import (
	"fmt"

	"github.com/ezrec/x8000/cpu"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -type=TokenKind
const (
	TOKEN_EOF     = TokenKind(iota) // end of input
	TOKEN_KEYWORD                   // mnemonic or register, uppercased
	TOKEN_ID                        // label name, verbatim
	TOKEN_NUMBER                    // numeric literal, verbatim
	TOKEN_COMMA                     // ','
	TOKEN_COLON                     // ':'
	TOKEN_EXPR                      // $( expression ), inner text only
)

// Token is a lexical token, with its source position.
type Token struct {
	Kind  TokenKind
	Value string
	Line  int
	Col   int
}

func (tok Token) String() string {
	return fmt.Sprintf("%v(%q)@%d:%d", tok.Kind, tok.Value, tok.Line, tok.Col)
}

// Text returns the token as it would be written in source.
func (tok Token) Text() string {
	switch tok.Kind {
	case TOKEN_EXPR:
		return "$(" + tok.Value + ")"
	case TOKEN_EOF:
		return ""
	}
	return tok.Value
}

// Register returns the register a keyword token names.
func (tok Token) Register() (reg cpu.Register, ok bool) {
	if tok.Kind != TOKEN_KEYWORD {
		return
	}
	return cpu.RegisterOf(tok.Value)
}

// Mnemonic returns the mnemonic a keyword token names.
func (tok Token) Mnemonic() (mn cpu.Mnemonic, ok bool) {
	if tok.Kind != TOKEN_KEYWORD {
		return
	}
	return cpu.MnemonicOf(tok.Value)
}

var keywords = func() map[string]bool {
	table := map[string]bool{}
	for _, name := range cpu.Registers() {
		table[name] = true
	}
	for _, name := range cpu.Mnemonics() {
		table[name] = true
	}
	return table
}()

// IsKeyword is true for an uppercase register or mnemonic name.
func IsKeyword(word string) bool {
	return keywords[word]
}
