package asm

import (
	"errors"

	"github.com/ezrec/x8000/cpu"
	"github.com/ezrec/x8000/translate"
)

var f = translate.From

var (
	// Lexer errors
	ErrLexCharacter    = errors.New(f("unexpected character"))
	ErrLexUnterminated = errors.New(f("unterminated token"))
	ErrLexNumber       = errors.New(f("malformed number"))

	// Parser errors
	ErrTokenUnexpected  = errors.New(f("unexpected token"))
	ErrStatementInvalid = errors.New(f("identifier without ':'"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrCommaMissing     = errors.New(f("',' missing"))

	// Code generator errors
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrOperandInvalid  = errors.New(f("operand invalid"))
	ErrTargetInvalid   = errors.New(f("target invalid"))
	ErrModeUnsupported = cpu.ErrModeUnsupported

	// Code generator warnings
	ErrTargetRegister = errors.New(f("register branch target is not executable"))
)

// ErrLabelMissing is an unresolved label reference.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabel names the label of a label table error.
type ErrLabel string

func (el ErrLabel) Error() string {
	return f("label %v", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLex is a lexer error at a source position.
type ErrLex struct {
	Line int
	Col  int
	Text string
	Err  error
}

func (err ErrLex) Error() string {
	return f("%d:%d '%v' %v", err.Line, err.Col, err.Text, err.Err)
}

func (err ErrLex) Unwrap() error {
	return err.Err
}

// ErrSyntax is a parser or code generator error, by statement.
type ErrSyntax struct {
	Statement int
	Line      int
	Col       int
	Text      string
	Err       error
}

func (err ErrSyntax) Error() string {
	return f("%d:%d statement %d '%v' %v", err.Line, err.Col, err.Statement, err.Text, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
