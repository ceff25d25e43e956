// Package asm assembles x8000 assembly text into a binary program.
//
// Assembly runs in four stages: Lex, Parse, then two code generation
// passes. The first pass sizes every statement and fixes each label's
// offset; the second emits bytes, so labels may be referenced before they
// are declared.
package asm

import (
	"io"

	"github.com/tliron/commonlog"

	"github.com/ezrec/x8000/cpu"
)

var log = commonlog.GetLogger("x8000.asm")

// Assembler holds the state of a single assembly.
type Assembler struct {
	Verbose bool       // If set, verbosely logs the assembler actions.
	Labels  LabelTable // Labels of the most recent assembly.

	// Warnings of the most recent assembly, as ErrSyntax values.
	Warnings []error

	predefine map[string]int64 // Predefines
}

// Predefine defines a named constant for $( ... ) expressions.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Assemble reads all of input and assembles it.
func (asm *Assembler) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	tokens, err := Lex(text)
	if err != nil {
		return
	}

	nodes, err := Parse(tokens)
	if err != nil {
		return
	}

	prog, err = asm.Generate(nodes)

	return
}

func statementError(n int, node Node, err error) error {
	return ErrSyntax{
		Statement: n,
		Line:      node.Op.Line,
		Col:       node.Op.Col,
		Text:      node.String(),
		Err:       err,
	}
}

// Generate encodes parsed statements.
func (asm *Assembler) Generate(nodes []Node) (prog *cpu.Program, err error) {
	asm.Labels.Reset()
	asm.Warnings = nil

	// Pass 1: sizes and label offsets.
	sizes := make([]int, len(nodes))
	offset := uint64(0)
	for n, node := range nodes {
		if node.Kind == NODE_LABEL {
			err = asm.Labels.Declare(node.Op.Value, offset)
			if err != nil {
				err = statementError(n, node, err)
				return
			}
			if asm.Verbose {
				log.Debugf("%04x: %v", offset, node)
			}
		}

		sizes[n], err = nodeSize(node)
		if err != nil {
			err = statementError(n, node, err)
			return
		}
		offset += uint64(sizes[n])
	}

	// Pass 2: emit.
	prog = &cpu.Program{
		Labels: asm.Labels.Labels(),
	}

	code := make([]byte, 0, offset)
	for n, node := range nodes {
		start := len(code)
		code, err = asm.emit(code, node)
		if err != nil {
			prog = nil
			err = statementError(n, node, err)
			return
		}

		size := len(code) - start
		if size != sizes[n] {
			panic("asm: emitted size differs from the first pass")
		}

		if node.Kind == NODE_OP1 {
			mn, _ := node.Op.Mnemonic()
			if _, ok := node.A.Register(); ok && mn.IsBranch() {
				warning := statementError(n, node, ErrTargetRegister)
				log.Warningf("%v", warning)
				asm.Warnings = append(asm.Warnings, warning)
			}
		}
		if size == 0 {
			continue
		}

		if asm.Verbose {
			log.Debugf("%04x: % 02x  %v", start, code[start:], node)
		}

		prog.Statements = append(prog.Statements, cpu.Statement{
			Offset: uint64(start),
			Size:   size,
			Line:   node.Op.Line,
			Text:   node.String(),
		})
	}

	prog.Binary = code

	if asm.Verbose {
		log.Infof("%d bytes, %d labels", len(code), asm.Labels.Len())
	}

	return
}
