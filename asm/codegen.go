package asm

import (
	"errors"

	"github.com/ezrec/x8000/cpu"
)

// Sizes of each encoding; they depend only on the node and operand kinds.
const (
	SIZE_REG_REG    = 3  // opcode, dest, source register
	SIZE_REG_IMM    = 10 // opcode, dest, 64-bit immediate
	SIZE_BRANCH     = 9  // opcode, 64-bit address
	SIZE_REGISTER   = 2  // opcode, register
	SIZE_STANDALONE = 1  // opcode or bare register code
)

func isValue(tok *Token) bool {
	switch tok.Kind {
	case TOKEN_ID, TOKEN_NUMBER, TOKEN_EXPR:
		return true
	}
	return false
}

// nodeSize returns the encoded size of a node, validating its operand
// kinds. It runs before any label offsets are known.
func nodeSize(node Node) (size int, err error) {
	switch node.Kind {
	case NODE_LABEL:
		return
	case NODE_OP2:
		if _, ok := node.A.Register(); !ok {
			err = errors.Join(ErrRegisterInvalid, ErrOperandInvalid)
			return
		}
		switch {
		case node.B.Kind == TOKEN_KEYWORD:
			size = SIZE_REG_REG
		case isValue(node.B):
			size = SIZE_REG_IMM
		default:
			err = ErrOperandInvalid
		}
	case NODE_OP1:
		mn, _ := node.Op.Mnemonic()
		_, isReg := node.A.Register()
		switch {
		case isReg:
			size = SIZE_REGISTER
		case mn.IsBranch() && isValue(node.A):
			size = SIZE_BRANCH
		case mn.IsBranch():
			err = ErrTargetInvalid
		default:
			err = ErrRegisterInvalid
		}
	case NODE_OP0:
		size = SIZE_STANDALONE
	}

	return
}

// value resolves a number, expression or label operand.
func (asm *Assembler) value(tok *Token) (value uint64, err error) {
	switch tok.Kind {
	case TOKEN_NUMBER:
		value, err = ParseNumber(tok.Value)
	case TOKEN_EXPR:
		value, err = asm.evaluate(tok.Value)
	case TOKEN_ID:
		var ok bool
		value, ok = asm.Labels.Lookup(tok.Value)
		if !ok {
			err = ErrLabelMissing(tok.Value)
		}
	default:
		err = ErrOperandInvalid
	}
	return
}

func encode(mn cpu.Mnemonic, mode cpu.Mode) (op cpu.Opcode, err error) {
	op, ok := cpu.Encode(mn, mode)
	if !ok {
		err = ErrModeUnsupported
	}
	return
}

// emit appends the encoding of a node to code.
func (asm *Assembler) emit(code []byte, node Node) (out []byte, err error) {
	out = code

	switch node.Kind {
	case NODE_LABEL:
		return
	case NODE_OP0:
		if reg, ok := node.Op.Register(); ok {
			out = append(out, byte(reg))
			return
		}
		mn, _ := node.Op.Mnemonic()
		var op cpu.Opcode
		op, err = encode(mn, cpu.MODE_NONE)
		if err != nil {
			return
		}
		out = append(out, byte(op))
	case NODE_OP2:
		mn, _ := node.Op.Mnemonic()
		dst, _ := node.A.Register()
		if src, ok := node.B.Register(); ok {
			var op cpu.Opcode
			op, err = encode(mn, cpu.MODE_R)
			if err != nil {
				return
			}
			out = append(out, byte(op), byte(dst), byte(src))
			return
		}
		var imm uint64
		imm, err = asm.value(node.B)
		if err != nil {
			return
		}
		var op cpu.Opcode
		op, err = encode(mn, cpu.MODE_64)
		if err != nil {
			return
		}
		out = cpu.AppendImmediate(append(out, byte(op), byte(dst)), cpu.MODE_64, imm)
	case NODE_OP1:
		mn, _ := node.Op.Mnemonic()
		var op cpu.Opcode
		op, err = encode(mn, cpu.MODE_NONE)
		if err != nil {
			return
		}
		if reg, ok := node.A.Register(); ok {
			out = append(out, byte(op), byte(reg))
			return
		}
		var target uint64
		target, err = asm.value(node.A)
		if err != nil {
			return
		}
		out = cpu.AppendAddress(append(out, byte(op)), target)
	}

	return
}
