package cpu

import (
	"fmt"
)

// Instruction is a single decoded instruction.
type Instruction struct {
	Offset   int      // Offset of the opcode byte.
	Size     int      // Encoded size, in bytes.
	Opcode   Opcode   // Opcode byte.
	Mnemonic Mnemonic // Decoded mnemonic, unless Bare.
	Mode     Mode     // Decoded width mode.
	Register Register // Destination, or the INC/DEC operand.
	Source   Register // MODE_R source register.
	Value    uint64   // Immediate, or branch target.
	Bare     bool     // A lone register code byte.
}

// String renders the instruction as assembly text.
func (ins Instruction) String() string {
	if ins.Bare {
		return ins.Register.String()
	}

	switch ins.Mnemonic.Arity() {
	case 2:
		if ins.Mode == MODE_R {
			return fmt.Sprintf("%v %v, %v", ins.Mnemonic, ins.Register, ins.Source)
		}
		return fmt.Sprintf("%v %v, 0x%x", ins.Mnemonic, ins.Register, ins.Value)
	case 1:
		if ins.Mnemonic.IsBranch() {
			return fmt.Sprintf("%v 0x%x", ins.Mnemonic, ins.Value)
		}
		return fmt.Sprintf("%v %v", ins.Mnemonic, ins.Register)
	}

	return ins.Mnemonic.String()
}

// DecodeAt decodes the instruction starting at offset, exactly as the CPU
// would consume it.
func DecodeAt(program []byte, offset int) (ins Instruction, err error) {
	if offset < 0 || offset >= len(program) {
		err = ErrIpRange
		return
	}

	ins.Offset = offset
	ins.Opcode = Opcode(program[offset])
	ins.Size = 1

	next := func() (value byte, err error) {
		at := offset + ins.Size
		if at >= len(program) {
			err = ErrIpRange
			return
		}
		ins.Size++
		value = program[at]
		return
	}

	register := func() (reg Register, err error) {
		code, err := next()
		if err != nil {
			return
		}
		reg = Register(code)
		if !reg.Valid() {
			err = ErrRegister(code)
		}
		return
	}

	immediate := func(size int) (value uint64, err error) {
		if offset+ins.Size+size > len(program) {
			err = ErrIpRange
			return
		}
		start := offset + ins.Size
		value = Immediate(program[start : start+size])
		ins.Size += size
		return
	}

	mn, mode, ok := ins.Opcode.Decode()
	if !ok {
		reg := Register(ins.Opcode)
		if reg.Valid() {
			ins.Bare = true
			ins.Register = reg
			return
		}
		err = ErrOpcode(ins.Opcode)
		return
	}

	ins.Mnemonic = mn
	ins.Mode = mode

	switch {
	case mn.Arity() == 2:
		ins.Register, err = register()
		if err != nil {
			return
		}
		if mode == MODE_R {
			ins.Source, err = register()
		} else {
			ins.Value, err = immediate(mode.Bytes())
		}
	case mn.IsBranch():
		ins.Value, err = immediate(8)
	case mn.Arity() == 1:
		ins.Register, err = register()
	}

	return
}

// Disassemble decodes a whole program. Decoding stops at the first
// malformed instruction, returning what was decoded before it.
func Disassemble(program []byte) (list []Instruction, err error) {
	for offset := 0; offset < len(program); {
		var ins Instruction
		ins, err = DecodeAt(program, offset)
		if err != nil {
			err = fmt.Errorf("%04x: %w", offset, err)
			return
		}
		list = append(list, ins)
		offset += ins.Size
	}

	return
}
