package cpu

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	program := slices.Concat(
		opRI(OP_MOV_64, REG_R1, 5),
		opRR(OP_CMP_R, REG_R1, REG_R2),
		opRI(OP_ADD_8, REG_RP3, 0xff),
		opBranch(OP_JNE, 0x1c),
		opR(OP_DEC, REG_RR8),
		op0(OP_RET),
		op0(OP_INT),
		[]byte{byte(REG_SP)},
	)

	list, err := Disassemble(program)
	assert.NoError(err)

	text := []string{}
	for _, ins := range list {
		text = append(text, ins.String())
	}

	assert.Equal([]string{
		"MOV R1, 0x5",
		"CMP R1, R2",
		"ADD RP3, 0xff",
		"JNE 0x1c",
		"DEC RR8",
		"RET",
		"INT",
		"SP",
	}, text)

	offset := 0
	for _, ins := range list {
		assert.Equal(offset, ins.Offset)
		offset += ins.Size
	}
	assert.Equal(len(program), offset)
}

func TestDecodeAt_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		err     error
	}){
		{"empty", []byte{}, ErrIpRange},
		{"opcode", []byte{0x01}, ErrOpcode(0x01)},
		{"register", []byte{byte(OP_INC), 0x00}, ErrRegisterInvalid},
		{"short-register", []byte{byte(OP_MOV_R), byte(REG_R1)}, ErrIpRange},
		{"short-immediate", []byte{byte(OP_MOV_32), byte(REG_R1), 1, 2, 3}, ErrIpRange},
		{"short-target", []byte{byte(OP_CALL), 1, 2, 3, 4, 5, 6, 7}, ErrIpRange},
	}

	for _, entry := range table {
		_, err := DecodeAt(entry.program, 0)
		assert.ErrorIs(err, entry.err, entry.name)
	}
}

// Decoding and executing agree on every operand, for every opcode.
func TestDecodeAt_Execute(t *testing.T) {
	assert := assert.New(t)

	for op, form := range opcodeTable {
		var program []byte
		switch {
		case form.Mnemonic.Arity() == 2 && form.Mode == MODE_R:
			program = opRR(op, REG_R1, REG_R2)
		case form.Mnemonic.Arity() == 2:
			program = opRI(op, REG_R1, 0x0102030405060708)
		case form.Mnemonic.IsBranch():
			program = opBranch(op, 0)
		case form.Mnemonic.Arity() == 1:
			program = opR(op, REG_R1)
		default:
			continue
		}

		ins, err := DecodeAt(program, 0)
		assert.NoError(err, op.String())
		assert.Equal(len(program), ins.Size, op.String())
		assert.Equal(form.Mnemonic, ins.Mnemonic, op.String())

		cpu, _ := newTestCpu(program)
		cpu.Stack.Push(0)
		assert.NoError(cpu.Tick(), op.String())
		if form.Mnemonic.IsBranch() {
			continue
		}
		assert.Equal(int64(ins.Size-1), cpu.Ip(), op.String())
	}
}
