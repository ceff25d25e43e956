package cpu

import (
	"fmt"
	"strings"
)

// Mnemonic is an instruction name, independent of operand width.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MN_MOV  = Mnemonic(iota) // MOV
	MN_CMP                   // CMP
	MN_JMP                   // JMP
	MN_JE                    // JE
	MN_JNE                   // JNE
	MN_JNZ                   // JNZ
	MN_CALL                  // CALL
	MN_RET                   // RET
	MN_INC                   // INC
	MN_DEC                   // DEC
	MN_ADD                   // ADD
	MN_SUB                   // SUB
	MN_MUL                   // MUL
	MN_DIV                   // DIV
	MN_INT                   // INT
)

// Arity returns the number of operands the mnemonic takes in assembly text.
func (mn Mnemonic) Arity() int {
	switch mn {
	case MN_MOV, MN_CMP, MN_ADD, MN_SUB, MN_MUL, MN_DIV:
		return 2
	case MN_JMP, MN_JE, MN_JNE, MN_JNZ, MN_CALL, MN_INC, MN_DEC:
		return 1
	default:
		return 0
	}
}

// IsBranch is true for mnemonics whose immediate operand is an absolute
// program address.
func (mn Mnemonic) IsBranch() bool {
	switch mn {
	case MN_JMP, MN_JE, MN_JNE, MN_JNZ, MN_CALL:
		return true
	}
	return false
}

// MnemonicOf looks up a mnemonic by name, ignoring case.
func MnemonicOf(name string) (mn Mnemonic, ok bool) {
	name = strings.ToUpper(name)
	for mn = range MN_INT + 1 {
		if mn.String() == name {
			return mn, true
		}
	}
	return 0, false
}

// Mnemonics returns all of the mnemonic names.
func Mnemonics() (names []string) {
	for mn := range MN_INT + 1 {
		names = append(names, mn.String())
	}
	return
}

// Mode is the operand width variant of an opcode.
type Mode int

const (
	MODE_NONE = Mode(iota) // single encoding, no width variants
	MODE_R                 // register source
	MODE_8                 // 8-bit immediate source
	MODE_16                // 16-bit immediate source
	MODE_32                // 32-bit immediate source
	MODE_64                // 64-bit immediate source
)

func (mode Mode) String() string {
	switch mode {
	case MODE_NONE:
		return ""
	case MODE_R:
		return "r"
	case MODE_8:
		return "8"
	case MODE_16:
		return "16"
	case MODE_32:
		return "32"
	case MODE_64:
		return "64"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// Bytes returns the size of the immediate operand for the mode.
func (mode Mode) Bytes() int {
	switch mode {
	case MODE_8:
		return 1
	case MODE_16:
		return 2
	case MODE_32:
		return 4
	case MODE_64:
		return 8
	}
	return 0
}

// Opcode is the first byte of an encoded instruction.
type Opcode byte

const (
	OP_MOV_R  = Opcode(0x20)
	OP_MOV_8  = Opcode(0x21)
	OP_MOV_16 = Opcode(0x22)
	OP_MOV_32 = Opcode(0x23)
	OP_MOV_64 = Opcode(0x24)
	OP_CMP_R  = Opcode(0x31)
	OP_CMP_8  = Opcode(0x32)
	OP_CMP_16 = Opcode(0x33)
	OP_CMP_32 = Opcode(0x34)
	OP_CMP_64 = Opcode(0x35)
	OP_JMP    = Opcode(0x40)
	OP_JE     = Opcode(0x41)
	OP_JNE    = Opcode(0x42)
	OP_JNZ    = Opcode(0x43)
	OP_CALL   = Opcode(0x51)
	OP_RET    = Opcode(0x52)
	OP_INC    = Opcode(0x61)
	OP_DEC    = Opcode(0x62)
	OP_ADD_R  = Opcode(0x66)
	OP_ADD_8  = Opcode(0x67)
	OP_ADD_16 = Opcode(0x68)
	OP_ADD_32 = Opcode(0x69)
	OP_ADD_64 = Opcode(0x70)
	OP_SUB_R  = Opcode(0x76)
	OP_SUB_8  = Opcode(0x77)
	OP_SUB_16 = Opcode(0x78)
	OP_SUB_32 = Opcode(0x79)
	OP_SUB_64 = Opcode(0x80)
	OP_MUL_R  = Opcode(0x86)
	OP_MUL_8  = Opcode(0x87)
	OP_MUL_16 = Opcode(0x88)
	OP_MUL_32 = Opcode(0x89)
	OP_MUL_64 = Opcode(0x90)
	OP_DIV_R  = Opcode(0x96)
	OP_DIV_8  = Opcode(0x97)
	OP_DIV_16 = Opcode(0x98)
	OP_DIV_32 = Opcode(0x99)
	OP_DIV_64 = Opcode(0x9A)
	OP_INT    = Opcode(0xFF)
)

type opcodeForm struct {
	Mnemonic Mnemonic
	Mode     Mode
}

// opcodeTable is the one ISA table; both the assembler and the decoder
// derive their mappings from it.
var opcodeTable = map[Opcode]opcodeForm{
	OP_MOV_R:  {MN_MOV, MODE_R},
	OP_MOV_8:  {MN_MOV, MODE_8},
	OP_MOV_16: {MN_MOV, MODE_16},
	OP_MOV_32: {MN_MOV, MODE_32},
	OP_MOV_64: {MN_MOV, MODE_64},
	OP_CMP_R:  {MN_CMP, MODE_R},
	OP_CMP_8:  {MN_CMP, MODE_8},
	OP_CMP_16: {MN_CMP, MODE_16},
	OP_CMP_32: {MN_CMP, MODE_32},
	OP_CMP_64: {MN_CMP, MODE_64},
	OP_JMP:    {MN_JMP, MODE_NONE},
	OP_JE:     {MN_JE, MODE_NONE},
	OP_JNE:    {MN_JNE, MODE_NONE},
	OP_JNZ:    {MN_JNZ, MODE_NONE},
	OP_CALL:   {MN_CALL, MODE_NONE},
	OP_RET:    {MN_RET, MODE_NONE},
	OP_INC:    {MN_INC, MODE_NONE},
	OP_DEC:    {MN_DEC, MODE_NONE},
	OP_ADD_R:  {MN_ADD, MODE_R},
	OP_ADD_8:  {MN_ADD, MODE_8},
	OP_ADD_16: {MN_ADD, MODE_16},
	OP_ADD_32: {MN_ADD, MODE_32},
	OP_ADD_64: {MN_ADD, MODE_64},
	OP_SUB_R:  {MN_SUB, MODE_R},
	OP_SUB_8:  {MN_SUB, MODE_8},
	OP_SUB_16: {MN_SUB, MODE_16},
	OP_SUB_32: {MN_SUB, MODE_32},
	OP_SUB_64: {MN_SUB, MODE_64},
	OP_MUL_R:  {MN_MUL, MODE_R},
	OP_MUL_8:  {MN_MUL, MODE_8},
	OP_MUL_16: {MN_MUL, MODE_16},
	OP_MUL_32: {MN_MUL, MODE_32},
	OP_MUL_64: {MN_MUL, MODE_64},
	OP_DIV_R:  {MN_DIV, MODE_R},
	OP_DIV_8:  {MN_DIV, MODE_8},
	OP_DIV_16: {MN_DIV, MODE_16},
	OP_DIV_32: {MN_DIV, MODE_32},
	OP_DIV_64: {MN_DIV, MODE_64},
	OP_INT:    {MN_INT, MODE_NONE},
}

var encodeTable = func() map[opcodeForm]Opcode {
	table := make(map[opcodeForm]Opcode, len(opcodeTable))
	for op, form := range opcodeTable {
		table[form] = op
	}
	return table
}()

// Encode returns the opcode for a mnemonic in the given width mode.
func Encode(mn Mnemonic, mode Mode) (op Opcode, ok bool) {
	op, ok = encodeTable[opcodeForm{mn, mode}]
	return
}

// Decode returns the mnemonic and width mode of an opcode.
func (op Opcode) Decode() (mn Mnemonic, mode Mode, ok bool) {
	form, ok := opcodeTable[op]
	if !ok {
		return
	}
	return form.Mnemonic, form.Mode, true
}

// String returns the opcode as MNEMONIC or MNEMONIC.mode.
func (op Opcode) String() string {
	mn, mode, ok := op.Decode()
	if !ok {
		return fmt.Sprintf("?%02X", byte(op))
	}
	if mode == MODE_NONE {
		return mn.String()
	}
	return mn.String() + "." + mode.String()
}
