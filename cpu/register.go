package cpu

import (
	"fmt"
	"strings"
)

// Register is the one-byte code of a register operand.
type Register byte

const (
	REG_IP  = Register(0xA0 + iota) // instruction pointer
	REG_RK                          // syscall selector
	REG_RC                          // comparison flags
	REG_SP                          // reserved
	REG_R1                          // general purpose
	REG_R2                          // general purpose
	REG_R3                          // general purpose
	REG_R4                          // general purpose
	REG_R5                          // general purpose
	REG_R6                          // general purpose
	REG_R7                          // general purpose
	REG_R8                          // general purpose
	REG_RP1                         // syscall parameter
	REG_RP2                         // syscall parameter
	REG_RP3                         // syscall parameter
	REG_RP4                         // syscall parameter
	REG_RP5                         // syscall parameter
	REG_RP6                         // syscall parameter
	REG_RP7                         // syscall parameter
	REG_RP8                         // syscall parameter
	REG_RR1                         // syscall result
	REG_RR2                         // syscall result
	REG_RR3                         // syscall result
	REG_RR4                         // syscall result
	REG_RR5                         // syscall result
	REG_RR6                         // syscall result
	REG_RR7                         // syscall result
	REG_RR8                         // syscall result
)

const (
	REG_FIRST = REG_IP
	REG_LAST  = REG_RR8
	REG_COUNT = int(REG_LAST-REG_FIRST) + 1
)

// Comparison flag bits held in RC.
const (
	FLAG_EQUAL   = int64(0x40) // operands compared equal
	FLAG_NONZERO = int64(0x80) // first compared operand was non-zero
)

var registerName = [REG_COUNT]string{
	"IP", "RK", "RC", "SP",
	"R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8",
	"RP1", "RP2", "RP3", "RP4", "RP5", "RP6", "RP7", "RP8",
	"RR1", "RR2", "RR3", "RR4", "RR5", "RR6", "RR7", "RR8",
}

// Valid is true if the byte is one of the 28 register codes.
func (reg Register) Valid() bool {
	return reg >= REG_FIRST && reg <= REG_LAST
}

func (reg Register) String() string {
	if !reg.Valid() {
		return fmt.Sprintf("?%02X", byte(reg))
	}
	return registerName[reg-REG_FIRST]
}

// RegisterOf looks up a register by name, ignoring case.
func RegisterOf(name string) (reg Register, ok bool) {
	name = strings.ToUpper(name)
	for n, str := range registerName {
		if str == name {
			return REG_FIRST + Register(n), true
		}
	}
	return
}

// Registers returns all of the register names, in code order.
func Registers() []string {
	return registerName[:]
}

// RegisterFile is the complete register state of the machine.
type RegisterFile [REG_COUNT]int64

// Reset zeroes every register, and parks IP just before the first byte.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
	rf[REG_IP-REG_FIRST] = -1
}

// Get returns the value of a register.
func (rf *RegisterFile) Get(reg Register) (value int64, err error) {
	if !reg.Valid() {
		err = ErrRegister(reg)
		return
	}
	value = rf[reg-REG_FIRST]
	return
}

// Set stores a value into a register.
func (rf *RegisterFile) Set(reg Register, value int64) (err error) {
	if !reg.Valid() {
		err = ErrRegister(reg)
		return
	}
	rf[reg-REG_FIRST] = value
	return
}

// String returns the register file in a four column dump.
func (rf *RegisterFile) String() (text string) {
	for n, name := range registerName {
		text += fmt.Sprintf("% 4s: %016X", name, uint64(rf[n]))
		if n%4 == 3 {
			text += "\n"
		} else {
			text += "  "
		}
	}
	return
}
