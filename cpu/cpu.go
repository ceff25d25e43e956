package cpu

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/ezrec/x8000/memory"
)

var log = commonlog.GetLogger("x8000.cpu")

// Memory is the host memory capability used by syscalls.
type Memory memory.Memory

// Cpu is the simulation context for the x8000.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program  []byte       // Program, which is also the instruction memory.
	Register RegisterFile // Register bank.
	Stack    Stack        // Call stack.
	Memory   Memory       // Host memory for syscalls.
	Console  Console      // Host streams for syscalls.

	Halted   bool  // No further instructions will run.
	Exited   bool  // EXIT has run, and ExitCode is final.
	ExitCode int64 // Exit code, once halted.
	Fetch    int64 // Address of the most recently fetched opcode.

	Ticks int // CPU ticks counter.
}

// NewCpu creates a new CPU attached to host streams and memory.
func NewCpu(console Console, mem Memory) (cpu *Cpu) {
	cpu = &Cpu{
		Console: console,
		Memory:  mem,
	}
	cpu.Reset()

	return
}

// Load a program, and reset the CPU.
func (cpu *Cpu) Load(program []byte) {
	cpu.Program = program
	cpu.Reset()
}

// Reset the CPU state.
// - Clears the registers and call stack.
// - Sets IP to -1, so the first fetch is at address 0.
// - Zeros the statistics counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Infof("reset")
	}

	cpu.Register.Reset()
	cpu.Stack.Reset()
	cpu.Halted = false
	cpu.Exited = false
	cpu.ExitCode = 0
	cpu.Fetch = 0
	cpu.Ticks = 0
}

// Ip returns the current instruction pointer.
func (cpu *Cpu) Ip() int64 {
	return cpu.get(REG_IP)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Register.String()
	top, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("stack: %d, top %016X\n", cpu.Stack.Depth(), top)
	} else {
		text += "stack: empty\n"
	}
	return
}

func (cpu *Cpu) get(reg Register) int64 {
	return cpu.Register[reg-REG_FIRST]
}

func (cpu *Cpu) set(reg Register, value int64) {
	cpu.Register[reg-REG_FIRST] = value
}

func (cpu *Cpu) exit(code int64) {
	if !cpu.Exited {
		cpu.Exited = true
		cpu.ExitCode = code
	}
	cpu.Halted = true
	if cpu.Verbose {
		log.Infof("exit %d", cpu.ExitCode)
	}
}

func (cpu *Cpu) fail() {
	if !cpu.Exited {
		cpu.ExitCode = 1
	}
	cpu.Halted = true
}

// Tick executes a single instruction.
// A fetch exactly at the end of the program halts cleanly.
// Any error halts the CPU with a failure exit code.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.fail()
		}
	}()

	ip := cpu.Ip() + 1
	if ip == int64(len(cpu.Program)) {
		if cpu.Verbose {
			log.Infof("%04x: end of program", ip)
		}
		cpu.Halted = true
		return
	}

	if ip < 0 || ip > int64(len(cpu.Program)) {
		err = ErrIpRange
		return
	}

	cpu.set(REG_IP, ip)
	cpu.Fetch = ip
	cpu.Ticks++

	err = cpu.Execute(Opcode(cpu.Program[ip]))

	return
}

// Execute an opcode whose byte has already been consumed; operands are read
// from the program following IP.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	if cpu.Verbose {
		log.Debugf("%04x: %v", cpu.Ip(), op)
	}

	mn, mode, ok := op.Decode()
	if !ok {
		err = ErrOpcodeUnknown
		return
	}

	switch mn {
	case MN_MOV, MN_CMP, MN_ADD, MN_SUB, MN_MUL, MN_DIV:
		var dst Register
		dst, err = cpu.fetchRegister()
		if err != nil {
			err = errors.Join(ErrOpcodeDest, err)
			return
		}
		a := cpu.get(dst)
		var b int64
		b, err = cpu.fetchValue(mode)
		if err != nil {
			err = errors.Join(ErrOpcodeSource, err)
			return
		}
		if mn == MN_CMP {
			cpu.set(REG_RC, doCmp(a, b))
		} else {
			cpu.set(dst, doAlu(mn, a, b))
		}
	case MN_JMP, MN_JE, MN_JNE, MN_JNZ, MN_CALL:
		var target uint64
		target, err = cpu.fetchImmediate(8)
		if err != nil {
			err = errors.Join(ErrOpcodeTarget, err)
			return
		}
		rc := cpu.get(REG_RC)
		taken := true
		switch mn {
		case MN_JE:
			taken = (rc & FLAG_EQUAL) != 0
		case MN_JNE:
			taken = (rc & FLAG_EQUAL) == 0
		case MN_JNZ:
			taken = (rc & FLAG_NONZERO) != 0
		case MN_CALL:
			if cpu.Stack.Full() {
				err = ErrStackFull
				return
			}
			cpu.Stack.Push(uint64(cpu.Ip()))
		}
		if taken {
			cpu.jump(target)
		}
	case MN_RET:
		ret, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.set(REG_IP, int64(ret))
	case MN_INC, MN_DEC:
		var reg Register
		reg, err = cpu.fetchRegister()
		if err != nil {
			err = errors.Join(ErrOpcodeDest, err)
			return
		}
		if mn == MN_INC {
			cpu.set(reg, cpu.get(reg)+1)
		} else {
			cpu.set(reg, cpu.get(reg)-1)
		}
	case MN_INT:
		err = cpu.doSyscall()
	default:
		err = ErrOpcodeUnknown
	}

	return
}

// jump so that the next fetch is at target.
func (cpu *Cpu) jump(target uint64) {
	if cpu.Verbose {
		log.Debugf("%04x: jump to %04x", cpu.Ip(), target)
	}
	cpu.set(REG_IP, int64(target)-1)
}

func (cpu *Cpu) fetchByte() (value byte, err error) {
	ip := cpu.Ip() + 1
	if ip < 0 || ip >= int64(len(cpu.Program)) {
		err = ErrIpRange
		return
	}
	cpu.set(REG_IP, ip)
	value = cpu.Program[ip]
	return
}

func (cpu *Cpu) fetchRegister() (reg Register, err error) {
	code, err := cpu.fetchByte()
	if err != nil {
		return
	}
	reg = Register(code)
	if !reg.Valid() {
		err = ErrRegister(code)
	}
	return
}

func (cpu *Cpu) fetchImmediate(size int) (value uint64, err error) {
	var buff [8]byte
	for n := range size {
		buff[n], err = cpu.fetchByte()
		if err != nil {
			return
		}
	}
	value = Immediate(buff[:size])
	return
}

// fetchValue reads a source operand: a register, or a zero-extended
// immediate of the width given by the mode.
func (cpu *Cpu) fetchValue(mode Mode) (value int64, err error) {
	switch mode {
	case MODE_R:
		var reg Register
		reg, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		value = cpu.get(reg)
	case MODE_8, MODE_16, MODE_32, MODE_64:
		var imm uint64
		imm, err = cpu.fetchImmediate(mode.Bytes())
		value = int64(imm)
	default:
		err = ErrModeUnsupported
	}
	return
}

func doCmp(a, b int64) (rc int64) {
	if a == b {
		rc |= FLAG_EQUAL
	}
	if a != 0 {
		rc |= FLAG_NONZERO
	}
	return
}

func doAlu(mn Mnemonic, a int64, b int64) (out int64) {
	switch mn {
	case MN_MOV:
		out = b
	case MN_ADD:
		out = a + b
	case MN_SUB:
		out = a - b
	case MN_MUL:
		out = a * b
	case MN_DIV:
		// Zero dividend and zero divisor both yield zero.
		if a != 0 && b != 0 {
			out = a / b
		}
	}
	return
}
