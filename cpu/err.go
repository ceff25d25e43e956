package cpu

import (
	"errors"

	"github.com/ezrec/x8000/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted     = errors.New(f("cpu halted"))
	ErrIpRange    = errors.New(f("ip out of range"))
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))

	// Instruction decode errors
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrModeUnsupported = errors.New(f("width mode unsupported"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrOpcodeDest      = errors.New(f("destination"))
	ErrOpcodeSource    = errors.New(f("source"))
	ErrOpcodeTarget    = errors.New(f("target"))

	// Syscall errors
	ErrSyscallUnknown = errors.New(f("syscall unknown"))
	ErrSyscallFailed  = errors.New(f("syscall failed"))
	ErrSyscallSize    = errors.New(f("syscall size invalid"))
	ErrSyscallNull    = errors.New(f("syscall null address"))
	ErrSyscallEmpty   = errors.New(f("syscall read no data"))

	// Symbol table errors
	ErrSymbolsMismatch = errors.New(f("symbols do not match binary"))
)

// ErrRegister is the code of an invalid register operand.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register 0x%02x invalid", byte(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterInvalid
}

// ErrOpcode is the opcode of the instruction that failed.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", byte(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyscall is a failed syscall, by its RK code.
type ErrSyscall struct {
	Code int64
	Err  error
}

func (es ErrSyscall) Error() string {
	return f("syscall 0x%02x %v: %v", es.Code, Syscall(es.Code).String(), es.Err)
}

func (es ErrSyscall) Unwrap() error {
	return es.Err
}
