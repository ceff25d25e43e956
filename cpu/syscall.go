package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
)

// Syscall is the RK selector of an INT instruction.
type Syscall int64

const (
	SYSCALL_WRITE   = Syscall(0x01) // WRITE fd=RP1, addr=RP2, len=RP3
	SYSCALL_READ    = Syscall(0x02) // READ fd=RP1, addr=RP2, len=RP3
	SYSCALL_EXIT    = Syscall(0x0A) // EXIT status=RP1
	SYSCALL_MALLOC  = Syscall(0x61) // MALLOC size=RP1 -> RR1
	SYSCALL_REALLOC = Syscall(0x62) // REALLOC addr=RP1, size=RP2 -> RR1
	SYSCALL_FREE    = Syscall(0x63) // FREE addr=RP1
	SYSCALL_WBUFF   = Syscall(0x64) // WBUFF addr=RP1, byte=RP2
)

// File descriptors understood by WRITE and READ.
const (
	FD_STDOUT = int64(1)
	FD_STDERR = int64(2)
	FD_STDIN  = int64(3)
)

// READ_CHUNK bounds the host buffer of a single READ; a longer request
// stores at most this many bytes.
const READ_CHUNK = 4096

var syscallName = map[Syscall]string{
	SYSCALL_WRITE:   "WRITE",
	SYSCALL_READ:    "READ",
	SYSCALL_EXIT:    "EXIT",
	SYSCALL_MALLOC:  "MALLOC",
	SYSCALL_REALLOC: "REALLOC",
	SYSCALL_FREE:    "FREE",
	SYSCALL_WBUFF:   "WBUFF",
}

func (sc Syscall) String() string {
	name, ok := syscallName[sc]
	if !ok {
		return fmt.Sprintf("Syscall(0x%x)", int64(sc))
	}
	return name
}

var _cpu_defines = map[string]int64{
	"SYS_WRITE":   int64(SYSCALL_WRITE),
	"SYS_READ":    int64(SYSCALL_READ),
	"SYS_EXIT":    int64(SYSCALL_EXIT),
	"SYS_MALLOC":  int64(SYSCALL_MALLOC),
	"SYS_REALLOC": int64(SYSCALL_REALLOC),
	"SYS_FREE":    int64(SYSCALL_FREE),
	"SYS_WBUFF":   int64(SYSCALL_WBUFF),
	"STDOUT":      FD_STDOUT,
	"STDERR":      FD_STDERR,
	"STDIN":       FD_STDIN,
}

// Defines returns the named ISA constants available to assembler
// expressions.
func Defines() iter.Seq2[string, int64] {
	return maps.All(_cpu_defines)
}

// Console is the host side of WRITE and READ.
type Console interface {
	Write(fd int64, data []byte) (err error)
	Read(fd int64, data []byte) (n int, err error)
}

func (cpu *Cpu) param(n int) int64 {
	return cpu.get(REG_RP1 + Register(n-1))
}

// doSyscall runs the syscall selected by RK.
func (cpu *Cpu) doSyscall() (err error) {
	code := cpu.get(REG_RK)
	sc := Syscall(code)

	defer func() {
		if err != nil {
			err = ErrSyscall{Code: code, Err: errors.Join(ErrSyscallFailed, err)}
		}
	}()

	if cpu.Verbose {
		log.Debugf("syscall %v (%d, %d, %d)", sc, cpu.param(1), cpu.param(2), cpu.param(3))
	}

	switch sc {
	case SYSCALL_WRITE:
		fd, addr, size := cpu.param(1), cpu.param(2), cpu.param(3)
		if size < 0 {
			return ErrSyscallSize
		}
		var data []byte
		if size > 0 {
			if addr == 0 {
				return ErrSyscallNull
			}
			data, err = cpu.Memory.Load(uint64(addr), uint64(size))
			if err != nil {
				return
			}
		}
		err = cpu.Console.Write(fd, data)
	case SYSCALL_READ:
		fd, addr, size := cpu.param(1), cpu.param(2), cpu.param(3)
		if size <= 0 {
			return ErrSyscallSize
		}
		if addr == 0 {
			return ErrSyscallNull
		}
		data := make([]byte, min(size, READ_CHUNK))
		var n int
		n, err = cpu.Console.Read(fd, data)
		if err != nil {
			return
		}
		if n <= 0 {
			return ErrSyscallEmpty
		}
		err = cpu.Memory.Store(uint64(addr), data[:n])
	case SYSCALL_EXIT:
		cpu.exit(cpu.param(1))
	case SYSCALL_MALLOC:
		size := cpu.param(1)
		if size < 0 {
			return ErrSyscallSize
		}
		var addr uint64
		addr, err = cpu.Memory.Alloc(uint64(size))
		if err != nil {
			return
		}
		cpu.set(REG_RR1, int64(addr))
	case SYSCALL_REALLOC:
		addr, size := cpu.param(1), cpu.param(2)
		if size < 0 {
			return ErrSyscallSize
		}
		var naddr uint64
		naddr, err = cpu.Memory.Realloc(uint64(addr), uint64(size))
		if err != nil {
			return
		}
		cpu.set(REG_RR1, int64(naddr))
	case SYSCALL_FREE:
		err = cpu.Memory.Free(uint64(cpu.param(1)))
	case SYSCALL_WBUFF:
		addr := cpu.param(1)
		if addr == 0 {
			return ErrSyscallNull
		}
		err = cpu.Memory.Store(uint64(addr), []byte{byte(cpu.param(2))})
	default:
		err = ErrSyscallUnknown
	}

	return
}
