package cpu

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/x8000/memory"
)

var errTestFd = errors.New("test console: bad fd")

type testConsole struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	stdin  bytes.Buffer
}

func (tc *testConsole) Write(fd int64, data []byte) (err error) {
	switch fd {
	case FD_STDOUT:
		tc.stdout.Write(data)
	case FD_STDERR:
		tc.stderr.Write(data)
	default:
		err = errTestFd
	}
	return
}

func (tc *testConsole) Read(fd int64, data []byte) (n int, err error) {
	if fd != FD_STDIN {
		err = errTestFd
		return
	}
	n, _ = tc.stdin.Read(data)
	return
}

// Hand assemblers for test programs.

func opRI(op Opcode, dst Register, value uint64) []byte {
	_, mode, _ := op.Decode()
	return AppendImmediate([]byte{byte(op), byte(dst)}, mode, value)
}

func opRR(op Opcode, dst Register, src Register) []byte {
	return []byte{byte(op), byte(dst), byte(src)}
}

func opBranch(op Opcode, target uint64) []byte {
	return AppendAddress([]byte{byte(op)}, target)
}

func opR(op Opcode, reg Register) []byte {
	return []byte{byte(op), byte(reg)}
}

func op0(op Opcode) []byte {
	return []byte{byte(op)}
}

func newTestCpu(program ...[]byte) (cpu *Cpu, con *testConsole) {
	con = &testConsole{}
	cpu = NewCpu(con, memory.NewSandbox(4096))
	cpu.Load(slices.Concat(program...))
	return
}

func run(cpu *Cpu) (err error) {
	for n := 0; n < 10000 && !cpu.Halted; n++ {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}
	return
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu()
	assert.Equal(int64(-1), cpu.Ip())

	// An empty program halts cleanly on the first fetch.
	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
	assert.Equal(int64(0), cpu.ExitCode)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
}

func TestCpu_Immediate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		op    Opcode
		value uint64
		want  int64
	}){
		{"8", OP_MOV_8, 0xff, 0xff},
		{"16", OP_MOV_16, 0xbeef, 0xbeef},
		{"32", OP_MOV_32, 0xdeadbeef, 0xdeadbeef},
		{"64", OP_MOV_64, 0x0123456789abcdef, 0x0123456789abcdef},
		{"64-neg", OP_MOV_64, 0xffffffffffffffff, -1},
		{"8-trunc", OP_MOV_8, 0x1234, 0x34},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(
			opRI(OP_MOV_64, REG_R1, 0x5555555555555555),
			opRI(entry.op, REG_R1, entry.value),
		)
		assert.NoError(run(cpu), entry.name)
		r1, _ := cpu.Register.Get(REG_R1)
		assert.Equal(entry.want, r1, entry.name)
	}
}

func TestCpu_Alu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		op   Opcode
		a    int64
		b    int64
		want int64
	}){
		{"mov", OP_MOV_R, 1, 2, 2},
		{"add", OP_ADD_R, 40, 2, 42},
		{"add-wrap", OP_ADD_R, 0x7fffffffffffffff, 1, -0x8000000000000000},
		{"sub", OP_SUB_R, 2, 5, -3},
		{"mul", OP_MUL_R, -6, 7, -42},
		{"div", OP_DIV_R, 43, 7, 6},
		{"div-neg", OP_DIV_R, -43, 7, -6},
		{"div-zero-divisor", OP_DIV_R, 43, 0, 0},
		{"div-zero-dividend", OP_DIV_R, 0, 7, 0},
		{"div-min", OP_DIV_R, -0x8000000000000000, -1, -0x8000000000000000},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(
			opRI(OP_MOV_64, REG_R1, uint64(entry.a)),
			opRI(OP_MOV_64, REG_R2, uint64(entry.b)),
			opRR(entry.op, REG_R1, REG_R2),
		)
		assert.NoError(run(cpu), entry.name)
		r1, _ := cpu.Register.Get(REG_R1)
		assert.Equal(entry.want, r1, entry.name)
		assert.Equal(int64(0), cpu.ExitCode, entry.name)
	}
}

func TestCpu_AluImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(
		opRI(OP_MOV_8, REG_R3, 10),
		opRI(OP_ADD_16, REG_R3, 0x100),
		opRI(OP_SUB_8, REG_R3, 1),
		opRI(OP_MUL_32, REG_R3, 2),
		opRI(OP_DIV_64, REG_R3, 3),
		opR(OP_INC, REG_R4),
		opR(OP_INC, REG_R4),
		opR(OP_DEC, REG_R5),
	)
	assert.NoError(run(cpu))

	r3, _ := cpu.Register.Get(REG_R3)
	r4, _ := cpu.Register.Get(REG_R4)
	r5, _ := cpu.Register.Get(REG_R5)
	assert.Equal(int64((10+0x100-1)*2/3), r3)
	assert.Equal(int64(2), r4)
	assert.Equal(int64(-1), r5)
}

func TestCpu_Branch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		op    Opcode
		a     uint64
		b     uint64
		taken bool
	}){
		{"je-equal", OP_JE, 5, 5, true},
		{"je-differ", OP_JE, 5, 6, false},
		{"jne-equal", OP_JNE, 5, 5, false},
		{"jne-differ", OP_JNE, 5, 6, true},
		{"jnz-zero", OP_JNZ, 0, 0, false},
		{"jnz-zero-differ", OP_JNZ, 0, 6, false},
		{"jnz-nonzero", OP_JNZ, 5, 0, true},
		{"jnz-nonzero-equal", OP_JNZ, 5, 5, true},
		{"jmp", OP_JMP, 0, 1, true},
	}

	for _, entry := range table {
		// 0: MOV R1, a; 10: CMP R1, b; 20: Jcc 39; 29: MOV R2, 1; 39: end
		cpu, _ := newTestCpu(
			opRI(OP_MOV_64, REG_R1, entry.a),
			opRI(OP_CMP_64, REG_R1, entry.b),
			opBranch(entry.op, 39),
			opRI(OP_MOV_64, REG_R2, 1),
		)
		assert.Equal(39, len(cpu.Program), entry.name)
		assert.NoError(run(cpu), entry.name)

		r2, _ := cpu.Register.Get(REG_R2)
		if entry.taken {
			assert.Equal(int64(0), r2, entry.name)
		} else {
			assert.Equal(int64(1), r2, entry.name)
		}
	}
}

func TestCpu_Cmp(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		a, b int64
		rc   int64
	}){
		{0, 0, FLAG_EQUAL},
		{0, 1, 0},
		{1, 1, FLAG_EQUAL | FLAG_NONZERO},
		{1, 0, FLAG_NONZERO},
		{-1, 2, FLAG_NONZERO},
	}

	for _, entry := range table {
		assert.Equal(entry.rc, doCmp(entry.a, entry.b), "%v", entry)
	}
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	// 0: CALL 28; 9: MOV R2, 1; 19: JMP 31; 28: INC R1; 30: RET; 31: end
	cpu, _ := newTestCpu(
		opBranch(OP_CALL, 28),
		opRI(OP_MOV_64, REG_R2, 1),
		opBranch(OP_JMP, 31),
		opR(OP_INC, REG_R1),
		op0(OP_RET),
	)
	assert.Equal(31, len(cpu.Program))

	assert.NoError(cpu.Tick())
	assert.Equal(1, cpu.Stack.Depth())
	top, _ := cpu.Stack.Peek()
	assert.Equal(uint64(8), top)
	assert.Equal(int64(27), cpu.Ip())

	assert.NoError(run(cpu))
	assert.True(cpu.Halted)
	assert.True(cpu.Stack.Empty())

	r1, _ := cpu.Register.Get(REG_R1)
	r2, _ := cpu.Register.Get(REG_R2)
	assert.Equal(int64(1), r1)
	assert.Equal(int64(1), r2)
	assert.Equal(int64(0), cpu.ExitCode)
}

func TestCpu_Failure(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []byte
		err     error
	}){
		{"ret-empty", op0(OP_RET), ErrStackEmpty},
		{"opcode", []byte{0x00}, ErrOpcodeUnknown},
		{"register-dest", []byte{byte(OP_MOV_R), 0x10, byte(REG_R1)}, ErrRegisterInvalid},
		{"register-src", []byte{byte(OP_ADD_R), byte(REG_R1), 0xBC}, ErrRegisterInvalid},
		{"register-inc", []byte{byte(OP_INC), 0x9F}, ErrRegisterInvalid},
		{"truncated", []byte{byte(OP_MOV_64), byte(REG_R1), 1, 2}, ErrIpRange},
		{"jump-past", opBranch(OP_JMP, 100), ErrIpRange},
		{"jump-neg", opBranch(OP_JMP, 0x8000000000000000), ErrIpRange},
		{"bare-register", []byte{byte(REG_R1)}, ErrOpcodeUnknown},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(entry.program)
		err := run(cpu)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.True(cpu.Halted, entry.name)
		assert.Equal(int64(1), cpu.ExitCode, entry.name)
	}
}

func TestCpu_StackFull(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(opBranch(OP_CALL, 0))
	cpu.Stack.Limit = 3

	err := run(cpu)
	assert.ErrorIs(err, ErrStackFull)
	assert.Equal(3, cpu.Stack.Depth())
	assert.Equal(int64(1), cpu.ExitCode)
}

func TestCpu_Syscall_Heap(t *testing.T) {
	assert := assert.New(t)

	cpu, con := newTestCpu(
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_MALLOC)),
		opRI(OP_MOV_8, REG_RP1, 16),
		op0(OP_INT),
		opRR(OP_MOV_R, REG_RP1, REG_RR1),
		opRI(OP_MOV_8, REG_RP2, 'A'),
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_WBUFF)),
		op0(OP_INT),
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_WRITE)),
		opRR(OP_MOV_R, REG_RP2, REG_RP1),
		opRI(OP_MOV_8, REG_RP1, uint64(FD_STDOUT)),
		opRI(OP_MOV_8, REG_RP3, 1),
		op0(OP_INT),
	)

	assert.NoError(run(cpu))
	assert.Equal("A", con.stdout.String())
	assert.Equal(int64(0), cpu.ExitCode)

	rr1, _ := cpu.Register.Get(REG_RR1)
	assert.Equal(int64(memory.SANDBOX_BASE), rr1)
}

func TestCpu_Syscall_Realloc(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(
		// REALLOC(null, 8) allocates.
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_REALLOC)),
		opRI(OP_MOV_8, REG_RP1, 0),
		opRI(OP_MOV_8, REG_RP2, 8),
		op0(OP_INT),
		opRR(OP_MOV_R, REG_R1, REG_RR1),
		// FREE(RR1), then FREE(null).
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_FREE)),
		opRR(OP_MOV_R, REG_RP1, REG_R1),
		op0(OP_INT),
		opRI(OP_MOV_8, REG_RP1, 0),
		op0(OP_INT),
	)

	assert.NoError(run(cpu))
	r1, _ := cpu.Register.Get(REG_R1)
	assert.Equal(int64(memory.SANDBOX_BASE), r1)
}

func TestCpu_Syscall_Read(t *testing.T) {
	assert := assert.New(t)

	cpu, con := newTestCpu(
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_MALLOC)),
		opRI(OP_MOV_8, REG_RP1, 8),
		op0(OP_INT),
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_READ)),
		opRI(OP_MOV_8, REG_RP1, uint64(FD_STDIN)),
		opRR(OP_MOV_R, REG_RP2, REG_RR1),
		opRI(OP_MOV_8, REG_RP3, 8),
		opRI(OP_MOV_8, REG_RR1, 0x55),
		op0(OP_INT),
	)
	con.stdin.WriteString("hi")

	assert.NoError(run(cpu))

	// READ leaves RR1 untouched.
	rr1, _ := cpu.Register.Get(REG_RR1)
	assert.Equal(int64(0x55), rr1)

	data, err := cpu.Memory.Load(memory.SANDBOX_BASE, 2)
	assert.NoError(err)
	assert.Equal("hi", string(data))
}

func TestCpu_Syscall_ReadHuge(t *testing.T) {
	assert := assert.New(t)

	cpu, con := newTestCpu(
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_MALLOC)),
		opRI(OP_MOV_8, REG_RP1, 8),
		op0(OP_INT),
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_READ)),
		opRI(OP_MOV_8, REG_RP1, uint64(FD_STDIN)),
		opRR(OP_MOV_R, REG_RP2, REG_RR1),
		opRI(OP_MOV_64, REG_RP3, 1<<62),
		op0(OP_INT),
	)
	con.stdin.WriteString("hi")

	var err error
	assert.NotPanics(func() { err = run(cpu) })
	assert.NoError(err)
	assert.Equal(int64(0), cpu.ExitCode)

	data, err := cpu.Memory.Load(memory.SANDBOX_BASE, 2)
	assert.NoError(err)
	assert.Equal("hi", string(data))

	// A request past the arena still fails once data arrives.
	cpu, con = newTestCpu(
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_READ)),
		opRI(OP_MOV_8, REG_RP1, uint64(FD_STDIN)),
		opRI(OP_MOV_64, REG_RP2, memory.SANDBOX_BASE+4095),
		opRI(OP_MOV_64, REG_RP3, 1<<62),
		op0(OP_INT),
	)
	con.stdin.WriteString("hi")
	assert.NotPanics(func() { err = run(cpu) })
	assert.ErrorIs(err, memory.ErrAddressRange)
	assert.Equal(int64(1), cpu.ExitCode)
}

func TestCpu_Syscall_Exit(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(
		opRI(OP_MOV_8, REG_RK, uint64(SYSCALL_EXIT)),
		opRI(OP_MOV_8, REG_RP1, 7),
		op0(OP_INT),
		opRI(OP_MOV_8, REG_R1, 1),
	)

	assert.NoError(run(cpu))
	assert.True(cpu.Halted)
	assert.True(cpu.Exited)
	assert.Equal(int64(7), cpu.ExitCode)

	r1, _ := cpu.Register.Get(REG_R1)
	assert.Equal(int64(0), r1)

	// A halted CPU keeps its exit code.
	assert.ErrorIs(cpu.Tick(), ErrHalted)
	assert.Equal(int64(7), cpu.ExitCode)
}

func TestCpu_Syscall_Failure(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		rk   Syscall
		rp   [3]uint64
		err  error
	}){
		{"unknown", Syscall(0x99), [3]uint64{}, ErrSyscallUnknown},
		{"write-fd", SYSCALL_WRITE, [3]uint64{7, 0, 0}, errTestFd},
		{"write-size", SYSCALL_WRITE, [3]uint64{1, 0, 0xffffffffffffffff}, ErrSyscallSize},
		{"write-null", SYSCALL_WRITE, [3]uint64{1, 0, 1}, ErrSyscallNull},
		{"write-range", SYSCALL_WRITE, [3]uint64{1, 0x10, 1}, memory.ErrAddressRange},
		{"read-fd", SYSCALL_READ, [3]uint64{1, memory.SANDBOX_BASE, 1}, errTestFd},
		{"read-empty", SYSCALL_READ, [3]uint64{3, memory.SANDBOX_BASE, 1}, ErrSyscallEmpty},
		{"read-size", SYSCALL_READ, [3]uint64{3, memory.SANDBOX_BASE, 0}, ErrSyscallSize},
		{"read-huge", SYSCALL_READ, [3]uint64{3, memory.SANDBOX_BASE, 1 << 62}, ErrSyscallEmpty},
		{"malloc-neg", SYSCALL_MALLOC, [3]uint64{0xffffffffffffffff}, ErrSyscallSize},
		{"malloc-huge", SYSCALL_MALLOC, [3]uint64{1 << 40}, memory.ErrOutOfMemory},
		{"free-unknown", SYSCALL_FREE, [3]uint64{0x1234}, memory.ErrAddressUnknown},
		{"wbuff-null", SYSCALL_WBUFF, [3]uint64{0, 'A'}, ErrSyscallNull},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(
			opRI(OP_MOV_64, REG_RK, uint64(entry.rk)),
			opRI(OP_MOV_64, REG_RP1, entry.rp[0]),
			opRI(OP_MOV_64, REG_RP2, entry.rp[1]),
			opRI(OP_MOV_64, REG_RP3, entry.rp[2]),
			op0(OP_INT),
		)
		err := run(cpu)
		assert.ErrorIs(err, ErrSyscallFailed, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var es ErrSyscall
		assert.ErrorAs(err, &es, entry.name)
		assert.Equal(int64(entry.rk), es.Code, entry.name)
		assert.Equal(int64(1), cpu.ExitCode, entry.name)
	}
}

func TestCpu_RegisterIp(t *testing.T) {
	assert := assert.New(t)

	// MOV IP, 19 lands the next fetch on 20, skipping MOV R1, 1.
	cpu, _ := newTestCpu(
		opRI(OP_MOV_64, REG_IP, 19),
		opRI(OP_MOV_64, REG_R1, 1),
	)
	assert.NoError(run(cpu))

	r1, _ := cpu.Register.Get(REG_R1)
	assert.Equal(int64(0), r1)
}
