// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled x8000 programs against host streams and a
// heap model.
package emulator

import (
	"github.com/tliron/commonlog"

	"github.com/ezrec/x8000/cpu"
	"github.com/ezrec/x8000/memory"
)

var log = commonlog.GetLogger("x8000.emulator")

// Emulator state. CPU + host streams + heap.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator, with an empty program.
func NewEmulator(console cpu.Console, mem memory.Memory) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(console, mem),
		Program: &cpu.Program{},
	}

	return
}

// Close the emulator, releasing every heap allocation.
func (emu *Emulator) Close() (err error) {
	if emu.Cpu.Memory != nil {
		err = emu.Cpu.Memory.Close()
	}

	return
}

// Load a program, and reset the emulator.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// Reset the emulator state.
func (emu *Emulator) Reset() {
	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(emu.Program.Binary)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// ExitCode returns the process exit code of a halted program.
func (emu *Emulator) ExitCode() int64 {
	return emu.Cpu.ExitCode
}

// LineNo returns the source line of the next instruction, or 0 if no symbols
// cover it.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip() + 1)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.Line
}

func (emu *Emulator) trace() {
	ip := emu.Cpu.Ip() + 1
	dbg := emu.Program.Debug(ip)

	text := ""
	if dbg.Statement != nil {
		text = dbg.Text
	} else {
		ins, err := cpu.DecodeAt(emu.Program.Binary, int(ip))
		if err != nil {
			return
		}
		text = ins.String()
	}

	if dbg.Label != "" {
		log.Debugf("%04x %v: %v", ip, dbg.Label, text)
	} else {
		log.Debugf("%04x: %v", ip, text)
	}
}

// Tick performs a single tick of the emulator.
// done is set once the program has halted, cleanly or not.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	if emu.Verbose {
		emu.trace()
	}

	err = emu.Cpu.Tick()
	if err != nil {
		ip := emu.Cpu.Fetch
		dbg := emu.Program.Debug(ip)
		rte := &ErrRuntime{Ip: ip, Label: dbg.Label, Err: err}
		if dbg.Statement != nil {
			rte.Line = dbg.Line
		}
		err = rte
	}

	done = emu.Cpu.Halted

	return
}

// Run the program until it halts, returning the exit code.
// The exit code is the EXIT status if EXIT ran, 1 on failure, or 0.
func (emu *Emulator) Run() (code int64, err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			break
		}
	}

	code = emu.Cpu.ExitCode
	if emu.Verbose {
		if err != nil {
			log.Infof("halted after %d ticks: %v", emu.Cpu.Ticks, err)
		} else {
			log.Infof("halted after %d ticks, exit %d", emu.Cpu.Ticks, code)
		}
	}

	return
}
