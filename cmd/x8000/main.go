// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ezrec/x8000/config"
	"github.com/ezrec/x8000/cpu"
	"github.com/ezrec/x8000/emulator"
	"github.com/ezrec/x8000/internal"
	"github.com/ezrec/x8000/io"
)

func main() {
	var symbols string
	var configPath string
	var sandbox bool
	var verbose bool

	fs := internal.NewFlagSet(os.Args[0])

	fs.StringVar(&symbols, "g", "", "Debug symbols to load")
	fs.StringVar(&configPath, "c", "", "Configuration file (default: nearest "+config.FILENAME+")")
	fs.BoolVar(&sandbox, "sandbox", false, "Run with a bounded sandbox heap")
	fs.BoolVar(&verbose, "v", false, "Verbose mode")

	args, err := internal.ParseArgs(fs, os.Args[1:])
	if err != nil {
		os.Exit(internal.EXIT_USAGE)
	}

	if len(args) != 1 {
		log.Fatalf("usage: %v <binary>", os.Args[0])
	}
	binary := args[0]

	var cfg *config.Config
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg.Apply()

	if sandbox {
		cfg.Vm.Memory = config.MEMORY_SANDBOX
	}
	verbose = verbose || cfg.Vm.Verbose
	if verbose {
		commonlog.Configure(2, nil)
	}

	data, err := os.ReadFile(binary)
	if err != nil {
		log.Fatalf("%v: %v", binary, err)
	}
	prog := &cpu.Program{Binary: data}

	if len(symbols) != 0 {
		sym, err := os.ReadFile(symbols)
		if err != nil {
			log.Fatalf("%v: %v", symbols, err)
		}
		err = prog.UnmarshalSymbols(sym)
		if err != nil {
			log.Fatalf("%v: %v", symbols, err)
		}
	}

	emu := emulator.NewEmulator(io.NewConsole(), cfg.NewMemory())
	emu.Verbose = verbose
	emu.Cpu.Stack.Limit = cfg.Vm.StackLimit
	emu.Load(prog)

	code, err := emu.Run()
	if err != nil {
		log.Printf("%v: %v", binary, err)
	}

	err = emu.Close()
	if err != nil {
		log.Printf("%v: %v", binary, err)
	}

	os.Exit(int(code))
}
