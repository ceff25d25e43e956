// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ezrec/x8000/asm"
	"github.com/ezrec/x8000/config"
	"github.com/ezrec/x8000/internal"
)

func main() {
	var output string
	var symbols string
	var configPath string
	var verbose bool
	defines := map[string]int64{}

	fs := internal.NewFlagSet(os.Args[0])

	fs.StringVar(&output, "o", "", "Output binary")
	fs.StringVar(&symbols, "g", "", "Debug symbols to write")
	fs.StringVar(&configPath, "c", "", "Configuration file (default: nearest "+config.FILENAME+")")
	fs.BoolVar(&verbose, "v", false, "Verbose mode")
	fs.Func("D", "Predefine `NAME=VALUE` for expressions", func(text string) (err error) {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("expected NAME=VALUE, got %q", text)
		}
		number, err := asm.ParseNumber(value)
		if err != nil {
			return
		}
		defines[name] = int64(number)
		return
	})

	args, err := internal.ParseArgs(fs, os.Args[1:])
	if err != nil {
		os.Exit(internal.EXIT_USAGE)
	}

	if len(args) != 1 || len(output) == 0 {
		log.Fatalf("usage: %v <input> -o <output>", os.Args[0])
	}
	input := args[0]

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg.Apply()

	if verbose {
		commonlog.Configure(2, nil)
	}

	if len(symbols) == 0 && cfg.Assembler.Symbols {
		symbols = output + ".sym"
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	as := &asm.Assembler{Verbose: verbose}
	for name, value := range cfg.Assembler.Define {
		as.Predefine(name, value)
	}
	for name, value := range defines {
		as.Predefine(name, value)
	}

	prog, err := as.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	err = os.WriteFile(output, prog.Binary, 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if len(symbols) != 0 {
		data, err := prog.MarshalSymbols()
		if err != nil {
			log.Fatalf("%v: %v", symbols, err)
		}
		err = os.WriteFile(symbols, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", symbols, err)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) != 0 {
		return config.Load(path)
	}
	return config.FindAndLoad(".")
}
