// Package config handles x8000.toml toolchain configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/ezrec/x8000/cpu"
	"github.com/ezrec/x8000/memory"
	"github.com/ezrec/x8000/translate"
)

// FILENAME is the configuration file searched for by FindAndLoad.
const FILENAME = "x8000.toml"

// Memory models.
const (
	MEMORY_HOST    = "host"
	MEMORY_SANDBOX = "sandbox"
)

// Config represents an x8000.toml configuration.
type Config struct {
	Language  string    `toml:"language"`
	Assembler Assembler `toml:"assembler"`
	Vm        Vm        `toml:"vm"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Assembler configures tasm.
type Assembler struct {
	Symbols bool             `toml:"symbols"` // Always write a symbol sidecar.
	Define  map[string]int64 `toml:"define"`  // Expression predefines.
}

// Vm configures the x8000 virtual machine.
type Vm struct {
	Memory      string `toml:"memory"`
	SandboxSize uint64 `toml:"sandbox_size"`
	StackLimit  int    `toml:"stack_limit"`
	Verbose     bool   `toml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Assembler: Assembler{
			Define: map[string]int64{},
		},
		Vm: Vm{
			Memory:      MEMORY_HOST,
			SandboxSize: memory.SANDBOX_SIZE,
			StackLimit:  cpu.STACK_LIMIT,
		},
	}
}

// Load overlays the configuration file at path onto the defaults.
// Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrKeys, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		return nil, fmt.Errorf("%s: %w", path, keys)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.Path = path

	return cfg, nil
}

// FindAndLoad walks up from startDir to find an x8000.toml file, then loads
// it. The defaults are returned if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FILENAME)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks the configuration values.
func (cfg *Config) Validate() (err error) {
	switch cfg.Vm.Memory {
	case MEMORY_HOST, MEMORY_SANDBOX:
	default:
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrMemoryModel, cfg.Vm.Memory))
	}

	if cfg.Vm.SandboxSize > memory.SANDBOX_LIMIT {
		err = errors.Join(err, fmt.Errorf("%w: %d > %d", ErrSandboxSize, cfg.Vm.SandboxSize, memory.SANDBOX_LIMIT))
	}

	if cfg.Vm.StackLimit <= 0 {
		err = errors.Join(err, ErrStackLimit)
	}

	if cfg.Language != "" {
		if _, perr := language.Parse(cfg.Language); perr != nil {
			err = errors.Join(err, ErrLanguage, perr)
		}
	}

	return
}

// Apply sets the process-wide message language, if one is configured.
func (cfg *Config) Apply() {
	if cfg.Language == "" {
		return
	}

	tag, err := language.Parse(cfg.Language)
	if err == nil {
		translate.SetLanguage(tag)
	}
}

// NewMemory creates the configured heap model.
func (cfg *Config) NewMemory() memory.Memory {
	if cfg.Vm.Memory == MEMORY_SANDBOX {
		return memory.NewSandbox(cfg.Vm.SandboxSize)
	}

	return memory.NewHost()
}
