package config

import (
	"errors"
	"strings"

	"github.com/ezrec/x8000/translate"
)

var f = translate.From

var (
	ErrMemoryModel = errors.New(f("unknown memory model"))
	ErrStackLimit  = errors.New(f("stack limit must be positive"))
	ErrSandboxSize = errors.New(f("sandbox size too large"))
	ErrKeyUnknown  = errors.New(f("unknown configuration key"))
	ErrLanguage    = errors.New(f("invalid language tag"))
)

// ErrKeys lists undecoded configuration keys.
type ErrKeys []string

func (ek ErrKeys) Error() string {
	return f("%v: %v", ErrKeyUnknown, strings.Join(ek, ", "))
}

func (ek ErrKeys) Is(err error) bool {
	return err == ErrKeyUnknown
}
