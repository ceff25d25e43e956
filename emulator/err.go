package emulator

import (
	"github.com/ezrec/x8000/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip    int64  // Address of the faulting instruction.
	Label string // Nearest label, as label+offset, if symbols are loaded.
	Line  int    // Source line, if symbols are loaded.
	Err   error
}

func (err *ErrRuntime) Error() string {
	switch {
	case err.Line > 0 && err.Label != "":
		return f("line %d (%v, ip %#x) %v", err.Line, err.Label, err.Ip, err.Err)
	case err.Line > 0:
		return f("line %d (ip %#x) %v", err.Line, err.Ip, err.Err)
	case err.Label != "":
		return f("%v (ip %#x) %v", err.Label, err.Ip, err.Err)
	}
	return f("ip %#x %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
