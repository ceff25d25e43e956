package memory

import (
	"errors"

	"github.com/ezrec/x8000/translate"
)

var f = translate.From

var (
	ErrAddressNull     = errors.New(f("null address"))
	ErrAddressUnknown  = errors.New(f("address not allocated"))
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrOutOfMemory     = errors.New(f("out of memory"))
	ErrHostUnsupported = errors.New(f("host memory unsupported on this platform"))
)

// ErrAccess is a failed access to the address space.
type ErrAccess struct {
	Addr uint64
	Size uint64
	Err  error
}

func (err ErrAccess) Error() string {
	return f("access 0x%x+%d: %v", err.Addr, err.Size, err.Err)
}

func (err ErrAccess) Unwrap() error {
	return err.Err
}
