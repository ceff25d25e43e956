// Package memory provides the address spaces behind the x8000 heap syscalls.
//
// Host is the default model: allocations are real host pages, addresses are
// real host pointers, and any address a program names is dereferenced as-is.
// It is an intentionally unsafe raw capability; a program can read or write
// anything in the emulator process.
//
// Sandbox is the opt-in model: a single arena whose addresses start at a
// non-zero base, with every access bounds-checked against the arena.
package memory

// Memory is a byte-addressed heap, as seen by a running program.
type Memory interface {
	// Alloc reserves size bytes (a zero size reserves one byte).
	Alloc(size uint64) (addr uint64, err error)
	// Realloc resizes an allocation, possibly moving it. A null address
	// behaves as Alloc.
	Realloc(addr uint64, size uint64) (naddr uint64, err error)
	// Free releases an allocation. A null address is ignored.
	Free(addr uint64) (err error)
	// Load copies size bytes out of the address space.
	Load(addr uint64, size uint64) (data []byte, err error)
	// Store copies data into the address space.
	Store(addr uint64, data []byte) (err error)
	// Close releases every allocation.
	Close() (err error)
}
