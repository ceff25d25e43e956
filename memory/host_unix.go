//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package memory

import (
	"errors"
	"math"
	"slices"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Host hands out anonymous host pages, one mapping per allocation, and
// dereferences program addresses directly.
type Host struct {
	mapping map[uint64][]byte
}

var _ Memory = (*Host)(nil)

// NewHost returns the raw host memory model.
func NewHost() *Host {
	return &Host{
		mapping: map[uint64][]byte{},
	}
}

func (h *Host) Alloc(size uint64) (addr uint64, err error) {
	if size == 0 {
		size = 1
	}
	if size > math.MaxInt32 {
		err = ErrOutOfMemory
		return
	}

	data, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		err = errors.Join(ErrOutOfMemory, err)
		return
	}

	addr = uint64(uintptr(unsafe.Pointer(unsafe.SliceData(data))))
	if h.mapping == nil {
		h.mapping = map[uint64][]byte{}
	}
	h.mapping[addr] = data[:size]

	return
}

func (h *Host) Realloc(addr uint64, size uint64) (naddr uint64, err error) {
	if addr == 0 {
		return h.Alloc(size)
	}

	old, ok := h.mapping[addr]
	if !ok {
		err = ErrAccess{Addr: addr, Err: ErrAddressUnknown}
		return
	}

	naddr, err = h.Alloc(size)
	if err != nil {
		return
	}

	copy(h.mapping[naddr], old)

	err = h.Free(addr)

	return
}

func (h *Host) Free(addr uint64) (err error) {
	if addr == 0 {
		return
	}

	data, ok := h.mapping[addr]
	if !ok {
		err = ErrAccess{Addr: addr, Err: ErrAddressUnknown}
		return
	}

	delete(h.mapping, addr)
	err = unix.Munmap(data[:cap(data)])

	return
}

// view is the raw capability: any non-null address is host memory.
func (h *Host) view(addr uint64, size uint64) (data []byte, err error) {
	if addr == 0 {
		err = ErrAccess{Addr: addr, Size: size, Err: ErrAddressNull}
		return
	}
	if size > math.MaxInt32 || addr+size < addr {
		err = ErrAccess{Addr: addr, Size: size, Err: ErrAddressRange}
		return
	}

	data = unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), size)
	return
}

func (h *Host) Load(addr uint64, size uint64) (data []byte, err error) {
	if size == 0 {
		return
	}

	view, err := h.view(addr, size)
	if err != nil {
		return
	}

	data = slices.Clone(view)
	return
}

func (h *Host) Store(addr uint64, data []byte) (err error) {
	if len(data) == 0 {
		return
	}

	view, err := h.view(addr, uint64(len(data)))
	if err != nil {
		return
	}

	copy(view, data)
	return
}

func (h *Host) Close() (err error) {
	for addr, data := range h.mapping {
		err = errors.Join(err, unix.Munmap(data[:cap(data)]))
		delete(h.mapping, addr)
	}

	return
}
