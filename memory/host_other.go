//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package memory

// Host is unavailable on this platform; every operation fails.
type Host struct{}

var _ Memory = (*Host)(nil)

func NewHost() *Host {
	return &Host{}
}

func (h *Host) Alloc(size uint64) (addr uint64, err error) {
	err = ErrHostUnsupported
	return
}

func (h *Host) Realloc(addr uint64, size uint64) (naddr uint64, err error) {
	err = ErrHostUnsupported
	return
}

func (h *Host) Free(addr uint64) (err error) {
	if addr != 0 {
		err = ErrHostUnsupported
	}
	return
}

func (h *Host) Load(addr uint64, size uint64) (data []byte, err error) {
	if size != 0 {
		err = ErrHostUnsupported
	}
	return
}

func (h *Host) Store(addr uint64, data []byte) (err error) {
	if len(data) != 0 {
		err = ErrHostUnsupported
	}
	return
}

func (h *Host) Close() (err error) {
	return
}
