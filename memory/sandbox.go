package memory

import (
	"maps"
	"slices"
)

const (
	SANDBOX_BASE  = uint64(0x10000) // First address of a sandbox arena
	SANDBOX_SIZE  = uint64(1 << 20) // Default sandbox arena size
	SANDBOX_ALIGN = uint64(8)       // Allocation alignment
	SANDBOX_LIMIT = uint64(1 << 32) // Largest configurable arena
)

// Sandbox is a bounded arena with a first-fit allocator. Addresses are
// offsets from Base, so the null address is never valid.
type Sandbox struct {
	Base  uint64
	Arena []byte

	blocks map[uint64]uint64 // Allocation start to size.
}

var _ Memory = (*Sandbox)(nil)

// NewSandbox creates a sandbox arena; a zero size selects SANDBOX_SIZE.
func NewSandbox(size uint64) *Sandbox {
	if size == 0 {
		size = SANDBOX_SIZE
	}

	return &Sandbox{
		Base:   SANDBOX_BASE,
		Arena:  make([]byte, size),
		blocks: map[uint64]uint64{},
	}
}

func align(addr uint64) uint64 {
	return (addr + SANDBOX_ALIGN - 1) &^ (SANDBOX_ALIGN - 1)
}

func (sb *Sandbox) end() uint64 {
	return sb.Base + uint64(len(sb.Arena))
}

// limit is the first address past the free space following addr.
func (sb *Sandbox) limit(addr uint64) uint64 {
	limit := sb.end()
	for start := range sb.blocks {
		if start > addr && start < limit {
			limit = start
		}
	}
	return limit
}

func (sb *Sandbox) find(size uint64) (addr uint64, ok bool) {
	cursor := sb.Base
	for _, start := range slices.Sorted(maps.Keys(sb.blocks)) {
		if start >= cursor && start-cursor >= size {
			return cursor, true
		}
		cursor = align(start + sb.blocks[start])
	}

	end := sb.end()
	if cursor <= end && end-cursor >= size {
		return cursor, true
	}

	return
}

func (sb *Sandbox) Alloc(size uint64) (addr uint64, err error) {
	if size == 0 {
		size = 1
	}

	addr, ok := sb.find(size)
	if !ok {
		err = ErrOutOfMemory
		return
	}

	if sb.blocks == nil {
		sb.blocks = map[uint64]uint64{}
	}
	sb.blocks[addr] = size
	clear(sb.Arena[addr-sb.Base : addr-sb.Base+size])

	return
}

func (sb *Sandbox) Realloc(addr uint64, size uint64) (naddr uint64, err error) {
	if addr == 0 {
		return sb.Alloc(size)
	}

	old, ok := sb.blocks[addr]
	if !ok {
		err = ErrAccess{Addr: addr, Err: ErrAddressUnknown}
		return
	}

	if size == 0 {
		size = 1
	}

	// Resize in place when the free space after the block allows.
	if sb.limit(addr)-addr >= size {
		if size > old {
			clear(sb.Arena[addr-sb.Base+old : addr-sb.Base+size])
		}
		sb.blocks[addr] = size
		naddr = addr
		return
	}

	naddr, err = sb.Alloc(size)
	if err != nil {
		return
	}

	copy(sb.Arena[naddr-sb.Base:naddr-sb.Base+size], sb.Arena[addr-sb.Base:addr-sb.Base+old])
	delete(sb.blocks, addr)

	return
}

func (sb *Sandbox) Free(addr uint64) (err error) {
	if addr == 0 {
		return
	}

	_, ok := sb.blocks[addr]
	if !ok {
		err = ErrAccess{Addr: addr, Err: ErrAddressUnknown}
		return
	}

	delete(sb.blocks, addr)

	return
}

// view bounds-checks an access against the whole arena.
func (sb *Sandbox) view(addr uint64, size uint64) (data []byte, err error) {
	if addr == 0 {
		err = ErrAccess{Addr: addr, Size: size, Err: ErrAddressNull}
		return
	}

	if addr < sb.Base || addr > sb.end() || sb.end()-addr < size {
		err = ErrAccess{Addr: addr, Size: size, Err: ErrAddressRange}
		return
	}

	offset := addr - sb.Base
	data = sb.Arena[offset : offset+size]
	return
}

func (sb *Sandbox) Load(addr uint64, size uint64) (data []byte, err error) {
	if size == 0 {
		return
	}

	view, err := sb.view(addr, size)
	if err != nil {
		return
	}

	data = slices.Clone(view)
	return
}

func (sb *Sandbox) Store(addr uint64, data []byte) (err error) {
	if len(data) == 0 {
		return
	}

	view, err := sb.view(addr, uint64(len(data)))
	if err != nil {
		return
	}

	copy(view, data)
	return
}

func (sb *Sandbox) Close() (err error) {
	clear(sb.blocks)
	return
}
