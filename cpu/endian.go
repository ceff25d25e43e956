package cpu

import (
	"encoding/binary"
)

// All multi-byte operands in the binary format are little-endian.

// AppendImmediate appends the low mode.Bytes() bytes of value.
func AppendImmediate(b []byte, mode Mode, value uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], value)
	return append(b, tmp[:mode.Bytes()]...)
}

// AppendAddress appends an 8-byte absolute program address.
func AppendAddress(b []byte, addr uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, addr)
}

// Immediate zero-extends up to 8 little-endian bytes into a value.
func Immediate(data []byte) (value uint64) {
	for n := len(data) - 1; n >= 0; n-- {
		value = (value << 8) | uint64(data[n])
	}
	return
}
