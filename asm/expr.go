package asm

import (
	"errors"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/x8000/cpu"
	"github.com/ezrec/x8000/internal"
)

// ParseNumber converts a numeric literal: an optional sign, then decimal
// digits or 0x-prefixed hex digits. Values from -2^63 to 2^64-1 are
// accepted; negative values are stored as two's complement.
func ParseNumber(text string) (value uint64, err error) {
	digits := text
	negative := false
	switch {
	case strings.HasPrefix(digits, "-"):
		negative = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}

	value, perr := strconv.ParseUint(digits, base, 64)
	if perr != nil {
		err = ErrParseNumber(text)
		return
	}

	if negative {
		if value > 1<<63 {
			value = 0
			err = ErrParseNumber(text)
			return
		}
		value = -value
	}

	return
}

// evaluate a $( ... ) expression. Syscall codes, file descriptors,
// predefines and labels are predeclared; labels shadow predefines, which
// shadow the ISA constants.
func (asm *Assembler) evaluate(expr string) (value uint64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, v := range internal.IterSeq2Concat(cpu.Defines(), maps.All(asm.predefine), asm.Labels.All()) {
		pred[name] = starlark.MakeInt64(v)
	}

	prog := "rc=(" + expr + ")\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	if st_int64, ok := st_int.Int64(); ok {
		value = uint64(st_int64)
		return
	}

	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
