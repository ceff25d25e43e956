package cpu

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// Label is a named program offset.
type Label struct {
	Name   string `cbor:"1,keyasint"`
	Offset uint64 `cbor:"2,keyasint"`
}

// Statement is the source of one encoded instruction.
type Statement struct {
	Offset uint64 `cbor:"1,keyasint"`
	Size   int    `cbor:"2,keyasint"`
	Line   int    `cbor:"3,keyasint"`
	Text   string `cbor:"4,keyasint"`
}

// Program is an assembled binary, with optional debug symbols.
type Program struct {
	Binary     []byte      `cbor:"-"`
	Size       int         `cbor:"1,keyasint"`
	Labels     []Label     `cbor:"2,keyasint,omitempty"`
	Statements []Statement `cbor:"3,keyasint,omitempty"`
}

// Debug locates an address in the source.
type Debug struct {
	*Statement
	Label string // Nearest label at or before the address, as label+offset.
	Index int    // Byte index into the statement.
}

var symbolEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to create CBOR enc mode: %v", err))
	}
	symbolEncMode = em
}

// Debug returns the source location of an address.
func (prog *Program) Debug(ip int64) (dbg Debug) {
	if ip < 0 {
		return
	}
	addr := uint64(ip)

	for n, st := range prog.Statements {
		if addr >= st.Offset && addr < st.Offset+uint64(st.Size) {
			dbg.Statement = &prog.Statements[n]
			dbg.Index = int(addr - st.Offset)
			break
		}
	}

	var best *Label
	for n, label := range prog.Labels {
		if label.Offset <= addr && (best == nil || label.Offset > best.Offset) {
			best = &prog.Labels[n]
		}
	}
	if best != nil {
		if best.Offset == addr {
			dbg.Label = best.Name
		} else {
			dbg.Label = fmt.Sprintf("%v+%d", best.Name, addr-best.Offset)
		}
	}

	return
}

// MarshalSymbols serializes the debug symbols to canonical CBOR.
func (prog *Program) MarshalSymbols() ([]byte, error) {
	sym := *prog
	sym.Size = len(prog.Binary)
	sym.Labels = append([]Label(nil), prog.Labels...)
	sort.Slice(sym.Labels, func(i, j int) bool {
		return sym.Labels[i].Offset < sym.Labels[j].Offset
	})
	return symbolEncMode.Marshal(&sym)
}

// UnmarshalSymbols loads debug symbols for the current Binary.
func (prog *Program) UnmarshalSymbols(data []byte) (err error) {
	var sym Program
	err = cbor.Unmarshal(data, &sym)
	if err != nil {
		err = fmt.Errorf("cpu: unmarshal symbols: %w", err)
		return
	}

	if sym.Size != len(prog.Binary) {
		err = ErrSymbolsMismatch
		return
	}

	prog.Labels = sym.Labels
	prog.Statements = sym.Statements

	return
}
