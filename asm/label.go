package asm

import (
	"errors"
	"iter"

	"github.com/ezrec/x8000/cpu"
)

// LabelTable maps label names to byte offsets, in declaration order.
type LabelTable struct {
	offset map[string]uint64
	order  []string
}

// Reset empties the table.
func (lt *LabelTable) Reset() {
	clear(lt.offset)
	lt.order = lt.order[:0]
}

// Declare records a label. A name may only be declared once.
func (lt *LabelTable) Declare(name string, offset uint64) (err error) {
	if lt.offset == nil {
		lt.offset = map[string]uint64{}
	}

	if _, ok := lt.offset[name]; ok {
		err = errors.Join(ErrLabelDuplicate, ErrLabel(name))
		return
	}

	lt.offset[name] = offset
	lt.order = append(lt.order, name)

	return
}

// Lookup returns the offset of a label.
func (lt *LabelTable) Lookup(name string) (offset uint64, ok bool) {
	offset, ok = lt.offset[name]
	return
}

// Len returns the number of labels.
func (lt *LabelTable) Len() int {
	return len(lt.order)
}

// All iterates over the labels in declaration order.
func (lt *LabelTable) All() iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for _, name := range lt.order {
			if !yield(name, int64(lt.offset[name])) {
				return
			}
		}
	}
}

// Labels returns the table as debug symbols.
func (lt *LabelTable) Labels() (labels []cpu.Label) {
	for name, offset := range lt.All() {
		labels = append(labels, cpu.Label{Name: name, Offset: uint64(offset)})
	}
	return
}
