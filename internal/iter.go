// Package internal holds helpers shared by the x8000 packages.
package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value sequences; a consumer sees every pair of
// the first sequence, then the second, and so on. Later pairs are meant to
// override earlier ones when collected into a map.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
