/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package minimizer builds a (w, k) minimizer index: every k-mer's hash
// is the polynomial h(s) = sum(rank(s[i]) * |ab|^(k-1-i)) mod 2^64,
// computed incrementally as the window slides one character at a time,
// and a monotonic min-queue over the last w k-mer hashes decides, for
// every window of w consecutive k-mers, which k-mer positions are
// minimizers: all positions tied for the minimum hash in a window whose
// minimum differs from the previous window's, plus any new k-mer that
// ties an unchanged minimum.
package minimizer

import (
	"fmt"

	"github.com/paguso/cocada-sub000/event"
	"github.com/paguso/cocada-sub000/xchar"
)

// entry is one live k-mer in the sliding min-queue: its hash and the
// 0-based offset, in k-mers, of its first character.
type entry struct {
	hash uint64
	pos  int
}

// Index maps k-mer hashes to every text offset at which that k-mer was
// a window minimizer.
type Index struct {
	ab    xchar.Alphabet
	w, k  int
	table map[uint64][]int
}

// W returns the window size.
func (idx *Index) W() int { return idx.w }

// K returns the k-mer length.
func (idx *Index) K() int { return idx.k }

// Positions returns the offsets at which the k-mer with the given hash
// was recorded as a minimizer, in increasing order.
func (idx *Index) Positions(hash uint64) []int {
	return idx.table[hash]
}

// NumDistinctMinimizers returns the number of distinct hashes recorded.
func (idx *Index) NumDistinctMinimizers() int {
	return len(idx.table)
}

// Hash computes the polynomial hash of a length-k symbol sequence over
// ab, the same function Build uses internally.
func Hash(ab xchar.Alphabet, kmer []xchar.Char) (uint64, error) {
	var h uint64
	sigma := uint64(ab.Size())

	for _, c := range kmer {
		r := ab.Rank(c)

		if r < 0 || r >= ab.Size() {
			return 0, fmt.Errorf("minimizer: symbol outside the alphabet")
		}

		h = h*sigma + uint64(r)
	}

	return h, nil
}

// Build computes the (w, k) minimizer index of text over ab. bc may be
// nil.
func Build(ab xchar.Alphabet, text []xchar.Char, w, k int, bc *event.Broadcaster) (*Index, error) {
	if w <= 0 || k <= 0 {
		return nil, fmt.Errorf("minimizer: w and k must be strictly positive, got w=%d k=%d", w, k)
	}

	idx := &Index{ab: ab, w: w, k: k, table: make(map[uint64][]int)}

	n := len(text)
	numKmers := n - k + 1

	if numKmers <= 0 {
		return idx, nil
	}

	sigma := uint64(ab.Size())
	ranks := make([]uint64, n)

	for i, c := range text {
		r := ab.Rank(c)

		if r < 0 || r >= ab.Size() {
			return nil, fmt.Errorf("minimizer: text contains a symbol outside the alphabet")
		}

		ranks[i] = uint64(r)
	}

	power := uint64(1)

	for i := 0; i < k-1; i++ {
		power *= sigma
	}

	var dq []entry
	var h uint64
	var lastMin uint64
	haveMin := false

	for i := 0; i < numKmers; i++ {
		if i == 0 {
			for j := 0; j < k; j++ {
				h = h*sigma + ranks[j]
			}
		} else {
			h = (h-ranks[i-1]*power)*sigma + ranks[i+k-1]
		}

		for len(dq) > 0 && dq[len(dq)-1].hash > h {
			dq = dq[:len(dq)-1]
		}

		dq = append(dq, entry{hash: h, pos: i})

		for len(dq) > 0 && dq[0].pos <= i-w {
			dq = dq[1:]
		}

		if i < w-1 {
			continue // window not yet w k-mers (w+k-1 characters) wide
		}

		curMin := dq[0].hash

		if !haveMin || curMin != lastMin {
			for _, e := range dq {
				if e.hash == curMin {
					idx.table[curMin] = append(idx.table[curMin], e.pos)
				}
			}

			lastMin = curMin
			haveMin = true
		} else if h == curMin {
			idx.table[curMin] = append(idx.table[curMin], i)
		}
	}

	event.Fire(bc, event.TypeMinimizerIndexed, 0, len(idx.table), fmt.Sprintf("minimizer index built: w=%d, k=%d, distinct=%d", w, k, len(idx.table)))

	return idx, nil
}
