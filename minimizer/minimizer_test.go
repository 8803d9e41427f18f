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

package minimizer

import (
	"math/rand"
	"testing"

	"github.com/paguso/cocada-sub000/xchar"
	"github.com/stretchr/testify/require"
)

func toChars(s string) []xchar.Char {
	out := make([]xchar.Char, len(s))

	for i, b := range []byte(s) {
		out[i] = xchar.Char(b)
	}

	return out
}

// TestAcgtacgHandTraced is a hand-traced worked example for w=2, k=2 over
// T = "acgtacg": the k-mer hashes, in rank space over "acgt" (a=0, c=1,
// g=2, t=3), are ac=1, cg=6, gt=11, ta=12, ac=1, cg=6 at offsets 0..5.
// "ta" (the largest hash) is never a window minimum; "ac" recurs as the
// minimum at both its offsets; "cg" is recorded only at its first
// appearance, since its second occurrence never becomes a new minimum.
func TestAcgtacgHandTraced(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("acgt"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := Build(ab, toChars("acgtacg"), 2, 2, nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hashAC, err := Hash(ab, toChars("ac"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hashCG, err := Hash(ab, toChars("cg"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hashGT, err := Hash(ab, toChars("gt"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hashTA, err := Hash(ab, toChars("ta"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	require.Equal(t, []int{0, 4}, idx.Positions(hashAC))
	require.Equal(t, []int{1}, idx.Positions(hashCG))
	require.Equal(t, []int{2}, idx.Positions(hashGT))
	require.Empty(t, idx.Positions(hashTA), "ta's hash is never a window minimum")
}

// TestShortTextProducesNoMinimizers checks that a text shorter than
// w+k-1 characters yields an empty index.
func TestShortTextProducesNoMinimizers(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("acgt"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := Build(ab, toChars("acg"), 5, 2, nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	require.Zero(t, idx.NumDistinctMinimizers())
}

// TestWindowsHaveRecordedMinimizer checks, over random texts, that every
// w-wide window of k-mers has at
// least one of its minimum-hash positions recorded, and that every
// recorded position is indeed the minimum hash of some window it
// belongs to — the two halves of the index's correctness, checked
// independently of Build's own internal bookkeeping.
func TestWindowsHaveRecordedMinimizer(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	letters := []byte("acgt")
	ab, err := xchar.NewCharAlphabet(letters)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for trial := 0; trial < 20; trial++ {
		n := rnd.Intn(60) + 1
		buf := make([]byte, n)

		for i := range buf {
			buf[i] = letters[rnd.Intn(len(letters))]
		}

		w := rnd.Intn(5) + 1
		k := rnd.Intn(5) + 1
		text := toChars(string(buf))

		idx, err := Build(ab, text, w, k, nil)

		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		numKmers := n - k + 1

		if numKmers < w {
			continue
		}

		hashes := make([]uint64, numKmers)

		for i := 0; i < numKmers; i++ {
			h, err := Hash(ab, text[i:i+k])

			if err != nil {
				t.Fatalf("trial %d: unexpected error: %v", trial, err)
			}

			hashes[i] = h
		}

		for s := 0; s+w <= numKmers; s++ {
			minHash := hashes[s]

			for j := s + 1; j < s+w; j++ {
				if hashes[j] < minHash {
					minHash = hashes[j]
				}
			}

			found := false

			for _, p := range idx.Positions(minHash) {
				if p >= s && p < s+w {
					found = true
					break
				}
			}

			if !found {
				t.Fatalf("trial %d (w=%d,k=%d): window [%d,%d) has no recorded minimizer for hash %d", trial, w, k, s, s+w, minHash)
			}
		}

		for hash, positions := range idx.table {
			for _, p := range positions {
				isMinSomewhere := false

				lo := p - w + 1

				if lo < 0 {
					lo = 0
				}

				hi := p

				if hi > numKmers-w {
					hi = numKmers - w
				}

				for s := lo; s <= hi; s++ {
					minHash := hashes[s]

					for j := s + 1; j < s+w; j++ {
						if hashes[j] < minHash {
							minHash = hashes[j]
						}
					}

					if minHash == hash {
						isMinSomewhere = true
						break
					}
				}

				if !isMinSomewhere {
					t.Fatalf("trial %d (w=%d,k=%d): recorded position %d for hash %d is not the minimum of any window it belongs to", trial, w, k, p, hash)
				}
			}
		}
	}
}
