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

package sais

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/paguso/cocada-sub000/xchar"
)

func toChars(s string) []xchar.Char {
	out := make([]xchar.Char, len(s))

	for i, b := range []byte(s) {
		out[i] = xchar.Char(b)
	}

	return out
}

// TestBanana checks the worked example for T = "banana":
// SA = [6, 5, 3, 1, 0, 4, 2].
func TestBanana(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("abn"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sa, err := ComputeSuffixArray(ab, toChars("banana"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{6, 5, 3, 1, 0, 4, 2}

	if len(sa) != len(want) {
		t.Fatalf("len(sa) = %d, want %d", len(sa), len(want))
	}

	for i := range want {
		if sa[i] != want[i] {
			t.Errorf("sa[%d] = %d, want %d", i, sa[i], want[i])
		}
	}
}

func TestSentinelFirst(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("abcdr"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sa, err := ComputeSuffixArray(ab, toChars("abracadabra"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sa) != 12 {
		t.Fatalf("len(sa) = %d, want 12", len(sa))
	}

	if sa[0] != 11 {
		t.Errorf("sa[0] = %d, want 11 (the virtual sentinel suffix)", sa[0])
	}
}

func isSortedSuffixes(t *testing.T, text []byte, sa []int) bool {
	suffix := func(i int) string {
		if i == len(text) {
			return "" // the virtual sentinel: the empty, lexicographically smallest suffix
		}

		return string(text[i:])
	}

	for i := 1; i < len(sa); i++ {
		if suffix(sa[i-1]) >= suffix(sa[i]) {
			t.Logf("suffix(%d)=%q not < suffix(%d)=%q", sa[i-1], suffix(sa[i-1]), sa[i], suffix(sa[i]))
			return false
		}
	}

	return true
}

func TestRandomTextsProduceSortedSuffixes(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	letters := []byte("acgt")
	ab, err := xchar.NewCharAlphabet(letters)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for trial := 0; trial < 30; trial++ {
		n := rnd.Intn(200) + 1
		text := make([]byte, n)

		for i := range text {
			text[i] = letters[rnd.Intn(len(letters))]
		}

		sa, err := ComputeSuffixArray(ab, toChars(string(text)))

		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		if len(sa) != n+1 {
			t.Fatalf("trial %d: len(sa) = %d, want %d", trial, len(sa), n+1)
		}

		seen := make([]int, len(sa))
		copy(seen, sa)
		sort.Ints(seen)

		for i, v := range seen {
			if v != i {
				t.Fatalf("trial %d: sa is not a permutation of 0..%d", trial, n)
			}
		}

		if !isSortedSuffixes(t, text, sa) {
			t.Fatalf("trial %d: sa does not sort the suffixes of %q", trial, text)
		}
	}
}

func TestInverseSuffixArray(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("abn"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sa, err := ComputeSuffixArray(ab, toChars("banana"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	isa := InverseSuffixArray(sa)

	for i, p := range sa {
		if isa[p] != i {
			t.Errorf("isa[sa[%d]] = %d, want %d", i, isa[p], i)
		}
	}
}

func TestEmptyText(t *testing.T) {
	ab, err := xchar.NewCharAlphabet([]byte("a"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sa, err := ComputeSuffixArray(ab, nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sa) != 1 || sa[0] != 0 {
		t.Errorf("ComputeSuffixArray(empty) = %v, want [0]", sa)
	}
}
