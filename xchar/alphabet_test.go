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

package xchar

import "testing"

func TestCharAlphabetRankSymbolBijection(t *testing.T) {
	ab, err := NewCharAlphabet([]byte("acgt"))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, b := range []byte("acgt") {
		c := Char(b)

		if r := ab.Rank(c); r != i {
			t.Errorf("Rank(%c) = %d, want %d", b, r, i)
		}

		if s := ab.Symbol(i); s != c {
			t.Errorf("Symbol(%d) = %v, want %v", i, s, c)
		}
	}

	if r := ab.Rank(Char('x')); r != ab.Size() {
		t.Errorf("Rank of out-of-alphabet char = %d, want %d", r, ab.Size())
	}
}

func TestCharAlphabetCompare(t *testing.T) {
	ab, _ := NewCharAlphabet([]byte("acgt"))

	if ab.Compare(Char('a'), Char('c')) != -1 {
		t.Error("expected 'a' < 'c'")
	}

	if ab.Compare(Char('t'), Char('c')) != 1 {
		t.Error("expected 't' > 'c'")
	}

	if ab.Compare(Char('x'), Char('y')) != 0 {
		t.Error("expected two out-of-alphabet chars to compare equal")
	}

	if ab.Compare(Char('x'), Char('a')) != 1 {
		t.Error("expected an out-of-alphabet char to compare greater than any in-alphabet char")
	}
}

func TestCharAlphabetRejectsUnsorted(t *testing.T) {
	if _, err := NewCharAlphabet([]byte("gatc")); err == nil {
		t.Error("expected an error for an unsorted letter list")
	}
}

func TestIntAlphabetIdentity(t *testing.T) {
	ab, err := NewIntAlphabet(5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if ab.Rank(Char(i)) != i {
			t.Errorf("Rank(%d) = %d, want %d", i, ab.Rank(Char(i)), i)
		}

		if ab.Symbol(i) != Char(i) {
			t.Errorf("Symbol(%d) = %v, want %d", i, ab.Symbol(i), i)
		}
	}

	if ab.Rank(Char(5)) != 5 {
		t.Errorf("Rank(5) = %d, want 5 (clamped to size)", ab.Rank(Char(5)))
	}

	if ab.Contains(Char(-1)) {
		t.Error("negative value should not be contained")
	}
}

func TestAlphabetClone(t *testing.T) {
	ab, _ := NewCharAlphabet([]byte("abc"))
	clone := ab.Clone()

	if clone.Size() != ab.Size() {
		t.Fatalf("clone size mismatch")
	}

	for i := 0; i < ab.Size(); i++ {
		if clone.Symbol(i) != ab.Symbol(i) {
			t.Errorf("clone symbol mismatch at rank %d", i)
		}
	}
}
