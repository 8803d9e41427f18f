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

package rankselect

import (
	"math/rand"
	"testing"
)

// pattern16 builds a 16-bit worked example: 1010 1100 1110 0001,
// i.e. bytes 0xAC, 0xE1.
func pattern16(t *testing.T) *CSRS {
	c, err := New([]byte{0xAC, 0xE1}, 16)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return c
}

func TestRankTotals(t *testing.T) {
	c := pattern16(t)

	if got := c.Rank(8, 1); got != 4 {
		t.Errorf("Rank(8,1) = %d, want 4", got)
	}

	if got := c.Rank(16, 1); got != 8 {
		t.Errorf("Rank(16,1) = %d, want 8", got)
	}

	if got := c.Rank(20, 1); got != 8 {
		t.Errorf("Rank(20,1) = %d, want 8 (clamped to total)", got)
	}
}

func TestRankComplement(t *testing.T) {
	c := pattern16(t)

	for p := 0; p <= c.Len(); p++ {
		if got := c.Rank(p, 0) + c.Rank(p, 1); got != p {
			t.Errorf("Rank(%d,0)+Rank(%d,1) = %d, want %d", p, p, got, p)
		}
	}
}

func TestSelectRankRoundTrip(t *testing.T) {
	c := pattern16(t)

	for bit := 0; bit <= 1; bit++ {
		for r := 0; r < c.Count(bit); r++ {
			p := c.Select(r, bit)

			if c.Get(p) != bit {
				t.Errorf("Get(Select(%d,%d)) = %d, want %d", r, bit, c.Get(p), bit)
			}

			if got := c.Rank(p, bit); got != r {
				t.Errorf("Rank(Select(%d,%d),%d) = %d, want %d", r, bit, bit, got, r)
			}
		}
	}

	if got := c.Select(c.Count(1), 1); got != c.Len() {
		t.Errorf("Select(count,1) = %d, want n=%d", got, c.Len())
	}
}

func TestPredSucc(t *testing.T) {
	c := pattern16(t)

	for p := 0; p <= c.Len(); p++ {
		for bit := 0; bit <= 1; bit++ {
			pred := c.Pred(p, bit)

			if pred != c.Len() && pred >= p {
				t.Errorf("Pred(%d,%d) = %d, want < %d", p, bit, pred, p)
			}

			succ := c.Succ(p, bit)

			if succ != c.Len() && succ <= p {
				t.Errorf("Succ(%d,%d) = %d, want > %d", p, bit, succ, p)
			}
		}
	}
}

func TestRandomInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		n := 8 + rnd.Intn(2000)
		nbytes := (n + 7) / 8
		buf := make([]byte, nbytes)
		rnd.Read(buf)

		c, err := New(buf, n)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i := 0; i < 50; i++ {
			p := rnd.Intn(n + 1)

			if got := c.Rank(p, 0) + c.Rank(p, 1); got != p {
				t.Fatalf("trial %d: Rank(%d,0)+Rank(%d,1) = %d, want %d", trial, p, p, got, p)
			}
		}

		for bit := 0; bit <= 1; bit++ {
			cnt := c.Count(bit)

			if cnt == 0 {
				continue
			}

			r := rnd.Intn(cnt)
			p := c.Select(r, bit)

			if c.Get(p) != bit || c.Rank(p, bit) != r {
				t.Fatalf("trial %d: Select/Rank/Get mismatch for bit %d, rank %d -> pos %d", trial, bit, r, p)
			}
		}
	}
}

func TestEmptyAndSingleBit(t *testing.T) {
	c, err := New([]byte{}, 0)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Rank(0, 1) != 0 || c.Select(0, 1) != 0 {
		t.Errorf("expected degenerate boundary answers for an empty bit array")
	}

	c2, err := New([]byte{0x80}, 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c2.Rank(1, 1) != 1 {
		t.Errorf("Rank(1,1) = %d, want 1", c2.Rank(1, 1))
	}
}
