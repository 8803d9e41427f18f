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

// Package csa implements a psi-based compressed suffix array (CSA): a
// self-index built by recursively halving the suffix array into
// "even position" and "odd position" tiers, each tier storing only a
// run-boundary bitmap, an even/odd bitmap and a small-alphabet wavelet
// tree, not the positions themselves. get/inverse/char_at recover a
// suffix-array entry or its inverse by bouncing between tiers through
// the psi function, the construction grounded on the recursive
// induced-sorting re-architecture of package sais and physically built
// from package rankselect and package wavelet exactly as every other
// module in this codebase layers on those two primitives.
package csa

import (
	"fmt"

	"github.com/paguso/cocada-sub000/bitarray"
	"github.com/paguso/cocada-sub000/event"
	"github.com/paguso/cocada-sub000/rankselect"
	"github.com/paguso/cocada-sub000/sais"
	"github.com/paguso/cocada-sub000/wavelet"
	"github.com/paguso/cocada-sub000/xchar"
)

// smallTierThreshold is the tier size at or below which a tier stores its
// suffix array and inverse plainly instead of recursing further.
const smallTierThreshold = 2

// tier is one level of the psi-based recursion. A position in tier ell
// is an original text position divided by 2^ell; every value that
// survives to tier ell is therefore a multiple of 2^ell in [0, n].
type tier struct {
	size int // number of ranks at this tier

	charStopBV *rankselect.CSRS // run-boundary bitmap, length size
	phiWT      *wavelet.Tree    // destination-bucket sequence, length size
	destStart  []int            // bucket id -> first rank of that bucket

	// bucketSymbol is populated only at tier 0: bucket id -> the shifted,
	// sentinel-inclusive character value (0 means the virtual sentinel).
	bucketSymbol []int

	evenBV *rankselect.CSRS // set iff the coarse position at rank i is even; nil at the last tier
	next   *tier            // nil at the last tier

	plainSA, plainISA []int // populated only at the last tier
}

// CSA is a psi-based compressed suffix array over an xchar.Alphabet.
type CSA struct {
	ab   xchar.Alphabet
	n    int // original text length; Length() reports n+1
	root *tier
}

// Build constructs the CSA for text over ab. bc may be nil.
func Build(ab xchar.Alphabet, text []xchar.Char, bc *event.Broadcaster) (*CSA, error) {
	sa, err := sais.ComputeSuffixArray(ab, text)

	if err != nil {
		return nil, err
	}

	n := len(text)
	data := make([]int, n+1)

	for i, c := range text {
		data[i] = ab.Rank(c) + 1
	}

	data[n] = 0

	root := buildTier(sa, 0, data, bc)
	event.Fire(bc, event.TypeCSALevelBuilt, 0, n+1, fmt.Sprintf("csa built, n=%d", n))

	return &CSA{ab: ab, n: n, root: root}, nil
}

// buildTier builds the tier at height ell over cur, the tier's suffix
// array (a permutation of 0..len(cur)-1, each entry a coarse position at
// granularity 2^ell), using data to look up the original first character
// of a coarse position via data[coarsePos<<ell].
func buildTier(cur []int, ell int, data []int, bc *event.Broadcaster) *tier {
	size := len(cur)
	isa := make([]int, size)

	for i, p := range cur {
		isa[p] = i
	}

	firstChar := make([]int, size)

	for i, p := range cur {
		firstChar[i] = data[p<<uint(ell)]
	}

	csBuf := make([]byte, (size+7)/8)
	numBuckets := 0
	bucketVal := make([]int, 0)
	bucketOf := make([]int, size)

	for i := 0; i < size; i++ {
		if i == 0 || firstChar[i] != firstChar[i-1] {
			numBuckets++
			bucketVal = append(bucketVal, firstChar[i])
		}

		bucketOf[i] = numBuckets - 1

		if i == size-1 || firstChar[i] != firstChar[i+1] {
			bitarray.SetBit(csBuf, i, true)
		}
	}

	if size > 0 {
		bitarray.SetBit(csBuf, 0, true)
		bitarray.SetBit(csBuf, size-1, true)
	}

	charStopBV, err := rankselect.New(csBuf, size)

	if err != nil {
		panic(err) // internal invariant: size and csBuf are always consistent
	}

	bucketSize := make([]int, numBuckets)

	for i := 0; i < size; i++ {
		bucketSize[bucketOf[i]]++
	}

	destStart := make([]int, numBuckets)
	sum := 0

	for b := 0; b < numBuckets; b++ {
		destStart[b] = sum
		sum += bucketSize[b]
	}

	seq := make([]xchar.Char, size)

	for i := 0; i < size; i++ {
		nextPos := cur[i] + 1

		if size > 0 {
			nextPos %= size
		}

		phiI := isa[nextPos]
		seq[i] = xchar.Char(bucketOf[phiI])
	}

	intAb, err := xchar.NewIntAlphabet(numBuckets)

	if err != nil {
		panic(err)
	}

	phiWT, err := wavelet.BuildBalanced(intAb, seq, bc)

	if err != nil {
		panic(err)
	}

	t := &tier{size: size, charStopBV: charStopBV, phiWT: phiWT, destStart: destStart}

	if ell == 0 {
		t.bucketSymbol = bucketVal
	}

	event.Fire(bc, event.TypeCSALevelBuilt, ell+1, size, fmt.Sprintf("csa tier %d built, size=%d, buckets=%d", ell, size, numBuckets))

	if size <= smallTierThreshold {
		t.plainSA = append([]int(nil), cur...)
		t.plainISA = isa
		return t
	}

	evBuf := make([]byte, (size+7)/8)
	projected := make([]int, 0, size/2+1)

	for i := 0; i < size; i++ {
		if cur[i]%2 == 0 {
			bitarray.SetBit(evBuf, i, true)
			projected = append(projected, cur[i]/2)
		}
	}

	evenBV, err := rankselect.New(evBuf, size)

	if err != nil {
		panic(err)
	}

	t.evenBV = evenBV
	t.next = buildTier(projected, ell+1, data, bc)
	return t
}

// psi returns psi(i) at this tier: the rank, within this tier, of the
// suffix one coarse position to the right of the suffix at rank i.
func (t *tier) psi(i int) int {
	srcStart := 0

	if pred := t.charStopBV.Pred(i, 1); pred != t.charStopBV.Len() {
		srcStart = pred + 1
	}

	d := int(t.phiWT.Access(i))

	upToI := t.phiWT.Rank(i+1, xchar.Char(d))
	beforeStart := t.phiWT.Rank(srcStart, xchar.Char(d))
	localRank := upToI - beforeStart - 1

	return t.destStart[d] + localRank
}

// get returns the coarse position (at this tier's granularity) of rank i.
func (t *tier) get(i int) int {
	if t.plainSA != nil {
		return t.plainSA[i]
	}

	if t.evenBV.Get(i) == 1 {
		childRank := t.evenBV.Rank(i, 1)
		return 2 * t.next.get(childRank)
	}

	v := t.get(t.psi(i)) - 1

	if v < 0 {
		v += t.size
	}

	return v
}

// inverse returns the rank of the suffix at coarse position pos.
func (t *tier) inverse(pos int) int {
	if t.plainISA != nil {
		return t.plainISA[pos]
	}

	if pos%2 == 0 {
		childRank := t.next.inverse(pos / 2)
		return t.evenBV.Select(childRank, 1)
	}

	return t.psi(t.inverse(pos - 1))
}

// Length returns n+1, counting the virtual sentinel suffix.
func (c *CSA) Length() int {
	return c.n + 1
}

// Get returns SA[i]: the text position of the suffix with sorted rank i.
func (c *CSA) Get(i int) int {
	return c.root.get(i)
}

// Inverse returns SA^-1[pos]: the sorted rank of the suffix starting at
// text position pos.
func (c *CSA) Inverse(pos int) int {
	return c.root.inverse(pos)
}

// Psi returns psi(i) at the root tier: the rank of the suffix starting
// one text position after the suffix at rank i.
func (c *CSA) Psi(i int) int {
	return c.root.psi(i)
}

// CharAt returns the first character of the suffix starting at text
// position pos, or xchar.EOF for the virtual sentinel position pos == n.
func (c *CSA) CharAt(pos int) xchar.Char {
	rank := c.root.inverse(pos)
	bucket := c.root.charStopBV.Rank(rank, 1)
	val := c.root.bucketSymbol[bucket]

	if val == 0 {
		return xchar.EOF
	}

	return c.ab.Symbol(val - 1)
}
