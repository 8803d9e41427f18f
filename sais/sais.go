/*
Copyright 2011-2022 Frederic Langlet
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

// Package sais builds the suffix array of a string over an xchar.Alphabet
// using induced sorting (SA-IS): suffixes are classified S-type/L-type,
// LMS substrings are named, and the problem recurses on the reduced
// name-string whenever two LMS substrings collide, following the
// Nong-Zhang-Chen linear-time construction.
//
// A virtual sentinel strictly smaller than every alphabet symbol is
// always appended, so ComputeSuffixArray(ab, text) of a length-n text
// returns a length-(n+1) array with SA[0] == n.
package sais

import (
	"errors"

	"github.com/paguso/cocada-sub000/xchar"
)

// ComputeSuffixArray returns the suffix array of text over ab, with a
// virtual sentinel appended. The returned slice has length len(text)+1.
func ComputeSuffixArray(ab xchar.Alphabet, text []xchar.Char) ([]int, error) {
	n := len(text)
	s := make([]int, n+1)

	for i, c := range text {
		r := ab.Rank(c)

		if r < 0 || r >= ab.Size() {
			return nil, errors.New("sais: text contains a symbol outside the alphabet")
		}

		s[i] = r + 1 // rank 0 is reserved for the sentinel
	}

	s[n] = 0
	return suffixArray(s, ab.Size()+1), nil
}

// InverseSuffixArray returns isa such that isa[sa[i]] == i for all i.
func InverseSuffixArray(sa []int) []int {
	isa := make([]int, len(sa))

	for i, p := range sa {
		isa[p] = i
	}

	return isa
}

// suffixArray returns the suffix array of s, an array over {0,...,sigma-1}
// whose last element is 0 and is the unique occurrence of that value
// (the sentinel convention every caller, recursive or not, must uphold).
func suffixArray(s []int, sigma int) []int {
	n := len(s)

	if n == 1 {
		return []int{0}
	}

	isS := classifyTypes(s)
	counts := countSymbols(s, sigma)

	sa := make([]int, n)
	seedLMS(s, isS, counts, sigma, sa)
	induceL(s, isS, counts, sigma, sa)
	induceS(s, isS, counts, sigma, sa)

	lmsPositions := collectLMSPositionsInOrder(isS)
	order := collectLMSOrderFromSA(sa, isS)
	names, numNames := nameLMSSubstrings(s, isS, order)

	reduced := make([]int, len(lmsPositions))

	for i, p := range lmsPositions {
		reduced[i] = names[p]
	}

	m := len(lmsPositions)
	var orderedLMS []int

	if numNames == m {
		// Every LMS substring is distinct: its name already is its rank
		// among the sorted LMS suffixes.
		orderedLMS = make([]int, m)

		for _, p := range lmsPositions {
			orderedLMS[names[p]] = p
		}
	} else {
		reducedSA := suffixArray(reduced, numNames)
		orderedLMS = make([]int, m)

		for i, p := range reducedSA {
			orderedLMS[i] = lmsPositions[p]
		}
	}

	for i := range sa {
		sa[i] = -1
	}

	placeLMSInOrder(s, counts, sigma, orderedLMS, sa)
	induceL(s, isS, counts, sigma, sa)
	induceS(s, isS, counts, sigma, sa)

	return sa
}

// classifyTypes returns, for each position in s, whether it is S-type
// (its suffix is lexicographically smaller than the next one, or equal
// and the next position is itself S-type). The last position is always
// S-type by convention.
func classifyTypes(s []int) []bool {
	n := len(s)
	isS := make([]bool, n)
	isS[n-1] = true

	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			isS[i] = true
		case s[i] > s[i+1]:
			isS[i] = false
		default:
			isS[i] = isS[i+1]
		}
	}

	return isS
}

// isLMSPos reports whether position i is a left-most S-type position:
// S-type itself, with an L-type predecessor.
func isLMSPos(isS []bool, i int) bool {
	return i > 0 && isS[i] && !isS[i-1]
}

func countSymbols(s []int, sigma int) []int {
	counts := make([]int, sigma)

	for _, c := range s {
		counts[c]++
	}

	return counts
}

// bucketHeads returns, for each symbol, the index of its bucket's first
// slot in a suffix array over s.
func bucketHeads(counts []int, sigma int) []int {
	heads := make([]int, sigma)
	sum := 0

	for c := 0; c < sigma; c++ {
		heads[c] = sum
		sum += counts[c]
	}

	return heads
}

// bucketTails returns, for each symbol, the index of its bucket's last
// slot in a suffix array over s.
func bucketTails(counts []int, sigma int) []int {
	tails := make([]int, sigma)
	sum := 0

	for c := 0; c < sigma; c++ {
		sum += counts[c]
		tails[c] = sum - 1
	}

	return tails
}

// seedLMS places every LMS position into sa at the tail of its symbol's
// bucket, scanning right to left so that, within one bucket, later
// positions end up above earlier ones. Every non-LMS slot is left at -1.
func seedLMS(s []int, isS []bool, counts []int, sigma int, sa []int) {
	for i := range sa {
		sa[i] = -1
	}

	tails := bucketTails(counts, sigma)

	for i := len(s) - 1; i >= 0; i-- {
		if isLMSPos(isS, i) {
			c := s[i]
			sa[tails[c]] = i
			tails[c]--
		}
	}
}

// placeLMSInOrder is seedLMS for an already lexicographically sorted
// list of LMS positions: it processes them from largest to smallest so
// that, within one bucket, the smallest lands in the lowest slot.
func placeLMSInOrder(s []int, counts []int, sigma int, orderedLMS []int, sa []int) {
	tails := bucketTails(counts, sigma)

	for i := len(orderedLMS) - 1; i >= 0; i-- {
		p := orderedLMS[i]
		c := s[p]
		sa[tails[c]] = p
		tails[c]--
	}
}

// induceL fills in every L-type suffix's position by scanning sa left to
// right: whenever sa[i]'s predecessor j = sa[i]-1 is L-type, j is placed
// at the head of its own bucket.
func induceL(s []int, isS []bool, counts []int, sigma int, sa []int) {
	heads := bucketHeads(counts, sigma)

	for i := 0; i < len(sa); i++ {
		if sa[i] <= 0 {
			continue
		}

		j := sa[i] - 1

		if !isS[j] {
			c := s[j]
			sa[heads[c]] = j
			heads[c]++
		}
	}
}

// induceS is induceL's mirror: it scans sa right to left, placing every
// S-type predecessor at the tail of its bucket.
func induceS(s []int, isS []bool, counts []int, sigma int, sa []int) {
	tails := bucketTails(counts, sigma)

	for i := len(sa) - 1; i >= 0; i-- {
		if sa[i] <= 0 {
			continue
		}

		j := sa[i] - 1

		if isS[j] {
			c := s[j]
			sa[tails[c]] = j
			tails[c]--
		}
	}
}

// collectLMSPositionsInOrder returns every LMS position in increasing
// order of occurrence in s.
func collectLMSPositionsInOrder(isS []bool) []int {
	var positions []int

	for i := range isS {
		if isLMSPos(isS, i) {
			positions = append(positions, i)
		}
	}

	return positions
}

// collectLMSOrderFromSA extracts, from a (possibly only LMS-correct)
// suffix array, the LMS positions in the order they occur in sa — which
// a single round of seedLMS/induceL/induceS always gets right, even
// when the non-LMS entries are not yet the final answer.
func collectLMSOrderFromSA(sa []int, isS []bool) []int {
	var order []int

	for _, p := range sa {
		if isLMSPos(isS, p) {
			order = append(order, p)
		}
	}

	return order
}

// lmsSubstringEqual reports whether the LMS substrings starting at p and
// q (each running up to and including the next LMS position) are
// identical in both characters and S/L typing.
func lmsSubstringEqual(s []int, isS []bool, p, q int) bool {
	if p == q {
		return true
	}

	n := len(s)

	for d := 0; ; d++ {
		pi, qi := p+d, q+d

		if pi >= n || qi >= n {
			return false
		}

		if s[pi] != s[qi] || isS[pi] != isS[qi] {
			return false
		}

		if d > 0 {
			pEnd := isLMSPos(isS, pi)
			qEnd := isLMSPos(isS, qi)

			if pEnd && qEnd {
				return true
			}

			if pEnd != qEnd {
				return false
			}
		}
	}
}

// nameLMSSubstrings assigns each LMS position, in order, the rank of its
// substring among the distinct substrings seen so far in order. Returns
// a sparse name array (indexed by position, meaningful only at LMS
// positions) and the number of distinct names assigned.
func nameLMSSubstrings(s []int, isS []bool, order []int) ([]int, int) {
	names := make([]int, len(s))

	for i := range names {
		names[i] = -1
	}

	name := -1
	prev := -1

	for _, p := range order {
		if prev == -1 || !lmsSubstringEqual(s, isS, prev, p) {
			name++
		}

		names[p] = name
		prev = p
	}

	return names, name + 1
}
