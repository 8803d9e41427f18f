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

package huffman

import "github.com/paguso/cocada-sub000/xchar"

// FrequenciesFromChars tallies a frequency vector over ab from a
// length-delimited slice of extended chars.
func FrequenciesFromChars(ab xchar.Alphabet, text []xchar.Char) []int {
	freqs := make([]int, ab.Size())

	for _, c := range text {
		r := ab.Rank(c)

		if r < len(freqs) {
			freqs[r]++
		}
	}

	return freqs
}

// FrequenciesFromBytes tallies a frequency vector over ab from a raw
// byte buffer (the common case for a byte alphabet).
func FrequenciesFromBytes(ab xchar.Alphabet, data []byte) []int {
	freqs := make([]int, ab.Size())

	for _, b := range data {
		r := ab.Rank(xchar.Char(b))

		if r < len(freqs) {
			freqs[r]++
		}
	}

	return freqs
}

// DiscoverByteAlphabet builds a char alphabet from exactly the distinct
// byte values present in data (online construction, byte alphabets
// only), in ascending order, and returns it together with the matching
// frequency vector. Symbols with zero count are omitted by construction.
func DiscoverByteAlphabet(data []byte) (xchar.Alphabet, []int, error) {
	var present [256]bool
	var counts [256]int

	for _, b := range data {
		present[b] = true
		counts[b]++
	}

	letters := make([]byte, 0, 256)

	for b := 0; b < 256; b++ {
		if present[b] {
			letters = append(letters, byte(b))
		}
	}

	if len(letters) == 0 {
		letters = []byte{0}
	}

	ab, err := xchar.NewCharAlphabet(letters)

	if err != nil {
		return nil, nil, err
	}

	freqs := make([]int, ab.Size())

	for i, b := range letters {
		freqs[i] = counts[b]
	}

	return ab, freqs, nil
}
