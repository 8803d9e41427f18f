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

// Package xchar defines the eXtended char type and the finite ordered
// alphabets built on top of it.
//
// Char is a renaming of a signed integer type large enough to hold any
// alphabet symbol plus a distinguished end-of-stream sentinel. It carries
// no connexion to any particular text encoding.
package xchar

import "fmt"

// Width is the build-time-fixed byte width of a Char: 1, 2, 4 or 8.
// The zero value behaves as the default width of 4.
type Width int

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

// Char is the eXtended char type. Values are signed; in-range alphabet
// symbols occupy 0..Max, with EOF reserved as the end-of-stream sentinel.
type Char int64

// EOF is the distinguished end-of-stream sentinel value, returned by
// queries that run past the end of an index or a character stream.
const EOF Char = -1

// MaxForWidth returns the maximum representable Char value for a given
// xchar byte width. Panics on an invalid width: this is a build-time
// configuration error, not a runtime condition.
func MaxForWidth(w Width) Char {
	switch w {
	case Width1:
		return Char(1<<7 - 1)
	case Width2:
		return Char(1<<15 - 1)
	case Width4, 0:
		return Char(1<<31 - 1)
	case Width8:
		return Char(1<<63 - 1)
	default:
		panic(fmt.Errorf("xchar: invalid width %d (must be 1, 2, 4 or 8)", w))
	}
}
