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

// Package reader is the streaming pull contract an index constructor
// can take in place of a plain in-memory []xchar.Char buffer: reset to
// the start, pull one character at a time, bulk-read into a caller
// buffer, or read up to a delimiter. SliceReader wraps an already
// materialized []xchar.Char; ByteReader adapts any io.ReadSeeker of raw
// bytes into a CharReader of single-byte xchars, the way
// internal.BufferStream wraps a bytes.Buffer behind a closable
// io.Reader/io.Writer pair.
package reader

import (
	"bufio"
	"io"

	"github.com/paguso/cocada-sub000/xchar"
)

// CharReader is the streaming pull API consumed by index constructors
// in place of a plain slice.
type CharReader interface {
	// Reset rewinds the reader to its start.
	Reset() error

	// GetChar returns the next character, or ok == false at end of input.
	GetChar() (xchar.Char, bool)

	// ReadN reads up to len(buf) characters into buf, returning the
	// number actually read. A short read (n < len(buf)) signals end of
	// input; it is not itself an error.
	ReadN(buf []xchar.Char) (int, error)

	// ReadUntil reads and returns characters up to but not including the
	// first occurrence of delim, consuming the delimiter. At end of
	// input without seeing delim, it returns what it read and io.EOF.
	ReadUntil(delim xchar.Char) ([]xchar.Char, error)

	// SizeofChar returns the width, in bytes, of one character as this
	// reader stores it.
	SizeofChar() int
}

// SliceReader is a CharReader over an already materialized slice.
type SliceReader struct {
	data []xchar.Char
	pos  int
}

// NewSliceReader wraps data for streaming access. The returned reader
// does not copy data; the caller must not mutate it while in use.
func NewSliceReader(data []xchar.Char) *SliceReader {
	return &SliceReader{data: data}
}

// Reset implements CharReader.
func (r *SliceReader) Reset() error {
	r.pos = 0
	return nil
}

// GetChar implements CharReader.
func (r *SliceReader) GetChar() (xchar.Char, bool) {
	if r.pos >= len(r.data) {
		return xchar.EOF, false
	}

	c := r.data[r.pos]
	r.pos++
	return c, true
}

// ReadN implements CharReader.
func (r *SliceReader) ReadN(buf []xchar.Char) (int, error) {
	n := copy(buf, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// ReadUntil implements CharReader.
func (r *SliceReader) ReadUntil(delim xchar.Char) ([]xchar.Char, error) {
	start := r.pos

	for r.pos < len(r.data) {
		if r.data[r.pos] == delim {
			out := append([]xchar.Char(nil), r.data[start:r.pos]...)
			r.pos++
			return out, nil
		}

		r.pos++
	}

	return append([]xchar.Char(nil), r.data[start:r.pos]...), io.EOF
}

// SizeofChar implements CharReader.
func (r *SliceReader) SizeofChar() int {
	return 8 // xchar.Char is an int64-backed rank/code
}

// ByteReader adapts an io.ReadSeeker of raw bytes into a CharReader whose
// characters are single bytes.
type ByteReader struct {
	src    io.ReadSeeker
	br     *bufio.Reader
	resets int
}

// NewByteReader wraps src, an io.ReadSeeker positioned at its start.
func NewByteReader(src io.ReadSeeker) *ByteReader {
	return &ByteReader{src: src, br: bufio.NewReader(src)}
}

// Reset implements CharReader by seeking src back to its start.
func (r *ByteReader) Reset() error {
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	r.br = bufio.NewReader(r.src)
	r.resets++
	return nil
}

// GetChar implements CharReader.
func (r *ByteReader) GetChar() (xchar.Char, bool) {
	b, err := r.br.ReadByte()

	if err != nil {
		return xchar.EOF, false
	}

	return xchar.Char(b), true
}

// ReadN implements CharReader.
func (r *ByteReader) ReadN(buf []xchar.Char) (int, error) {
	n := 0

	for n < len(buf) {
		b, err := r.br.ReadByte()

		if err != nil {
			if err == io.EOF {
				return n, nil
			}

			return n, err
		}

		buf[n] = xchar.Char(b)
		n++
	}

	return n, nil
}

// ReadUntil implements CharReader.
func (r *ByteReader) ReadUntil(delim xchar.Char) ([]xchar.Char, error) {
	out := make([]xchar.Char, 0, 16)

	for {
		b, err := r.br.ReadByte()

		if err != nil {
			return out, io.EOF
		}

		c := xchar.Char(b)

		if c == delim {
			return out, nil
		}

		out = append(out, c)
	}
}

// SizeofChar implements CharReader.
func (r *ByteReader) SizeofChar() int {
	return 1
}
