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

// Package huffman builds a frequency-driven prefix code over an
// xchar.Alphabet and provides an encoder and a tree-walking decoder.
//
// The tree is laid out as a flat array of 2N-1 nodes instead of linked
// node pointers, in post-order: every node follows its two children and
// the root is the last entry. Leaves are interleaved with internal nodes,
// not grouped at indices 0..N-1; Node.Rank gives a leaf's alphabet rank.
// Construction itself
// (container/heap over weighted subtrees) is grounded on
// flanglet/kanzi-go's legacy tree-based Huffman codec
// (go/src/kanzi/entropy/HuffmanCodec.go), which builds exactly this kind
// of binary merge tree with container/heap before its newer
// canonical-code rewrite.
package huffman

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/paguso/cocada-sub000/bitarray"
	"github.com/paguso/cocada-sub000/xchar"
)

// maxCodeLen is the longest path a Code can hold, since Code packs a
// path into a uint64. A skewed-frequency input of realistic alphabet
// sizes never approaches it; Build does not check the tree depth
// against it.
const maxCodeLen = 63

// Node is one entry of the flattened Huffman tree. Leaves carry an
// alphabet rank and no children; internal nodes carry two children
// (indices into the same array) and a bitmask of the leaf ranks they
// cover.
type Node struct {
	IsLeaf bool
	Rank   int // valid iff IsLeaf
	Left   int // index into Tree.Nodes, -1 if none
	Right  int
	Mask   *bitarray.Dynamic // bitmask of leaf ranks covered by this subtree
	Weight int
}

// Tree is the full flattened Huffman tree plus its per-symbol code table.
type Tree struct {
	Nodes []Node
	Root  int
	Codes []Code // indexed by alphabet rank
	ab    xchar.Alphabet
}

// Code is a bit sequence read MSB-first along the path from the root:
// the Len low-order bits of Bits are significant, read from bit Len-1
// down to bit 0.
type Code struct {
	Bits uint64
	Len  int
}

// heap node used only during construction; unrelated to the flattened
// Node above (which has no pointers, per the design notes).
type buildNode struct {
	weight int
	rank   int // valid leaf rank, or the smallest leaf rank under this subtree (tie-break)
	left   *buildNode
	right  *buildNode
}

type nodeHeap []*buildNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}

	return h[i].rank < h[j].rank
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*buildNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Build constructs a Huffman tree from an alphabet and a frequency
// vector of length ab.Size(). Symbols with zero frequency are still
// given a code (a real alphabet symbol always has a reachable leaf);
// callers that want to exclude absent symbols should build a sub-
// alphabet first. A single-symbol alphabet produces a degenerate
// length-1 code.
func Build(ab xchar.Alphabet, freqs []int) (*Tree, error) {
	n := ab.Size()

	if len(freqs) != n {
		return nil, fmt.Errorf("huffman: expected %d frequencies, got %d", n, len(freqs))
	}

	if n == 0 {
		return nil, errors.New("huffman: alphabet must not be empty")
	}

	h := make(nodeHeap, n)

	for r := 0; r < n; r++ {
		w := freqs[r]

		if w < 1 {
			w = 1 // every symbol must remain codeable
		}

		h[r] = &buildNode{weight: w, rank: r}
	}

	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*buildNode)
		b := heap.Pop(&h).(*buildNode)
		rank := a.rank

		if b.rank < rank {
			rank = b.rank
		}

		heap.Push(&h, &buildNode{weight: a.weight + b.weight, rank: rank, left: a, right: b})
	}

	root := heap.Pop(&h).(*buildNode)

	t := &Tree{ab: ab, Codes: make([]Code, n)}

	if n == 1 {
		t.Nodes = []Node{{IsLeaf: true, Rank: 0, Left: -1, Right: -1, Weight: root.weight}}
		t.Root = 0
		t.Codes[0] = Code{Bits: 0, Len: 1}
		return t, nil
	}

	t.Nodes = make([]Node, 0, 2*n-1)
	idx := flatten(root, t, n, 0, 0)
	t.Root = idx

	return t, nil
}

// flatten appends the subtree rooted at b to t.Nodes in post-order (left
// subtree, right subtree, then b itself) and records each leaf's code as
// it assigns depths. n is the alphabet size, used to size each internal
// node's coverage mask. Returns the index of the appended node.
func flatten(b *buildNode, t *Tree, n, depth int, path uint64) int {
	if b.left == nil && b.right == nil {
		t.Codes[b.rank] = Code{Bits: path, Len: depth}
		t.Nodes = append(t.Nodes, Node{IsLeaf: true, Rank: b.rank, Left: -1, Right: -1, Weight: b.weight})
		return len(t.Nodes) - 1
	}

	li := flatten(b.left, t, n, depth+1, path<<1)
	ri := flatten(b.right, t, n, depth+1, (path<<1)|1)

	mask := bitarray.NewDynamic()
	mask.AppendRun(false, n)
	mergeMask(mask, t.Nodes[li])
	mergeMask(mask, t.Nodes[ri])

	t.Nodes = append(t.Nodes, Node{IsLeaf: false, Left: li, Right: ri, Weight: b.weight, Mask: mask})
	return len(t.Nodes) - 1
}

// mergeMask ORs the leaf ranks covered by child into mask, which is
// already sized to the alphabet.
func mergeMask(mask *bitarray.Dynamic, child Node) {
	if child.IsLeaf {
		mask.Set(child.Rank, true)
		return
	}

	for i := 0; i < child.Mask.Len(); i++ {
		if child.Mask.Get(i) {
			mask.Set(i, true)
		}
	}
}

// Covers reports whether the subtree rooted at nodes[idx] covers the
// given alphabet rank.
func (t *Tree) Covers(idx, rank int) bool {
	node := t.Nodes[idx]

	if node.IsLeaf {
		return node.Rank == rank
	}

	return node.Mask != nil && rank < node.Mask.Len() && node.Mask.Get(rank)
}

// Encode concatenates the code of every rank in ranks (already mapped
// through ab.Rank by the caller) into a fresh dynamic bitvector.
func (t *Tree) Encode(ranks []int) *bitarray.Dynamic {
	out := bitarray.NewDynamic()

	for _, r := range ranks {
		c := t.Codes[r]
		out.AppendBits(c.Bits, uint(c.Len))
	}

	return out
}

// Decoder walks the tree one bit at a time, restarting at the root
// after every leaf. Decode drops a trailing partial code silently, per
// spec.
type Decoder struct {
	t   *Tree
	cur int
}

// NewDecoder creates a decoder bound to tree t.
func NewDecoder(t *Tree) *Decoder {
	return &Decoder{t: t, cur: t.Root}
}

// PushBit feeds one bit into the decoder. When a leaf is reached it
// returns (rank, true) and resets to the root; otherwise (0, false).
func (d *Decoder) PushBit(bit bool) (int, bool) {
	node := d.t.Nodes[d.cur]

	if node.IsLeaf {
		// Degenerate single-symbol tree: every bit re-emits the one symbol.
		d.cur = d.t.Root
		return node.Rank, true
	}

	if bit {
		d.cur = node.Right
	} else {
		d.cur = node.Left
	}

	next := d.t.Nodes[d.cur]

	if next.IsLeaf {
		d.cur = d.t.Root
		return next.Rank, true
	}

	return 0, false
}

// Decode decodes a bit sequence (as produced by Encode/bitarray.Dynamic)
// into a slice of alphabet ranks. Any partial code left at the end of
// bits is silently dropped.
func Decode(t *Tree, bits *bitarray.Dynamic) []int {
	dec := NewDecoder(t)
	out := make([]int, 0, bits.Len())

	for i := 0; i < bits.Len(); i++ {
		if r, ok := dec.PushBit(bits.Get(i)); ok {
			out = append(out, r)
		}
	}

	return out
}

// KraftSum returns sum(2^-len(code(s))) over all symbols, which equals
// 1 for a complete (non-degenerate) prefix code.
func (t *Tree) KraftSum() float64 {
	sum := 0.0

	for _, c := range t.Codes {
		sum += 1.0 / float64(uint64(1)<<uint(c.Len))
	}

	return sum
}
