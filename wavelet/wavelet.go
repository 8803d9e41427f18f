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

// Package wavelet implements a wavelet tree supporting rank/select/access
// over an arbitrary alphabet, balanced or Huffman-shaped, physically
// stored as a single rankselect.CSRS bit array with a van-Emde-Boas node
// layout for locality.
//
// Construction is a two-phase process: an arena of transient,
// pointer-linked nodes is built first (mirroring how a from-scratch tree
// walk is most naturally expressed), then linearized into a flat Nodes
// array whose children are indices, with every node's bit vector copied
// into one shared backing buffer. BuildBalancedFromReader takes the text
// from a reader.CharReader instead of a pre-materialized []xchar.Char,
// for callers that only have a streaming byte source (a file, a pipe) to
// build from.
package wavelet

import (
	"fmt"

	"github.com/paguso/cocada-sub000/bitarray"
	"github.com/paguso/cocada-sub000/event"
	"github.com/paguso/cocada-sub000/huffman"
	"github.com/paguso/cocada-sub000/rankselect"
	"github.com/paguso/cocada-sub000/reader"
	"github.com/paguso/cocada-sub000/xchar"
)

// Code is a root-to-leaf path, MSB-first: bit i of the path (0 = most
// significant, reading left-to-right from the root) is
// (Bits >> (Len-1-i)) & 1.
type Code struct {
	Bits uint64
	Len  int
}

func (c Code) bitAt(i int) int {
	return int((c.Bits >> uint(c.Len-1-i)) & 1)
}

// childRef is either a child node index or a leaf-stamped terminal
// alphabet rank, per the tagged-variant re-architecture of the design
// notes.
type childRef struct {
	isLeaf bool
	rank   int
	idx    int
}

// Node is one internal node of the linearized tree.
type Node struct {
	Offset int
	Length int
	Cum0   int // count of 0-bits in the backing array before Offset
	Cum1   int
	Left   childRef
	Right  childRef
}

func (n Node) childFor(bit int) childRef {
	if bit == 0 {
		return n.Left
	}

	return n.Right
}

func (n Node) cumFor(bit int) int {
	if bit == 0 {
		return n.Cum0
	}

	return n.Cum1
}

// Tree is an immutable wavelet tree.
type Tree struct {
	ab    xchar.Alphabet
	n     int
	bits  *rankselect.CSRS
	nodes []Node
	root  int
	codes []Code // indexed by alphabet rank

	// degenerate is set for a single-symbol alphabet: access/rank/select
	// are O(1) boundary answers and nodes holds exactly the one all-zero
	// node required by the design notes, unused by any query.
	degenerate bool
	onlyRank   int
}

// tmpNode is the transient, pointer-linked construction-time node.
type tmpNode struct {
	bits                *bitarray.Dynamic
	left, right         *tmpNode
	leftLeaf, rightLeaf int // -1 if the respective child is internal
}

// vebOrder linearizes the internal nodes of the tree rooted at root in
// van-Emde-Boas order: the top half (by height) of the tree first, then
// each bottom fringe subtree, recursively, left to right. This keeps a
// root-to-leaf descent's touched nodes close together in the backing
// array regardless of depth, per the design notes' node-layout guidance.
func vebOrder(root *tmpNode) []*tmpNode {
	return vebOrderAt(root)
}

func vebOrderAt(n *tmpNode) []*tmpNode {
	if n == nil {
		return nil
	}

	h := treeHeight(n)

	if h <= 1 {
		return []*tmpNode{n}
	}

	topH := (h + 1) / 2

	var top []*tmpNode
	collectUpTo(n, 0, topH-1, &top)

	var fringe []*tmpNode
	collectFringe(n, 0, topH, &fringe)

	result := append([]*tmpNode{}, top...)

	for _, f := range fringe {
		result = append(result, vebOrderAt(f)...)
	}

	return result
}

func treeHeight(n *tmpNode) int {
	if n == nil {
		return 0
	}

	lh, rh := treeHeight(n.left), treeHeight(n.right)

	if lh > rh {
		return lh + 1
	}

	return rh + 1
}

func collectUpTo(n *tmpNode, depth, maxDepth int, out *[]*tmpNode) {
	if n == nil || depth > maxDepth {
		return
	}

	*out = append(*out, n)
	collectUpTo(n.left, depth+1, maxDepth, out)
	collectUpTo(n.right, depth+1, maxDepth, out)
}

func collectFringe(n *tmpNode, depth, targetDepth int, out *[]*tmpNode) {
	if n == nil {
		return
	}

	if depth == targetDepth {
		*out = append(*out, n)
		return
	}

	collectFringe(n.left, depth+1, targetDepth, out)
	collectFringe(n.right, depth+1, targetDepth, out)
}

// BuildBalanced builds a wavelet tree over text (a slice of alphabet
// symbols, mapped through ab.Rank here; a symbol outside ab is an error)
// using the balanced shape: the alphabet is recursively split into equal
// halves.
func BuildBalanced(ab xchar.Alphabet, text []xchar.Char, bc *event.Broadcaster) (*Tree, error) {
	ranks, err := toRanks(ab, text)

	if err != nil {
		return nil, err
	}

	if ab.Size() == 1 {
		return buildDegenerate(ab, len(ranks))
	}

	root := buildBalancedNode(0, ab.Size(), ranks)
	return buildFromRanksWithRoot(ab, ranks, root, bc)
}

// BuildHuffman builds a wavelet tree shaped like the Huffman tree for
// freqs: the alphabet is partitioned, at every node, by that node's
// Huffman leaf-set coverage.
func BuildHuffman(ab xchar.Alphabet, text []xchar.Char, freqs []int, bc *event.Broadcaster) (*Tree, error) {
	ranks, err := toRanks(ab, text)

	if err != nil {
		return nil, err
	}

	ht, err := huffman.Build(ab, freqs)

	if err != nil {
		return nil, err
	}

	if len(ht.Nodes) == 1 {
		// Huffman tree degenerates to a single leaf: same as a
		// single-symbol alphabet.
		return buildDegenerate(ab, len(ranks))
	}

	root := buildHuffmanNode(ht, ht.Root, ranks)
	return buildFromRanksWithRoot(ab, ranks, root, bc)
}

// BuildBalancedFromReader is BuildBalanced for a byte alphabet whose text
// is not already held in memory as a []xchar.Char: it drains r (reset
// first) in fixed-size chunks via ReadN rather than requiring the caller
// to materialize the whole text up front, then builds exactly as
// BuildBalanced does. Intended for reader.ByteReader sources, where
// SizeofChar() == 1.
func BuildBalancedFromReader(ab xchar.Alphabet, r reader.CharReader, bc *event.Broadcaster) (*Tree, error) {
	text, err := drainReader(r)

	if err != nil {
		return nil, err
	}

	return BuildBalanced(ab, text, bc)
}

func drainReader(r reader.CharReader) ([]xchar.Char, error) {
	if err := r.Reset(); err != nil {
		return nil, err
	}

	var text []xchar.Char
	buf := make([]xchar.Char, 4096)

	for {
		n, err := r.ReadN(buf)

		if err != nil {
			return nil, err
		}

		text = append(text, buf[:n]...)

		if n < len(buf) {
			break
		}
	}

	return text, nil
}

func toRanks(ab xchar.Alphabet, text []xchar.Char) ([]int, error) {
	ranks := make([]int, len(text))

	for i, c := range text {
		r := ab.Rank(c)

		if r >= ab.Size() {
			return nil, fmt.Errorf("wavelet: symbol %v at position %d is not in the alphabet", c, i)
		}

		ranks[i] = r
	}

	return ranks, nil
}

func buildBalancedNode(lo, hi int, syms []int) *tmpNode {
	mid := lo + (hi-lo)/2
	tn := &tmpNode{bits: bitarray.NewDynamic(), leftLeaf: -1, rightLeaf: -1}

	var leftSyms, rightSyms []int

	for _, r := range syms {
		if r < mid {
			tn.bits.Append(false)
			leftSyms = append(leftSyms, r)
		} else {
			tn.bits.Append(true)
			rightSyms = append(rightSyms, r)
		}
	}

	if mid-lo == 1 {
		tn.leftLeaf = lo
	} else {
		tn.left = buildBalancedNode(lo, mid, leftSyms)
	}

	if hi-mid == 1 {
		tn.rightLeaf = mid
	} else {
		tn.right = buildBalancedNode(mid, hi, rightSyms)
	}

	return tn
}

func buildHuffmanNode(ht *huffman.Tree, idx int, syms []int) *tmpNode {
	hn := ht.Nodes[idx]
	tn := &tmpNode{bits: bitarray.NewDynamic(), leftLeaf: -1, rightLeaf: -1}

	var leftSyms, rightSyms []int

	for _, r := range syms {
		if ht.Covers(hn.Left, r) {
			tn.bits.Append(false)
			leftSyms = append(leftSyms, r)
		} else {
			tn.bits.Append(true)
			rightSyms = append(rightSyms, r)
		}
	}

	if ht.Nodes[hn.Left].IsLeaf {
		tn.leftLeaf = ht.Nodes[hn.Left].Rank
	} else {
		tn.left = buildHuffmanNode(ht, hn.Left, leftSyms)
	}

	if ht.Nodes[hn.Right].IsLeaf {
		tn.rightLeaf = ht.Nodes[hn.Right].Rank
	} else {
		tn.right = buildHuffmanNode(ht, hn.Right, rightSyms)
	}

	return tn
}

func buildDegenerate(ab xchar.Alphabet, n int) (*Tree, error) {
	buf := make([]byte, (n+7)/8) // all-zero bits, per the design notes
	csrs, err := rankselect.New(buf, n)

	if err != nil {
		return nil, err
	}

	return &Tree{
		ab:         ab,
		n:          n,
		bits:       csrs,
		nodes:      []Node{{Offset: 0, Length: n}},
		root:       0,
		codes:      []Code{{Bits: 0, Len: 1}},
		degenerate: true,
		onlyRank:   0,
	}, nil
}

// buildFromRanksWithRoot linearizes the transient tree rooted at root
// (van-Emde-Boas order) into the tree's flat representation.
func buildFromRanksWithRoot(ab xchar.Alphabet, ranks []int, root *tmpNode, bc *event.Broadcaster) (*Tree, error) {
	order := vebOrder(root)
	indexOf := make(map[*tmpNode]int, len(order))

	for i, tn := range order {
		indexOf[tn] = i
	}

	backing := bitarray.NewDynamic()
	nodes := make([]Node, len(order))
	running0, running1 := 0, 0

	for i, tn := range order {
		offset := backing.Len()
		length := tn.bits.Len()

		n := Node{Offset: offset, Length: length, Cum0: running0, Cum1: running1}
		n.Left = resolveChild(tn.leftLeaf, tn.left, indexOf)
		n.Right = resolveChild(tn.rightLeaf, tn.right, indexOf)
		nodes[i] = n

		ones := 0

		for b := 0; b < length; b++ {
			bit := tn.bits.Get(b)
			backing.Append(bit)

			if bit {
				ones++
			}
		}

		running0 += length - ones
		running1 += ones

		event.Fire(bc, event.TypeNodeLinearized, i, length, fmt.Sprintf("wavelet node %d/%d linearized", i+1, len(order)))
	}

	csrs, err := rankselect.FromDynamic(backing)

	if err != nil {
		return nil, err
	}

	codes := make([]Code, ab.Size())
	collectCodes(root, indexOf, 0, 0, codes)

	return &Tree{ab: ab, n: len(ranks), bits: csrs, nodes: nodes, root: indexOf[root], codes: codes}, nil
}

func resolveChild(leafRank int, child *tmpNode, indexOf map[*tmpNode]int) childRef {
	if leafRank >= 0 {
		return childRef{isLeaf: true, rank: leafRank}
	}

	return childRef{isLeaf: false, idx: indexOf[child]}
}

func collectCodes(tn *tmpNode, indexOf map[*tmpNode]int, depth int, path uint64, codes []Code) {
	if tn.leftLeaf >= 0 {
		codes[tn.leftLeaf] = Code{Bits: path << 1, Len: depth + 1}
	} else {
		collectCodes(tn.left, indexOf, depth+1, path<<1, codes)
	}

	if tn.rightLeaf >= 0 {
		codes[tn.rightLeaf] = Code{Bits: (path << 1) | 1, Len: depth + 1}
	} else {
		collectCodes(tn.right, indexOf, depth+1, (path<<1)|1, codes)
	}
}

// Len returns the represented text length n.
func (t *Tree) Len() int {
	return t.n
}

// Access returns the symbol at text position p.
func (t *Tree) Access(p int) xchar.Char {
	if t.degenerate {
		return t.ab.Symbol(t.onlyRank)
	}

	idx := t.root
	local := p

	for {
		node := t.nodes[idx]
		bit := t.bits.Get(node.Offset + local)
		local = t.bits.Rank(node.Offset+local, bit) - node.cumFor(bit)
		child := node.childFor(bit)

		if child.isLeaf {
			return t.ab.Symbol(child.rank)
		}

		idx = child.idx
	}
}

// RankPos is Access, additionally returning the local rank reached at
// the leaf (i.e. Rank(p, Access(p))).
func (t *Tree) RankPos(p int) (xchar.Char, int) {
	if t.degenerate {
		return t.ab.Symbol(t.onlyRank), p
	}

	idx := t.root
	local := p

	for {
		node := t.nodes[idx]
		bit := t.bits.Get(node.Offset + local)
		local = t.bits.Rank(node.Offset+local, bit) - node.cumFor(bit)
		child := node.childFor(bit)

		if child.isLeaf {
			return t.ab.Symbol(child.rank), local
		}

		idx = child.idx
	}
}

// Rank returns the number of occurrences of c in [0, p). Returns 0 if c
// is not in the represented alphabet.
func (t *Tree) Rank(p int, c xchar.Char) int {
	rank := t.ab.Rank(c)

	if rank >= t.ab.Size() {
		return 0
	}

	if t.degenerate {
		if rank == t.onlyRank {
			return p
		}

		return 0
	}

	code := t.codes[rank]
	idx := t.root
	local := p

	for depth := 0; depth < code.Len; depth++ {
		node := t.nodes[idx]
		bit := code.bitAt(depth)
		local = t.bits.Rank(node.Offset+local, bit) - node.cumFor(bit)
		child := node.childFor(bit)

		if child.isLeaf {
			break
		}

		idx = child.idx
	}

	return local
}

// Select returns the position of the r-th (0-indexed) occurrence of c.
// Returns n if r >= Rank(n, c).
func (t *Tree) Select(c xchar.Char, r int) int {
	rank := t.ab.Rank(c)

	if rank >= t.ab.Size() {
		return t.n
	}

	if t.degenerate {
		if rank == t.onlyRank && r < t.n {
			return r
		}

		return t.n
	}

	if r < 0 || r >= t.Rank(t.n, c) {
		return t.n
	}

	return t.selectRec(t.root, t.codes[rank], 0, r)
}

func (t *Tree) selectRec(idx int, code Code, depth int, r int) int {
	node := t.nodes[idx]
	bit := code.bitAt(depth)
	child := node.childFor(bit)

	var posInChild int

	if child.isLeaf {
		posInChild = r
	} else {
		posInChild = t.selectRec(child.idx, code, depth+1, r)
	}

	globalPos := t.bits.Select(node.cumFor(bit)+posInChild, bit)
	return globalPos - node.Offset
}

// Pred returns the position of the last occurrence of c strictly before
// p, or n if none.
func (t *Tree) Pred(p int, c xchar.Char) int {
	r := t.Rank(p, c)

	if r == 0 {
		return t.n
	}

	return t.Select(c, r-1)
}

// Succ returns the position of the first occurrence of c strictly after
// p, or n if none.
func (t *Tree) Succ(p int, c xchar.Char) int {
	r := t.Rank(p+1, c)

	if r >= t.Rank(t.n, c) {
		return t.n
	}

	return t.Select(c, r)
}
