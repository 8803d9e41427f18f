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

// Package boss builds a succinct order-k de Bruijn graph (a BOSS graph,
// Bowe, Onodera, Shibuya & Sadakane) from a padded text: the multiset of
// (k+1)-mers is sorted, deduplicated into E distinct edges over V
// distinct k-mer node labels, and the edge labels are stored in a
// wavelet tree over an extended alphabet carrying one "negative" marker
// per input symbol, used to disambiguate two distinct source nodes that
// happen to share both their (k-1)-suffix and their outgoing label.
package boss

import (
	"fmt"
	"sort"

	"github.com/paguso/cocada-sub000/bitarray"
	"github.com/paguso/cocada-sub000/event"
	"github.com/paguso/cocada-sub000/rankselect"
	"github.com/paguso/cocada-sub000/wavelet"
	"github.com/paguso/cocada-sub000/xchar"
)

// Graph is an immutable BOSS de Bruijn graph of order K.
type Graph struct {
	ab    xchar.Alphabet
	extAb xchar.Alphabet // 1 + 2*ab.Size(): sentinel, real symbols, negative markers
	k     int
	v     int
	e     int

	edgeLabels *wavelet.Tree
	f          *rankselect.CSRS

	nodeKeys [][]int // V sorted node labels, as comparison keys (0=sentinel, ab.Rank+1 otherwise)
	childOf  map[childKey]int
	parentOf []int // V entries: smallest source node rank with an edge into this node, or -1
}

type childKey struct {
	nodeRank int
	charKey  int
}

// dupKey identifies a (node-suffix, edge-label) pair for the
// already-used-elsewhere negative-marker check.
type dupKey struct {
	suffixKey string
	labelKey  int
}

// sentinelKey is the comparison-key encoding of the virtual padding
// sentinel: strictly smaller than every real alphabet symbol's key.
const sentinelKey = 0

func charKeyOf(ab xchar.Alphabet, c xchar.Char) int {
	if c == xchar.EOF {
		return sentinelKey
	}

	return ab.Rank(c) + 1
}

// Build constructs the order-k BOSS graph of text over ab. bc may be nil.
func Build(ab xchar.Alphabet, text []xchar.Char, k int, bc *event.Broadcaster) (*Graph, error) {
	if k <= 0 {
		return nil, fmt.Errorf("boss: order k must be strictly positive, got %d", k)
	}

	padded := make([]xchar.Char, 0, k+len(text)+1)

	for i := 0; i < k; i++ {
		padded = append(padded, xchar.EOF)
	}

	padded = append(padded, text...)
	padded = append(padded, xchar.EOF)

	m := len(padded) - (k + 1) // last valid (k+1)-mer start index

	keys := make([]int, len(padded))

	for i, c := range padded {
		keys[i] = charKeyOf(ab, c)
	}

	starts := make([]int, m+1)

	for i := range starts {
		starts[i] = i
	}

	sort.Slice(starts, func(i, j int) bool {
		a, b := starts[i], starts[j]

		for d := 0; d <= k; d++ {
			if keys[a+d] != keys[b+d] {
				return keys[a+d] < keys[b+d]
			}
		}

		return false
	})

	// Deduplicate consecutive equal (k+1)-mers into E distinct edges.
	dedup := starts[:0:0]

	for i, s := range starts {
		if i == 0 || !sameWindow(keys, dedup[len(dedup)-1], s, k+1) {
			dedup = append(dedup, s)
		}
	}

	e := len(dedup)
	abSize := ab.Size()
	extAb, err := xchar.NewIntAlphabet(1 + 2*abSize)

	if err != nil {
		return nil, err
	}

	// Mark, in sorted-edge order, every edge whose (node-suffix, label)
	// pair has already produced a "real" edge: such an edge is relabeled
	// with the negative (alternate) marker so address-counting downstream
	// sees exactly one real edge per distinct destination.
	seen := make(map[dupKey]bool, e)
	seq := make([]xchar.Char, e)

	fBuf := make([]byte, (e+7)/8)
	nodeKeys := make([][]int, 0)

	for i, s := range dedup {
		labelKey := keys[s+k]
		suffixKey := windowKey(keys, s+1, k-1)

		dk := dupKey{suffixKey: suffixKey, labelKey: labelKey}

		var combined int

		if !seen[dk] {
			seen[dk] = true
			combined = realRank(labelKey)
		} else {
			combined = negRank(labelKey, abSize)
		}

		seq[i] = xchar.Char(combined)

		if i == e-1 || !sameWindow(keys, s, dedup[i+1], k) {
			bitarray.SetBit(fBuf, i, true)
			nodeKeys = append(nodeKeys, append([]int(nil), keys[s:s+k]...))
		}
	}

	f, err := rankselect.New(fBuf, e)

	if err != nil {
		return nil, err
	}

	edgeLabels, err := wavelet.BuildBalanced(extAb, seq, bc)

	if err != nil {
		return nil, err
	}

	v := len(nodeKeys)

	g := &Graph{
		ab:         ab,
		extAb:      extAb,
		k:          k,
		v:          v,
		e:          e,
		edgeLabels: edgeLabels,
		f:          f,
		nodeKeys:   nodeKeys,
		parentOf:   make([]int, v),
	}

	for i := range g.parentOf {
		g.parentOf[i] = -1
	}

	g.childOf = make(map[childKey]int, e)

	for i, s := range dedup {
		srcRank := g.f.Rank(i, 1) // number of nodes fully concluded before row i: this row's own node rank

		targetKey := append(append([]int(nil), keys[s+1:s+k]...), keys[s+k])
		tr := g.findNodeRank(targetKey)

		if tr < 0 {
			continue
		}

		g.childOf[childKey{nodeRank: srcRank, charKey: keys[s+k]}] = tr

		if g.parentOf[tr] < 0 || srcRank < g.parentOf[tr] {
			g.parentOf[tr] = srcRank
		}
	}

	event.Fire(bc, event.TypeBOSSBuilt, 0, e, fmt.Sprintf("boss graph built: k=%d, v=%d, e=%d", k, v, e))

	return g, nil
}

func sameWindow(keys []int, a, b, length int) bool {
	for d := 0; d < length; d++ {
		if keys[a+d] != keys[b+d] {
			return false
		}
	}

	return true
}

func windowKey(keys []int, start, length int) string {
	return fmt.Sprint(keys[start : start+length])
}

func realRank(labelKey int) int {
	return labelKey
}

func negRank(labelKey, abSize int) int {
	if labelKey == sentinelKey {
		return labelKey // the sentinel never collides; no negative variant needed
	}

	return labelKey + abSize
}

func (g *Graph) findNodeRank(targetKey []int) int {
	lo, hi := 0, g.v

	for lo < hi {
		mid := (lo + hi) / 2

		if lessKeys(g.nodeKeys[mid], targetKey) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < g.v && equalKeys(g.nodeKeys[lo], targetKey) {
		return lo
	}

	return -1
}

func lessKeys(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func equalKeys(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// NNodes returns V, the number of distinct node labels.
func (g *Graph) NNodes() int { return g.v }

// NEdges returns E, the number of distinct edges.
func (g *Graph) NEdges() int { return g.e }

// K returns the graph's order.
func (g *Graph) K() int { return g.k }

// NodeID returns the node id of the node with rank rk in 0..NNodes()-1.
func (g *Graph) NodeID(rk int) int {
	return g.f.Select(rk, 1)
}

// NodeRank returns the rank of the node with id nid.
func (g *Graph) NodeRank(nid int) int {
	return g.f.Rank(nid, 1)
}

// Outdeg returns the out-degree of the node with id nid.
func (g *Graph) Outdeg(nid int) int {
	pred := g.f.Pred(nid, 1)

	if pred == g.f.Len() {
		return nid + 1
	}

	return nid - pred
}

// LabelledOutdeg returns the number of outgoing edges of the node with
// id nid labelled c, counting both the real and negative-marked variant.
func (g *Graph) LabelledOutdeg(nid int, c xchar.Char) int {
	start, end := g.edgeRange(nid)
	ck := charKeyOf(g.ab, c)

	real := xchar.Char(realRank(ck))
	neg := xchar.Char(negRank(ck, g.ab.Size()))

	count := g.edgeLabels.Rank(end, real) - g.edgeLabels.Rank(start, real)

	if ck != sentinelKey {
		count += g.edgeLabels.Rank(end, neg) - g.edgeLabels.Rank(start, neg)
	}

	return count
}

func (g *Graph) edgeRange(nid int) (int, int) {
	pred := g.f.Pred(nid, 1)
	start := 0

	if pred != g.f.Len() {
		start = pred + 1
	}

	return start, nid + 1
}

// Child returns the node id reached from nid via an edge labelled c, or
// -1 if no such edge exists. An edge labelled with the sentinel ends at
// the last k-mer of the padded text, which is a node only when it equals
// the all-sentinel root label (k = 1 or an empty text); for any other
// sentinel-labelled edge Child also returns -1.
func (g *Graph) Child(nid int, c xchar.Char) int {
	srcRank := g.NodeRank(nid)
	ck := charKeyOf(g.ab, c)

	tr, ok := g.childOf[childKey{nodeRank: srcRank, charKey: ck}]

	if !ok {
		return -1
	}

	return g.NodeID(tr)
}

// Parent returns the smallest node id with an outgoing edge into nid, or
// -1 if nid has no incoming edge (only the root k-sentinel node, in a
// graph built by Build, has none).
func (g *Graph) Parent(nid int) int {
	rk := g.NodeRank(nid)
	src := g.parentOf[rk]

	if src < 0 {
		return -1
	}

	return g.NodeID(src)
}

// EdgeLabel returns the (real, unmarked) label of the edge at row e in
// 0..NEdges()-1.
func (g *Graph) EdgeLabel(e int) xchar.Char {
	v := int(g.edgeLabels.Access(e))

	if v == sentinelKey {
		return xchar.EOF
	}

	if v > g.ab.Size() {
		v -= g.ab.Size()
	}

	return g.ab.Symbol(v - 1)
}

// NodeLabel returns the k-character label of the node with id nid,
// using xchar.EOF for the virtual padding sentinel.
func (g *Graph) NodeLabel(nid int) []xchar.Char {
	rk := g.NodeRank(nid)
	out := make([]xchar.Char, g.k)

	for i, key := range g.nodeKeys[rk] {
		if key == sentinelKey {
			out[i] = xchar.EOF
		} else {
			out[i] = g.ab.Symbol(key - 1)
		}
	}

	return out
}
