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

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/paguso/cocada-sub000/boss"
	"github.com/paguso/cocada-sub000/csa"
	"github.com/paguso/cocada-sub000/huffman"
	"github.com/paguso/cocada-sub000/minimizer"
	"github.com/paguso/cocada-sub000/reader"
	"github.com/paguso/cocada-sub000/sais"
	"github.com/paguso/cocada-sub000/xchar"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cocada",
		Short: "Succinct string-index toolkit: suffix arrays, CSAs, BOSS graphs, minimizers, Huffman codes",
	}

	rootCmd.AddCommand(newSAISCmd(), newCSACmd(), newBOSSCmd(), newMinimizerCmd(), newHuffmanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadBytes opens a file through a reader.ByteReader and builds the byte
// alphabet actually present in it, the common path every subcommand
// shares. Streaming through reader.CharReader (rather than os.ReadFile)
// is what lets a subcommand work the same way whether its source is a
// seekable file or, in principle, any other io.ReadSeeker.
func loadBytes(path string) ([]xchar.Char, xchar.Alphabet, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, nil, err
	}

	defer f.Close()

	br := reader.NewByteReader(f)
	present := make([]bool, 256)
	var text []xchar.Char

	for {
		c, ok := br.GetChar()

		if !ok {
			break
		}

		present[byte(c)] = true
		text = append(text, c)
	}

	letters := make([]byte, 0, 256)

	for b := 0; b < 256; b++ {
		if present[b] {
			letters = append(letters, byte(b))
		}
	}

	ab, err := xchar.NewCharAlphabet(letters)

	if err != nil {
		return nil, nil, err
	}

	return text, ab, nil
}

func newSAISCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sais <file>",
		Short: "Print the suffix array of a file's bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ab, err := loadBytes(args[0])

			if err != nil {
				return err
			}

			sa, err := sais.ComputeSuffixArray(ab, text)

			if err != nil {
				return err
			}

			fmt.Printf("n=%d\n", len(sa))

			for i, p := range sa {
				fmt.Printf("%d\t%d\n", i, p)
			}

			return nil
		},
	}
}

func newCSACmd() *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:   "csa <file>",
		Short: "Build a compressed suffix array and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ab, err := loadBytes(args[0])

			if err != nil {
				return err
			}

			c, err := csa.Build(ab, text, nil)

			if err != nil {
				return err
			}

			fmt.Printf("length=%d\n", c.Length())
			fmt.Printf("get(0)=%d\n", c.Get(0))

			n := samples

			if n > c.Length() {
				n = c.Length()
			}

			for i := 0; i < n; i++ {
				fmt.Printf("char_at(%d)=%c\n", i, byte(c.CharAt(i)))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 5, "Number of leading char_at samples to print")
	return cmd
}

func newBOSSCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "boss <file>",
		Short: "Build a BOSS de Bruijn graph and print its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ab, err := loadBytes(args[0])

			if err != nil {
				return err
			}

			g, err := boss.Build(ab, text, k, nil)

			if err != nil {
				return err
			}

			fmt.Printf("V=%d E=%d k=%d\n", g.NNodes(), g.NEdges(), g.K())

			hist := make(map[int]int)

			for rk := 0; rk < g.NNodes(); rk++ {
				nid := g.NodeID(rk)
				hist[g.Outdeg(nid)]++
			}

			degs := make([]int, 0, len(hist))

			for d := range hist {
				degs = append(degs, d)
			}

			sort.Ints(degs)

			for _, d := range degs {
				fmt.Printf("outdeg=%d count=%d\n", d, hist[d])
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 3, "De Bruijn graph order")
	return cmd
}

func newMinimizerCmd() *cobra.Command {
	var w, k int

	cmd := &cobra.Command{
		Use:   "minimizer <file>",
		Short: "Build a (w,k) minimizer index and print its size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ab, err := loadBytes(args[0])

			if err != nil {
				return err
			}

			idx, err := minimizer.Build(ab, text, w, k, nil)

			if err != nil {
				return err
			}

			fmt.Printf("w=%d k=%d distinct_minimizers=%d\n", idx.W(), idx.K(), idx.NumDistinctMinimizers())
			return nil
		},
	}

	cmd.Flags().IntVar(&w, "w", 10, "Window size")
	cmd.Flags().IntVar(&k, "k", 15, "K-mer length")
	return cmd
}

func newHuffmanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "huffman <file>",
		Short: "Build a Huffman code and print its size table and Kraft-sum check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])

			if err != nil {
				return err
			}

			defer f.Close()

			br := reader.NewByteReader(f)
			freqs := make([]int, 256)

			for {
				c, ok := br.GetChar()

				if !ok {
					break
				}

				freqs[byte(c)]++
			}

			letters := make([]byte, 0, 256)

			for b := 0; b < 256; b++ {
				if freqs[b] > 0 {
					letters = append(letters, byte(b))
				}
			}

			ab, err := xchar.NewCharAlphabet(letters)

			if err != nil {
				return err
			}

			counts := make([]int, len(letters))

			for i, b := range letters {
				counts[i] = freqs[b]
			}

			tree, err := huffman.Build(ab, counts)

			if err != nil {
				return err
			}

			for i, b := range letters {
				fmt.Printf("%q\tfreq=%d\tlen=%d\n", string(b), counts[i], tree.Codes[i].Len)
			}

			fmt.Printf("kraft_sum=%v\n", tree.KraftSum())
			return nil
		},
	}
}
