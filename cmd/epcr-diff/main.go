// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The epcr-diff program compares the hit tables from two epcr runs.
// It takes two native-tabular-format inputs (epcr's own output, not
// GFF) and reports, per base of target covered by either run, how
// often the two runs agree on the STS identification, disagree, or
// one is missing a call the other made. The analysis is emitted on
// stdout as a JSON object.
//
// If a -dot prefix is given, the STS-id discordances between the two
// runs are also written as a graph in DOT format, with edge weights
// giving the count of mismatched bases between each pair of
// (STS-id-or-none) labels.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/step"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

func main() {
	aFile := flag.String("a", "", "specify input hit table a (required)")
	bFile := flag.String("b", "", "specify input hit table b (required)")
	out := flag.String("dot", "", "specify prefix for a DOT file describing STS-id disagreements")
	none := flag.String("none", "none", "specify label for 'no hit'")

	flag.Parse()
	if *aFile == "" || *bFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	targets := make(map[string]bool)
	ids := make(map[string]*step.Vector)

	err := hits(*aFile, func(h hit) error {
		targets[h.target] = true
		return apply(ids, h, func(p *pair) { p.a = h.stsID })
	})
	if err != nil {
		log.Fatal(err)
	}
	err = hits(*bFile, func(h hit) error {
		targets[h.target] = true
		return apply(ids, h, func(p *pair) { p.b = h.stsID })
	})
	if err != nil {
		log.Fatal(err)
	}

	var names []string
	for t := range targets {
		names = append(names, t)
	}
	sort.Strings(names)

	var (
		agree      int
		aMissing   int
		bMissing   int
		mismatch   int
		mismatches = make(map[pairNames]int)
	)
	for _, t := range names {
		v, ok := ids[t]
		if !ok {
			continue
		}
		v.Do(func(start, end int, e step.Equaler) {
			p := e.(pair)
			if p.isZero() {
				return
			}
			n := end - start
			switch {
			case p.a == p.b:
				agree += n
			case p.a == "":
				aMissing += n
				mismatches[pairNames{a: "", b: p.b}] += n
			case p.b == "":
				bMissing += n
				mismatches[pairNames{a: p.a, b: ""}] += n
			default:
				mismatch += n
				mismatches[p.pairNames] += n
			}
		})
	}

	type record struct {
		Agree    int `json:"agree"`
		AMissing int `json:"a-missing"`
		BMissing int `json:"b-missing"`
		Mismatch int `json:"mismatch"`
	}
	m, err := json.Marshal(record{Agree: agree, AMissing: aMissing, BMissing: bMissing, Mismatch: mismatch})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", m)

	if *out != "" {
		if err := dotOut(*out+".sts.dot", *aFile, *bFile, mismatches, *none); err != nil {
			log.Fatal(err)
		}
	}
}

type hit struct {
	target     string
	start, end int
	stsID      string
}

// hits parses path as epcr's native tabular output, invoking fn for
// each line. Lines that fail to parse are reported and skipped.
func hits(path string, fn func(hit) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			log.Printf("epcr-diff: skipping malformed line: %q", line)
			continue
		}
		span := strings.SplitN(fields[1], "..", 2)
		if len(span) != 2 {
			log.Printf("epcr-diff: skipping malformed line: %q", line)
			continue
		}
		start, err1 := strconv.Atoi(span[0])
		end, err2 := strconv.Atoi(span[1])
		if err1 != nil || err2 != nil {
			log.Printf("epcr-diff: skipping malformed line: %q", line)
			continue
		}
		if err := fn(hit{target: fields[0], start: start, end: end, stsID: fields[2]}); err != nil {
			return err
		}
	}
	return sc.Err()
}

// apply accumulates h into the step vector for its target, creating
// one on first use, and invoking set to record which side's STS id
// covers [h.start, h.end).
func apply(ids map[string]*step.Vector, h hit, set func(*pair)) error {
	v, ok := ids[h.target]
	if !ok {
		var err error
		v, err = step.New(0, 1, pair{})
		if err != nil {
			return err
		}
		v.Relaxed = true
		ids[h.target] = v
	}
	return v.ApplyRange(h.start, h.end, func(e step.Equaler) step.Equaler {
		p := e.(pair)
		set(&p)
		return p
	})
}

// pair is a step vector element recording each run's STS
// identification (if any) of a given base.
type pair struct {
	pairNames
}

type pairNames struct {
	a, b string
}

func (p pair) isZero() bool {
	return p.pairNames == pairNames{}
}

func (p pair) Equal(e step.Equaler) bool {
	return p.pairNames == e.(pair).pairNames
}

func dotOut(path, aFile, bFile string, edges map[pairNames]int, none string) error {
	g := newNameGraph(none)
	for p, w := range edges {
		e := edge{
			f: g.nodeFor(aFile, p.a),
			t: g.nodeFor(bFile, p.b),
			w: float64(w),
		}
		g.SetWeightedEdge(e)
	}
	b, err := dot.Marshal(g, "discord", "", "\t")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0o664)
}

type nameGraph struct {
	*simple.WeightedUndirectedGraph
	idFor map[string]int64
	none  string
}

func newNameGraph(none string) nameGraph {
	return nameGraph{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, 0),
		idFor:                   make(map[string]int64),
		none:                    none,
	}
}

func (g nameGraph) nodeFor(file, s string) graph.Node {
	if s == "" {
		s = g.none
	}
	s = file + ":" + s
	id, ok := g.idFor[s]
	if ok {
		return g.Node(id)
	}
	id = g.WeightedUndirectedGraph.NewNode().ID()
	g.idFor[s] = id
	n := node{id: id, name: s}
	g.AddNode(n)
	return n
}

type node struct {
	id   int64
	name string
}

func (n node) ID() int64     { return n.id }
func (n node) DOTID() string { return n.name }

type edge struct {
	f, t graph.Node
	w    float64
}

func (e edge) From() graph.Node         { return e.f }
func (e edge) To() graph.Node           { return e.t }
func (e edge) ReversedEdge() graph.Edge { return edge{f: e.t, t: e.f, w: e.w} }
func (e edge) Weight() float64          { return e.w }
func (e edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "weight", Value: fmt.Sprint(e.w)}}
}
