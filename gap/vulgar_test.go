// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

import (
	"errors"
	"strings"

	"github.com/biogo/biogo/seq"
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"
)

var exonTests = []struct {
	name       string
	in         string
	ref, query Span
	want       Transcript
}{
	{
		name:  "spliced",
		in:    "M 10 30 5 0 2 I 0 100 3 0 2 M 20 60",
		ref:   plus(1001, 1194),
		query: plus(1, 30),
		want: Transcript{
			Exons:      []Range{{1001, 1030}, {1135, 1194}},
			Introns:    []Range{{1031, 1134}},
			ExonBlocks: [][]Block{nil, nil},
			CDS:        Range{1001, 1194},
		},
	},
	{
		name:  "gapped exon",
		in:    "M 10 10 G 0 1 M 20 20",
		ref:   plus(1, 31),
		query: plus(1, 30),
		want: Transcript{
			Exons: []Range{{1, 31}},
			ExonBlocks: [][]Block{{
				{T1: 1, T2: 10, Q1: 1, Q2: 10, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Edge, EndBoundary: Deletion},
				{T1: 12, T2: 31, Q1: 11, Q2: 30, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Deletion, EndBoundary: Edge},
			}},
			CDS: Range{1, 31},
		},
	},
	{
		name:  "query insertion",
		in:    "M 10 10 G 2 0 M 5 5",
		ref:   plus(1, 15),
		query: plus(1, 17),
		want: Transcript{
			Exons: []Range{{1, 15}},
			ExonBlocks: [][]Block{{
				{T1: 1, T2: 10, Q1: 1, Q2: 10, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Edge, EndBoundary: MatchAbutment},
				{T1: 11, T2: 15, Q1: 13, Q2: 17, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: MatchAbutment, EndBoundary: Edge},
			}},
			CDS: Range{1, 15},
		},
	},
	{
		name:  "minus strand",
		in:    "M 10 10 5 0 2 I 0 10 3 0 2 M 5 5",
		ref:   minus(100, 128),
		query: plus(1, 15),
		want: Transcript{
			Exons:      []Range{{119, 128}, {100, 104}},
			Introns:    []Range{{105, 118}},
			ExonBlocks: [][]Block{nil, nil},
			CDS:        Range{100, 128},
		},
	},
	{
		name:  "split codon",
		in:    "M 10 30 S 0 2 5 0 2 I 0 50 3 0 2 S 1 1 M 5 15",
		ref:   plus(1, 102),
		query: plus(1, 16),
		want: Transcript{
			Exons:      []Range{{1, 32}, {87, 102}},
			Introns:    []Range{{33, 86}},
			ExonBlocks: [][]Block{nil, nil},
			CDS:        Range{1, 102},
		},
	},
	{
		name:  "gapped exon after splice",
		in:    "M 10 10 5 0 2 I 0 10 3 0 2 M 5 5 G 0 3 M 5 5",
		ref:   plus(1, 37),
		query: plus(1, 20),
		want: Transcript{
			Exons:   []Range{{1, 10}, {25, 37}},
			Introns: []Range{{11, 24}},
			ExonBlocks: [][]Block{nil, {
				{T1: 25, T2: 29, Q1: 11, Q2: 15, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Intron, EndBoundary: Deletion},
				{T1: 33, T2: 37, Q1: 16, Q2: 20, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Deletion, EndBoundary: Edge},
			}},
			CDS: Range{1, 37},
		},
	},
	{
		name:  "gapped exon after split codon",
		in:    "M 10 10 S 1 1 5 0 2 I 0 10 3 0 2 S 0 2 M 5 5 G 0 3 M 5 5",
		ref:   plus(1, 40),
		query: plus(1, 21),
		want: Transcript{
			Exons:   []Range{{1, 11}, {26, 40}},
			Introns: []Range{{12, 25}},
			ExonBlocks: [][]Block{nil, {
				{T1: 26, T2: 32, Q1: 12, Q2: 16, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Intron, EndBoundary: Deletion},
				{T1: 36, T2: 40, Q1: 17, Q2: 21, RefStrand: seq.Plus, QueryStrand: seq.Plus, StartBoundary: Deletion, EndBoundary: Edge},
			}},
			CDS: Range{1, 40},
		},
	},
	{
		name:  "non-equivalenced region",
		in:    "M 10 10 N 5 20 M 10 10",
		ref:   plus(1, 40),
		query: plus(1, 25),
		want: Transcript{
			Exons:      []Range{{1, 10}, {31, 40}},
			Introns:    []Range{{11, 30}},
			ExonBlocks: [][]Block{nil, nil},
			CDS:        Range{1, 40},
		},
	},
	{
		name:  "frameshift",
		in:    "M 10 30 F 0 1 M 5 15",
		ref:   plus(1, 46),
		query: plus(1, 15),
		want: Transcript{
			Exons:      []Range{{1, 46}},
			ExonBlocks: [][]Block{nil},
			CDS:        Range{1, 46},
		},
	},
	{
		name:  "ungapped",
		in:    "M 100 100",
		ref:   plus(1, 100),
		query: plus(1, 100),
		want: Transcript{
			Exons:      []Range{{1, 100}},
			ExonBlocks: [][]Block{nil},
			CDS:        Range{1, 100},
		},
	},
}

func (s *S) TestStringToExons(c *check.C) {
	for _, t := range exonTests {
		got, err := StringToExons(ExonerateVULGAR, t.ref, t.query, t.in)
		c.Assert(err, check.Equals, nil, check.Commentf("%s", t.name))
		c.Check(*got, check.DeepEquals, t.want, check.Commentf("%s:\n%s", t.name, utter.Sdump(got)))
		c.Check(len(got.ExonBlocks), check.Equals, len(got.Exons))
	}
}

func (s *S) TestExonsTransitionErrors(c *check.C) {
	for _, t := range []struct {
		in         string
		ref, query Span
		state      State
		prev, curr byte
	}{
		{
			in:    "M 10 10 G 0 1 5 0 2 I 0 10 3 0 2 M 5 5",
			ref:   plus(1, 30),
			query: plus(1, 15),
			state: InExon, prev: 'G', curr: '5',
		},
		{
			in:    "M 10 10 5 0 2 3 0 2 M 5 5",
			ref:   plus(1, 19),
			query: plus(1, 15),
			state: InIntron, prev: '5', curr: '3',
		},
		{
			in:    "M 10 10 5 0 2 I 0 10 M 5 5",
			ref:   plus(1, 27),
			query: plus(1, 15),
			state: InExon, prev: 'I', curr: 'M',
		},
		{
			in:    "M 10 10 C 3 3 M 5 5",
			ref:   plus(1, 18),
			query: plus(1, 18),
			state: InExon, prev: 'M', curr: 'C',
		},
	} {
		_, err := StringToExons(ExonerateVULGAR, t.ref, t.query, t.in)
		var terr *TransitionError
		c.Assert(errors.As(err, &terr), check.Equals, true, check.Commentf("%q: %v", t.in, err))
		c.Check(terr.State, check.Equals, t.state)
		c.Check(terr.Prev, check.Equals, t.prev)
		c.Check(terr.Curr, check.Equals, t.curr)
		msg := err.Error()
		for _, part := range []string{t.state.String(), string(t.prev), string(t.curr)} {
			c.Check(strings.Contains(msg, part), check.Equals, true, check.Commentf("%q missing from %q", part, msg))
		}
	}
}

func (s *S) TestExonsSemanticErrors(c *check.C) {
	_, err := StringToExons(ExonerateVULGAR, plus(1, 100), plus(1, 16), "M 10 30 5 0 2 I 0 50 3 0 2 S 1 1 M 5 15")
	var serr *SemanticError
	c.Assert(errors.As(err, &serr), check.Equals, true, check.Commentf("%v", err))
	c.Check(serr.Op, check.Equals, byte('S'))
	c.Check(serr.State, check.Equals, InExon)
}

func (s *S) TestExonsWrongFormat(c *check.C) {
	_, err := StringToExons(BAMCIGAR, plus(1, 10), plus(1, 10), "10M")
	c.Check(errors.Is(err, ErrWrongFormat), check.Equals, true)

	can, err := Canonicalize(ExonerateVULGAR, "M 10 10")
	c.Assert(err, check.Equals, nil)
	_, err = can.Blocks(plus(1, 10), plus(1, 10))
	c.Check(err, check.Equals, ErrWrongFormat)
}

func (s *S) TestExonsCoverage(c *check.C) {
	_, err := StringToExons(ExonerateVULGAR, plus(1, 100), plus(1, 30), "M 10 10 G 0 1 M 20 20")
	var serr *StructuralError
	c.Assert(errors.As(err, &serr), check.Equals, true)
	c.Check(serr.Kind, check.Equals, CoverageMismatch)
}
